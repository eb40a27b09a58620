package profilefetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bryanwahyu/portfolio-report/internal/domain/profile"
	"github.com/bryanwahyu/portfolio-report/internal/domain/report"
)

// Client fetches student profiles from an arbitrary HTTP(S) endpoint.
// The endpoint is untrusted: possibly slow, unavailable, or serving junk.
type Client struct {
	http *http.Client
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch issues a GET and parses the body as a Profile. Transient failures
// (connection error, 5xx) are retried exactly once; validation failures are
// never retried.
func (c *Client) Fetch(ctx context.Context, url string) (*profile.Profile, error) {
	body, transient, err := c.get(ctx, url)
	if err != nil && transient {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", report.ErrProfileUnavailable, err)
		case <-time.After(500 * time.Millisecond):
		}
		body, _, err = c.get(ctx, url)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrProfileUnavailable, err)
	}

	p, err := parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrMalformedProfile, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrMalformedProfile, err)
	}
	return p, nil
}

// get returns the body plus whether a failure is transient (connection
// error or 5xx) and therefore worth the single retry.
func (c *Client) get(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("profile store answered %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	return body, false, err
}

// parse accepts either a single object or a one-element array wrapping it.
func parse(body []byte) (*profile.Profile, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	if trimmed[0] == '[' {
		var list []profile.Profile
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		if len(list) != 1 {
			return nil, fmt.Errorf("expected exactly one profile, got %d", len(list))
		}
		return &list[0], nil
	}

	var p profile.Profile
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
