package reports

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bryanwahyu/portfolio-report/internal/application"
	domai "github.com/bryanwahyu/portfolio-report/internal/domain/ai"
	"github.com/bryanwahyu/portfolio-report/internal/domain/profile"
	domain "github.com/bryanwahyu/portfolio-report/internal/domain/report"
)

type fakeFetcher struct {
	profile *profile.Profile
	err     error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*profile.Profile, error) {
	return f.profile, f.err
}

type fakeAnalyzer struct {
	calls       int32
	mainErr     error
	mainErrOnce error // consumed by the first main call only
	varkErr     error
	onceUsed    int32
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if strings.Contains(prompt, "vark_descriptions") {
		if f.varkErr != nil {
			return "", f.varkErr
		}
		return `{"vark_descriptions":["sees it","hears it","reads it","does it"]}`, nil
	}
	if f.mainErrOnce != nil && atomic.CompareAndSwapInt32(&f.onceUsed, 0, 1) {
		return "", f.mainErrOnce
	}
	if f.mainErr != nil {
		return "", f.mainErr
	}
	return `{"strengths":"Analytical","development_areas":"Speaking",
		"recommended_roles":["Data Analyst"],"certifications":["SQL"],
		"employability_score":72,"employability_text":"Functional."}`, nil
}

type fakeRenderer struct{ err error }

func (f *fakeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeStore struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeStore) Upload(ctx context.Context, localPath, key string) (string, error) {
	f.mu.Lock()
	f.keys = append(f.keys, key)
	f.mu.Unlock()
	return "http://store/" + key, nil
}

func (f *fakeStore) UploadAndCleanup(ctx context.Context, localPath, key string) (string, error) {
	url, err := f.Upload(ctx, localPath, key)
	if err == nil {
		os.Remove(localPath)
	}
	return url, err
}

type fakeRepo struct {
	mu   sync.Mutex
	rows map[domain.ID]*domain.Report
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[domain.ID]*domain.Report{}} }

func (f *fakeRepo) Save(ctx context.Context, r *domain.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.rows[r.ID] = &cp
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id domain.ID) (*domain.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id], nil
}

func (f *fakeRepo) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Report
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) only(t *testing.T) *domain.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.rows, 1)
	for _, r := range f.rows {
		return r
	}
	return nil
}

func record(key, label string, sections int) profile.CategoryRecord {
	var b strings.Builder
	for i := 0; i < sections; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"section":"S%d","section_score":"%d/10"}`, i+1, 4+i)
	}
	return profile.CategoryRecord{
		KeyName: key,
		Label:   label,
		JsonResult: fmt.Sprintf(`{"test_name":%q,"sections":[%s]}`,
			label+" Assessment", b.String()),
	}
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		StudentName: "Asha Verma",
		RegisterNo:  "REG-2024-117",
		Institution: "City Polytechnic",
		Course:      "B.Sc. Computer Science",
		Categories: []profile.CategoryRecord{
			record("first", "Personality", 5),
			record("second", "Cognitive", 4),
			record("third", "Interests", 6),
			record("fourth", "Emotional", 7),
			record("fifth", "Learning Styles", 4),
		},
	}
}

func newService(fetcher profile.Fetcher, analyzer domai.Analyzer, renderer domain.DocumentRenderer, repo domain.Repository, store *fakeStore) *Service {
	return &Service{
		Fetcher:         fetcher,
		Providers:       map[domai.Provider]domai.Analyzer{domai.ProviderGemini: analyzer},
		Renderer:        renderer,
		Artifacts:       store,
		Repo:            repo,
		Clock:           application.SystemClock{},
		Log:             zap.NewNop(),
		ProviderTimeout: 5 * time.Second,
	}
}

func TestGenerate(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := newService(&fakeFetcher{profile: testProfile()}, analyzer, &fakeRenderer{}, repo, store)

	res, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.NoError(t, err)
	require.Equal(t, "Asha_Verma_City_Polytechnic_REG_2024_117.pdf", res.Filename)
	require.Equal(t, "http://store/reports/"+res.Filename, res.ReportURL)

	// one main call plus one VARK call
	require.EqualValues(t, 2, atomic.LoadInt32(&analyzer.calls))

	row := repo.only(t)
	require.Equal(t, domain.StatusSuccess, row.Status)
	require.Equal(t, "gemini", row.Provider)
	require.Empty(t, row.Diagnostics)
}

func TestGenerateUnsupportedProvider(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := newService(&fakeFetcher{profile: testProfile()}, analyzer, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "claude", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domain.ErrUnsupportedProvider)
	require.Zero(t, atomic.LoadInt32(&analyzer.calls), "no provider call should happen")
}

func TestGenerateMissingProfileURL(t *testing.T) {
	svc := newService(&fakeFetcher{profile: testProfile()}, &fakeAnalyzer{}, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini"})
	require.ErrorIs(t, err, domain.ErrMalformedProfile)
}

func TestGenerateProfileUnavailable(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("%w: store down", domain.ErrProfileUnavailable)}
	svc := newService(fetcher, &fakeAnalyzer{}, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domain.ErrProfileUnavailable)
}

func TestGenerateNoUsableData(t *testing.T) {
	p := testProfile()
	for i := range p.Categories {
		p.Categories[i].JsonResult = "{broken"
	}
	analyzer := &fakeAnalyzer{}
	svc := newService(&fakeFetcher{profile: p}, analyzer, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domain.ErrNoUsableData)
	require.Zero(t, atomic.LoadInt32(&analyzer.calls), "no provider call on unusable profile")
}

func TestGenerateVARKFailureDegrades(t *testing.T) {
	analyzer := &fakeAnalyzer{varkErr: domai.ErrRejected}
	repo := newFakeRepo()
	svc := newService(&fakeFetcher{profile: testProfile()}, analyzer, &fakeRenderer{}, repo, &fakeStore{})

	res, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.NoError(t, err, "vark failure must not fail the pipeline")
	require.NotEmpty(t, res.ReportURL)

	row := repo.only(t)
	require.Equal(t, domain.StatusSuccess, row.Status)
	require.NotEmpty(t, row.Diagnostics)
	require.Contains(t, row.Diagnostics[0], "vark phase degraded")
}

func TestGenerateVARKAbsent(t *testing.T) {
	p := testProfile()
	p.Categories = p.Categories[:4] // drop the fifth category
	analyzer := &fakeAnalyzer{}
	repo := newFakeRepo()
	svc := newService(&fakeFetcher{profile: p}, analyzer, &fakeRenderer{}, repo, &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&analyzer.calls), "only the main phase should run")

	row := repo.only(t)
	require.Equal(t, domain.StatusSuccess, row.Status)
	require.Empty(t, row.Diagnostics, "a skipped phase is not a diagnostic")
}

func TestGenerateRetriesProviderTimeoutOnce(t *testing.T) {
	p := testProfile()
	p.Categories = p.Categories[:4] // no VARK, so every call is a main call
	analyzer := &fakeAnalyzer{mainErrOnce: fmt.Errorf("%w: deadline", domai.ErrTimeout)}
	repo := newFakeRepo()
	svc := newService(&fakeFetcher{profile: p}, analyzer, &fakeRenderer{}, repo, &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.NoError(t, err, "single timeout must be absorbed by the retry")
	require.EqualValues(t, 2, atomic.LoadInt32(&analyzer.calls), "timeout gets exactly one retry")
	require.Equal(t, domain.StatusSuccess, repo.only(t).Status)
}

func TestGeneratePersistentTimeoutFails(t *testing.T) {
	p := testProfile()
	p.Categories = p.Categories[:4]
	analyzer := &fakeAnalyzer{mainErr: domai.ErrTimeout}
	svc := newService(&fakeFetcher{profile: p}, analyzer, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domai.ErrTimeout)
	require.EqualValues(t, 2, atomic.LoadInt32(&analyzer.calls), "one retry, then give up")
}

func TestGenerateDoesNotRetryRejection(t *testing.T) {
	p := testProfile()
	p.Categories = p.Categories[:4]
	analyzer := &fakeAnalyzer{mainErr: domai.ErrRejected}
	svc := newService(&fakeFetcher{profile: p}, analyzer, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domai.ErrRejected)
	require.EqualValues(t, 1, atomic.LoadInt32(&analyzer.calls), "rejections are never retried")
}

func TestGenerateDoesNotRetryMalformedResponse(t *testing.T) {
	p := testProfile()
	p.Categories = p.Categories[:4]
	analyzer := &fakeAnalyzer{mainErr: domai.ErrMalformedResponse}
	svc := newService(&fakeFetcher{profile: p}, analyzer, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domai.ErrMalformedResponse)
	require.EqualValues(t, 1, atomic.LoadInt32(&analyzer.calls), "malformed answers are never retried")
}

func TestGenerateMainFailureIsFatal(t *testing.T) {
	analyzer := &fakeAnalyzer{mainErr: domai.ErrRejected}
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := newService(&fakeFetcher{profile: testProfile()}, analyzer, &fakeRenderer{}, repo, store)

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domai.ErrRejected)
	require.Empty(t, store.keys, "no artifact on a failed pipeline")

	row := repo.only(t)
	require.Equal(t, domain.StatusFailed, row.Status)
}

func TestGenerateRenderFailure(t *testing.T) {
	svc := newService(&fakeFetcher{profile: testProfile()}, &fakeAnalyzer{}, &fakeRenderer{err: fmt.Errorf("chrome exploded")}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(context.Background(), GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domain.ErrRenderingFailed)
}

func TestGenerateBudgetExceeded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newService(&fakeFetcher{err: ctx.Err()}, &fakeAnalyzer{}, &fakeRenderer{}, newFakeRepo(), &fakeStore{})

	_, err := svc.Generate(ctx, GenerateCommand{Provider: "gemini", ProfileURL: "http://profiles/1"})
	require.ErrorIs(t, err, domain.ErrRequestTimeout)
}

func TestSplitVARK(t *testing.T) {
	cats := []profile.Category{
		{Key: profile.KeyPersonality},
		{Key: profile.KeyLearningVARK, TestName: "VARK"},
		{Key: profile.KeyCognitive},
	}
	rest, vark := splitVARK(cats)
	require.Len(t, rest, 2)
	require.NotNil(t, vark)
	require.Equal(t, "VARK", vark.TestName)

	rest, vark = splitVARK(cats[:1])
	require.Len(t, rest, 1)
	require.Nil(t, vark)
}
