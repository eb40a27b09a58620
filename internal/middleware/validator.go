package middleware

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Input validation for the report endpoints.

// ValidateProfileURL validates the remote profile URL before the
// pipeline fetches it. Only http(s) toward public hosts is allowed.
func ValidateProfileURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("profile URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (allowed: http, https)", u.Scheme)
	}

	// SSRF protection: block loopback, private, link-local and unspecified
	// addresses. Literal hostnames only get the localhost check since DNS
	// resolution does not belong here.
	host := strings.ToLower(u.Hostname())
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return fmt.Errorf("localhost is not allowed")
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() {
			return fmt.Errorf("internal IPs are not allowed")
		}
	}

	return nil
}

// SanitizeString removes null bytes and control characters.
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
