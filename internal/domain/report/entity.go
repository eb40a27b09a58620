package report

import (
	"regexp"
	"strings"
	"time"
)

// ID tipe untuk Report
type ID string

// Status enum
type Status string

const (
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Report is the terminal artifact record: one row per generation request,
// immutable once assembled.
type Report struct {
	ID          ID        `json:"id"`
	StudentName string    `json:"student_name"`
	RegisterNo  string    `json:"register_no"`
	Institution string    `json:"institution"`
	Course      string    `json:"course,omitempty"`
	Batch       string    `json:"batch,omitempty"`
	Provider    string    `json:"provider"`
	Status      Status    `json:"status"`
	Filename    string    `json:"filename,omitempty"`
	ArtifactURL string    `json:"artifact_url,omitempty"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

func sanitizePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	return unsafeChars.ReplaceAllString(s, "_")
}

// Filename derives the deterministic, path-safe artifact name from the
// student identity. It is a pure function of (name, institution, register
// number) and nothing else.
func Filename(studentName, institution, registerNo string) string {
	return sanitizePart(studentName) + "_" + sanitizePart(institution) + "_" + sanitizePart(registerNo) + ".pdf"
}
