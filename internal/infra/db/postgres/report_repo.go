package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	domain "github.com/bryanwahyu/portfolio-report/internal/domain/report"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Save insert/update one report row.
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO portfolio_reports
(id, student_name, register_no, institution, course, batch,
 provider, status, filename, artifact_url, diagnostics, duration_ms, generated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
 status = EXCLUDED.status,
 filename = EXCLUDED.filename,
 artifact_url = EXCLUDED.artifact_url,
 diagnostics = EXCLUDED.diagnostics,
 duration_ms = EXCLUDED.duration_ms;`

	status := stringOrDash(string(rep.Status))
	provider := stringOrDash(rep.Provider)
	generated := rep.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	diags, err := json.Marshal(rep.Diagnostics)
	if err != nil {
		diags = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx, q,
		rep.ID, rep.StudentName, rep.RegisterNo, rep.Institution, rep.Course, rep.Batch,
		provider, status, rep.Filename, rep.ArtifactURL, string(diags), rep.DurationMS, generated,
	)
	return err
}

// Get by ID
func (r *ReportRepository) Get(ctx context.Context, id domain.ID) (*domain.Report, error) {
	const q = `
SELECT id, student_name, register_no, institution, course, batch,
       provider, status, filename, artifact_url, diagnostics, duration_ms, generated_at
FROM portfolio_reports
WHERE id=$1
LIMIT 1;`
	return scanRow(r.db.QueryRowContext(ctx, q, id))
}

// Latest reports, newest first
func (r *ReportRepository) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, student_name, register_no, institution, course, batch,
       provider, status, filename, artifact_url, diagnostics, duration_ms, generated_at
FROM portfolio_reports
ORDER BY generated_at DESC
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Report
	for rows.Next() {
		rep, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*domain.Report, error) {
	var rep domain.Report
	var diags string
	if err := row.Scan(
		&rep.ID, &rep.StudentName, &rep.RegisterNo, &rep.Institution, &rep.Course, &rep.Batch,
		&rep.Provider, &rep.Status, &rep.Filename, &rep.ArtifactURL, &diags, &rep.DurationMS, &rep.GeneratedAt,
	); err != nil {
		return nil, err
	}
	if diags != "" {
		_ = json.Unmarshal([]byte(diags), &rep.Diagnostics)
	}
	return &rep, nil
}

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
