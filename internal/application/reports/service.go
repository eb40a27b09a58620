package reports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/portfolio-report/internal/application"
	domai "github.com/bryanwahyu/portfolio-report/internal/domain/ai"
	"github.com/bryanwahyu/portfolio-report/internal/domain/profile"
	domain "github.com/bryanwahyu/portfolio-report/internal/domain/report"
	"github.com/bryanwahyu/portfolio-report/internal/infra/ai/prompt"
	"github.com/bryanwahyu/portfolio-report/internal/infra/charts"
	"github.com/bryanwahyu/portfolio-report/internal/infra/pdf"
)

// Service implements the report-generation pipeline use-case. One call to
// Generate owns its profile, decoded categories, analysis results and
// report exclusively; nothing is shared across requests.
type Service struct {
	Fetcher   profile.Fetcher
	Providers map[domai.Provider]domai.Analyzer
	Renderer  domain.DocumentRenderer
	Artifacts domain.ArtifactStore
	Repo      domain.Repository
	Clock     application.Clock
	Log       *zap.Logger

	// ProviderTimeout bounds a single provider call; the retry gets the
	// same bound again.
	ProviderTimeout time.Duration
}

// GenerateCommand is the inbound request from the transport layer.
type GenerateCommand struct {
	Provider   string `json:"model"`
	ProfileURL string `json:"ProfileURL"`
}

// GenerateResult is the success response toward the transport layer.
type GenerateResult struct {
	Filename  string `json:"filename"`
	ReportURL string `json:"report_url"`
}

// Generate runs the whole pipeline: fetch -> decode -> two concurrent
// analysis phases -> per-category chart renders -> assemble -> persist.
func (s *Service) Generate(ctx context.Context, cmd GenerateCommand) (GenerateResult, error) {
	started := s.Clock.Now()

	prov := domai.Provider(cmd.Provider)
	if !domai.Known(prov) {
		return GenerateResult{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, cmd.Provider)
	}
	analyzer, ok := s.Providers[prov]
	if !ok || analyzer == nil {
		return GenerateResult{}, fmt.Errorf("%w: %q not configured", domain.ErrUnsupportedProvider, cmd.Provider)
	}
	if cmd.ProfileURL == "" {
		return GenerateResult{}, fmt.Errorf("%w: missing ProfileURL", domain.ErrMalformedProfile)
	}

	id := domain.ID(uuid.New().String())

	p, err := s.Fetcher.Fetch(ctx, cmd.ProfileURL)
	if err != nil {
		return GenerateResult{}, s.fail(ctx, id, cmd, started, nil, err)
	}

	s.saveRow(&domain.Report{
		ID:          id,
		StudentName: p.StudentName,
		RegisterNo:  p.RegisterNo,
		Institution: p.Institution,
		Course:      p.Course,
		Batch:       p.Batch,
		Provider:    string(prov),
		Status:      domain.StatusRunning,
		GeneratedAt: started,
	})

	cats, decodeDiags := profile.DecodeAll(p.Categories)
	if len(cats) == 0 {
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, domain.ErrNoUsableData)
	}
	diags := make([]string, 0, len(decodeDiags))
	for _, d := range decodeDiags {
		diags = append(diags, fmt.Sprintf("category %q (%s): %s", d.Label, d.KeyName, d.Reason))
	}

	mainCats, varkCat := splitVARK(cats)

	// Two independent phases joined at one barrier. The main phase is
	// mandatory; the VARK phase degrades to static descriptions.
	mainCh := make(chan phaseResult[domai.MainAnalysis], 1)
	varkCh := make(chan phaseResult[domai.VARKAnalysis], 1)

	go func() {
		raw, err := s.analyze(ctx, analyzer, prompt.BuildMain(p.StudentName, p.Course, mainCats))
		if err != nil {
			mainCh <- phaseResult[domai.MainAnalysis]{err: err}
			return
		}
		out, err := prompt.ParseMain(raw)
		mainCh <- phaseResult[domai.MainAnalysis]{val: out, err: err}
	}()

	if varkCat != nil {
		go func() {
			raw, err := s.analyze(ctx, analyzer, prompt.BuildVARK(*varkCat))
			if err != nil {
				varkCh <- phaseResult[domai.VARKAnalysis]{err: err}
				return
			}
			out, err := prompt.ParseVARK(raw)
			varkCh <- phaseResult[domai.VARKAnalysis]{val: out, err: err}
		}()
	} else {
		varkCh <- phaseResult[domai.VARKAnalysis]{err: errSkipped}
	}

	mainRes := <-mainCh
	varkRes := <-varkCh

	if mainRes.err != nil {
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, mainRes.err)
	}

	varkAvailable := varkRes.err == nil
	varkDescs := domai.DefaultVARKDescriptions()
	if varkAvailable {
		varkDescs = varkRes.val.Descriptions
	} else if !errors.Is(varkRes.err, errSkipped) {
		diags = append(diags, fmt.Sprintf("vark phase degraded: %v", varkRes.err))
		s.Log.Warn("vark phase failed, continuing without it", zap.Error(varkRes.err))
	}

	// Renders are pure and share nothing, so they fan out per category.
	sections := make([]pdf.CategorySection, len(cats))
	chartDiags := make([]string, len(cats))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			spec := charts.SpecFor(cat)
			if spec.Kind == charts.KindVARKCircles {
				spec.Descriptions = varkDescs
			}
			png, err := charts.Render(spec)
			if err != nil {
				chartDiags[i] = fmt.Sprintf("chart %q: %v", cat.TestName, err)
				png, err = charts.Placeholder(cat.TestName)
				if err != nil {
					png = nil
				}
			}
			sections[i] = pdf.CategorySection{
				Title:       cat.TestName,
				Description: cat.Description,
				ChartPNG:    png,
				Sections:    cat.Sections,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, err)
	}
	for _, d := range chartDiags {
		if d != "" {
			diags = append(diags, d)
		}
	}

	gauge, err := charts.RenderGauge(mainRes.val.EmployabilityScore)
	if err != nil {
		diags = append(diags, fmt.Sprintf("gauge: %v", err))
		gauge = nil
	}

	html, err := pdf.BuildHTML(pdf.Document{
		Student: pdf.Student{
			Name:        p.StudentName,
			RegisterNo:  p.RegisterNo,
			Institution: p.Institution,
			Course:      p.Course,
			Batch:       p.Batch,
		},
		Categories:    sections,
		Main:          mainRes.val,
		GaugePNG:      gauge,
		VARKAvailable: varkCat != nil && varkAvailable,
		Diagnostics:   diags,
	})
	if err != nil {
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, fmt.Errorf("%w: %v", domain.ErrRenderingFailed, err))
	}

	pdfBytes, err := s.Renderer.RenderPDF(ctx, html)
	if err != nil {
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, fmt.Errorf("%w: %v", domain.ErrRenderingFailed, err))
	}
	if ctx.Err() != nil {
		// budget ran out mid-render: discard, never persist
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, ctx.Err())
	}

	filename := domain.Filename(p.StudentName, p.Institution, p.RegisterNo)
	localPath := filepath.Join(os.TempDir(), string(id)+"_"+filename)
	if err := os.WriteFile(localPath, pdfBytes, 0o644); err != nil {
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, fmt.Errorf("%w: %v", domain.ErrRenderingFailed, err))
	}
	url, err := s.Artifacts.UploadAndCleanup(ctx, localPath, "reports/"+filename)
	if err != nil {
		os.Remove(localPath)
		return GenerateResult{}, s.fail(ctx, id, cmd, started, p, fmt.Errorf("%w: upload: %v", domain.ErrRenderingFailed, err))
	}

	s.saveRow(&domain.Report{
		ID:          id,
		StudentName: p.StudentName,
		RegisterNo:  p.RegisterNo,
		Institution: p.Institution,
		Course:      p.Course,
		Batch:       p.Batch,
		Provider:    string(prov),
		Status:      domain.StatusSuccess,
		Filename:    filename,
		ArtifactURL: url,
		Diagnostics: diags,
		DurationMS:  s.Clock.Now().Sub(started).Milliseconds(),
		GeneratedAt: started,
	})

	s.Log.Info("report generated",
		zap.String("id", string(id)),
		zap.String("register_no", p.RegisterNo),
		zap.String("provider", string(prov)),
		zap.Int("categories", len(cats)),
		zap.String("filename", filename),
	)
	return GenerateResult{Filename: filename, ReportURL: url}, nil
}

// Latest returns the most recent persisted report rows.
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	return s.Repo.Latest(ctx, limit)
}

// Get returns one persisted report row by id.
func (s *Service) Get(ctx context.Context, id domain.ID) (*domain.Report, error) {
	return s.Repo.Get(ctx, id)
}

type phaseResult[T any] struct {
	val T
	err error
}

// errSkipped marks the VARK phase as absent rather than failed.
var errSkipped = errors.New("phase skipped")

// analyze performs one provider call with a bounded timeout, retrying
// exactly once with backoff when the provider itself timed out. Rejections
// and malformed responses surface immediately.
func (s *Service) analyze(ctx context.Context, analyzer domai.Analyzer, promptText string) (string, error) {
	timeout := s.ProviderTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	call := func() (string, error) {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return analyzer.Analyze(cctx, promptText)
	}

	raw, err := call()
	if err != nil && errors.Is(err, domai.ErrTimeout) && ctx.Err() == nil {
		select {
		case <-ctx.Done():
			return "", err
		case <-time.After(2 * time.Second):
		}
		raw, err = call()
	}
	return raw, err
}

// splitVARK separates the learning-style category from the rest. Only the
// first VARK category is used when a profile carries duplicates.
func splitVARK(cats []profile.Category) ([]profile.Category, *profile.Category) {
	var vark *profile.Category
	rest := make([]profile.Category, 0, len(cats))
	for i := range cats {
		if vark == nil && cats[i].IsVARK() {
			vark = &cats[i]
			continue
		}
		rest = append(rest, cats[i])
	}
	return rest, vark
}

// fail normalizes a pipeline failure: budget exhaustion wins over the
// inner cause, the report row is marked failed on a fresh context, and the
// typed error goes back to the transport layer.
func (s *Service) fail(ctx context.Context, id domain.ID, cmd GenerateCommand, started time.Time, p *profile.Profile, cause error) error {
	if ctx.Err() != nil {
		cause = fmt.Errorf("%w: %v", domain.ErrRequestTimeout, cause)
	}

	row := &domain.Report{
		ID:          id,
		Provider:    cmd.Provider,
		Status:      domain.StatusFailed,
		DurationMS:  s.Clock.Now().Sub(started).Milliseconds(),
		GeneratedAt: started,
	}
	if p != nil {
		row.StudentName = p.StudentName
		row.RegisterNo = p.RegisterNo
		row.Institution = p.Institution
		row.Course = p.Course
		row.Batch = p.Batch
	}
	s.saveRow(row)

	s.Log.Error("report generation failed",
		zap.String("id", string(id)),
		zap.String("provider", cmd.Provider),
		zap.Error(cause),
	)
	return cause
}

// saveRow persists best-effort on a fresh context so audit rows survive
// request cancellation.
func (s *Service) saveRow(r *domain.Report) {
	if s.Repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Repo.Save(ctx, r); err != nil {
		s.Log.Warn("failed to save report row", zap.String("id", string(r.ID)), zap.Error(err))
	}
}
