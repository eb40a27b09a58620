package pdf

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	domai "github.com/bryanwahyu/portfolio-report/internal/domain/ai"
	"github.com/bryanwahyu/portfolio-report/internal/domain/profile"
)

// Student identity block of the rendered document.
type Student struct {
	Name        string
	RegisterNo  string
	Institution string
	Course      string
	Batch       string
}

// CategorySection is one test category: chart image plus its score table.
type CategorySection struct {
	Title       string
	Description string
	ChartPNG    []byte
	Sections    []profile.Section
}

// Document is everything the fixed layout needs, in input order.
type Document struct {
	Student       Student
	Categories    []CategorySection
	Main          domai.MainAnalysis
	GaugePNG      []byte
	VARKAvailable bool
	Diagnostics   []string
}

var funcs = template.FuncMap{
	"datauri": func(png []byte) template.URL {
		if len(png) == 0 {
			return ""
		}
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v)
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #222; margin: 0; }
  .page { page-break-after: always; padding: 24px 32px; }
  h1 { color: #2c3e50; border-bottom: 3px solid #4a90e2; padding-bottom: 8px; }
  h2 { color: #34495e; margin-top: 28px; }
  .identity td { padding: 4px 14px 4px 0; }
  .identity td:first-child { font-weight: bold; color: #555; }
  .chart { text-align: center; margin: 16px 0; }
  .chart img { max-width: 85%; }
  table.scores { width: 100%; border-collapse: collapse; font-size: 12px; }
  table.scores th, table.scores td { border: 1px solid #ddd; padding: 6px 8px; text-align: left; }
  table.scores th { background: #4a90e2; color: white; }
  .badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 11px; background: #eef4fc; }
  .summary p { line-height: 1.5; }
  ul.compact li { margin: 3px 0; }
  .unavailable { color: #999; font-style: italic; }
  .diag { font-size: 10px; color: #aaa; margin-top: 30px; }
</style>
</head>
<body>
<div class="page">
  <h1>Employability Portfolio</h1>
  <table class="identity">
    <tr><td>Student</td><td>{{.Student.Name}}</td></tr>
    <tr><td>Register No</td><td>{{.Student.RegisterNo}}</td></tr>
    <tr><td>Institution</td><td>{{.Student.Institution}}</td></tr>
    {{if .Student.Course}}<tr><td>Programme</td><td>{{.Student.Course}}</td></tr>{{end}}
    {{if .Student.Batch}}<tr><td>Batch</td><td>{{.Student.Batch}}</td></tr>{{end}}
  </table>

  <h2>Executive Summary</h2>
  <div class="summary">
    <p>{{.Main.EmployabilityText}}</p>
    {{if .GaugePNG}}<div class="chart"><img src="{{datauri .GaugePNG}}"></div>{{end}}
    <p><strong>Strengths:</strong> {{.Main.Strengths}}</p>
    <p><strong>Development areas:</strong> {{.Main.DevelopmentAreas}}</p>
    {{if .Main.RecommendedRoles}}
    <p><strong>Recommended roles</strong></p>
    <ul class="compact">{{range .Main.RecommendedRoles}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
    {{if .Main.Certifications}}
    <p><strong>Suggested certifications</strong></p>
    <ul class="compact">{{range .Main.Certifications}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
    {{if not .VARKAvailable}}
    <p class="unavailable">Learning-style analysis unavailable for this report.</p>
    {{end}}
  </div>
</div>

{{range .Categories}}
<div class="page">
  <h2>{{.Title}}</h2>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <div class="chart"><img src="{{datauri .ChartPNG}}"></div>
  <table class="scores">
    <tr><th>Section</th><th>Score</th><th>Benchmark</th><th>Interpretation</th></tr>
    {{range .Sections}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{pct .Score}}</td>
      <td><span class="badge">{{.Benchmark}}</span></td>
      <td>{{.Interpretation}}</td>
    </tr>
    {{end}}
  </table>
</div>
{{end}}

{{if .Diagnostics}}
<div class="diag">
  {{range .Diagnostics}}<div>{{.}}</div>{{end}}
</div>
{{end}}
</body>
</html>`))

// BuildHTML fills the fixed report layout with document data.
func BuildHTML(doc Document) (string, error) {
	var b strings.Builder
	if err := reportTmpl.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return b.String(), nil
}
