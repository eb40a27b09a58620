package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Diagnostic records a per-category problem that did not abort the batch.
type Diagnostic struct {
	KeyName string `json:"key_name"`
	Label   string `json:"label"`
	Reason  string `json:"reason"`
}

// ParseScore normalizes a raw section_score string into a percentage.
// "a/b" fractions become (a/b)*100 rounded to one decimal; plain numbers
// pass through; anything else is 0.
func ParseScore(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if num, den, ok := strings.Cut(raw, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		pct := n / d * 100
		return float64(int(pct*10+0.5)) / 10
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// Benchmark buckets a percentage score into a qualitative band.
func Benchmark(score float64) string {
	switch {
	case score >= 75:
		return "High"
	case score >= 60:
		return "Above Average"
	case score >= 40:
		return "Average"
	default:
		return "Below Average"
	}
}

// DecodeRecord parses one raw category record. The inner JsonResult string
// is a second, independent deserialization stage: failure here is a
// data-quality problem scoped to this record only.
func DecodeRecord(rec CategoryRecord) (Category, error) {
	if strings.TrimSpace(rec.JsonResult) == "" {
		return Category{}, fmt.Errorf("empty JsonResult")
	}

	var payload CategoryPayload
	if err := json.Unmarshal([]byte(rec.JsonResult), &payload); err != nil {
		return Category{}, fmt.Errorf("decode JsonResult: %w", err)
	}
	if len(payload.Sections) == 0 {
		return Category{}, fmt.Errorf("payload has no sections")
	}

	testName := payload.TestName
	if testName == "" {
		testName = rec.Label
	}

	cat := Category{
		Key:         ClassifyKey(rec.KeyName),
		KeyName:     rec.KeyName,
		Label:       rec.Label,
		TestName:    testName,
		Description: payload.Description,
		Sections:    make([]Section, 0, len(payload.Sections)),
	}
	for _, s := range payload.Sections {
		pct := ParseScore(s.SectionScore)
		interp := s.Interpretation
		if interp == "" {
			interp = s.Description
		}
		if interp == "" {
			interp = s.Representation
		}
		if interp == "" {
			interp = "No interpretation available."
		}
		cat.Sections = append(cat.Sections, Section{
			Name:           s.Section,
			Score:          pct,
			RawScore:       s.SectionScore,
			Benchmark:      Benchmark(pct),
			Interpretation: interp,
		})
	}
	return cat, nil
}

// DecodeAll decodes every record of a profile. A record that fails the inner
// parse is excluded and reported as a diagnostic; only a fully unusable
// batch is an error for the caller to classify.
func DecodeAll(records []CategoryRecord) ([]Category, []Diagnostic) {
	cats := make([]Category, 0, len(records))
	var diags []Diagnostic
	for _, rec := range records {
		cat, err := DecodeRecord(rec)
		if err != nil {
			diags = append(diags, Diagnostic{
				KeyName: rec.KeyName,
				Label:   rec.Label,
				Reason:  err.Error(),
			})
			continue
		}
		cats = append(cats, cat)
	}
	return cats, diags
}

// Validate checks the identity invariants of a fetched profile.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.StudentName) == "" {
		return fmt.Errorf("missing StudentName")
	}
	if strings.TrimSpace(p.RegisterNo) == "" {
		return fmt.Errorf("missing RegisterNo")
	}
	if strings.TrimSpace(p.Institution) == "" {
		return fmt.Errorf("missing InstitutionName")
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("profile has no psychometric categories")
	}
	return nil
}
