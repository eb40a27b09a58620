package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	domai "github.com/bryanwahyu/portfolio-report/internal/domain/ai"
	"github.com/bryanwahyu/portfolio-report/internal/domain/profile"
)

// BuildVARK assembles the supplementary learning-style prompt from the
// single VARK category.
func BuildVARK(cat profile.Category) string {
	var b strings.Builder
	if cat.Description != "" {
		fmt.Fprintf(&b, "Context: %s\n", cat.Description)
	}
	for _, s := range cat.Sections {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", s.Name, s.Score)
		if s.Interpretation != "" {
			fmt.Fprintf(&b, "  Interpretation: %s\n", s.Interpretation)
		}
	}

	return `You are an expert Educational Psychologist.
VARK RESULTS:
` + b.String() + `
Generate 4 simple sentences (Visual, Auditory, Read/Write, Kinesthetic) explaining how this student learns best.
Order: [Visual, Auditory, Read/Write, Kinesthetic]
Output JSON: { "vark_descriptions": ["string", "string", "string", "string"] }
Return ONLY the JSON object.`
}

// ParseVARK decodes the VARK-phase answer. Exactly four descriptions are
// required, in V, A, R, K order.
func ParseVARK(raw string) (domai.VARKAnalysis, error) {
	var out domai.VARKAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		sub, ok := extractObject(raw)
		if !ok {
			return out, fmt.Errorf("%w: %v", domai.ErrMalformedResponse, err)
		}
		if err2 := json.Unmarshal([]byte(sub), &out); err2 != nil {
			return out, fmt.Errorf("%w: %v", domai.ErrMalformedResponse, err2)
		}
	}
	if len(out.Descriptions) != 4 {
		return out, fmt.Errorf("%w: expected 4 vark_descriptions, got %d", domai.ErrMalformedResponse, len(out.Descriptions))
	}
	return out, nil
}
