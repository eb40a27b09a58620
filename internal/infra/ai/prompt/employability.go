package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	domai "github.com/bryanwahyu/portfolio-report/internal/domain/ai"
	"github.com/bryanwahyu/portfolio-report/internal/domain/profile"
)

// BuildMain assembles the main-phase prompt from all non-VARK categories.
// The model must answer with one strict JSON object matching MainAnalysis.
func BuildMain(studentName, course string, cats []profile.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student Name: %s\n", studentName)
	fmt.Fprintf(&b, "Course: %s\n", course)
	b.WriteString("--- PSYCHOMETRIC TEST RESULTS ---\n")

	if len(cats) == 0 {
		b.WriteString("No data available.\n")
	}
	for _, cat := range cats {
		fmt.Fprintf(&b, "\nTest: %s\n", cat.TestName)
		if cat.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", cat.Description)
		}
		for _, s := range cat.Sections {
			fmt.Fprintf(&b, "- %s: %.1f%%\n", s.Name, s.Score)
			if s.Interpretation != "" {
				fmt.Fprintf(&b, "  Interpretation: %s\n", s.Interpretation)
			}
		}
	}

	return `### ROLE & OBJECTIVE
You are an Elite Career Strategist and Lead Psychometrician with 20+ years of experience in corporate talent acquisition.
Your task is to analyze a student's psychometric portfolio to determine their Real-World Employability.

### INPUT PROFILE
` + b.String() + `

### ANALYSIS GUIDELINES
1. Synthesis: do not just read individual scores. Look for patterns across tests.
2. Honesty: be critical. If soft skills are low, the Employability Score MUST reflect that risk, even if technical scores are perfect.
3. Market Relevance: recommend roles and certifications that are currently in demand and match the Course context provided.

### SCORING RUBRIC (Employability Score 0-100)
- 90-100: exceptional balance of hard and soft skills.
- 75-89: solid candidate with minor, fixable gaps.
- 60-74: functional but requires significant training.
- <60: major red flags in critical areas; needs immediate intervention.

### STRICT JSON OUTPUT FORMAT
{
  "strengths": "string",
  "development_areas": "string",
  "recommended_roles": ["string", "string", "string"],
  "certifications": ["string", "string", "string"],
  "employability_score": 0,
  "employability_text": "string"
}
Return ONLY the JSON object, no commentary, no code fences.`
}

// ParseMain decodes the main-phase answer. A salvage pass pulls the first
// balanced-looking JSON object out of chatty responses before giving up.
func ParseMain(raw string) (domai.MainAnalysis, error) {
	var out domai.MainAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		sub, ok := extractObject(raw)
		if !ok {
			return out, fmt.Errorf("%w: %v", domai.ErrMalformedResponse, err)
		}
		if err2 := json.Unmarshal([]byte(sub), &out); err2 != nil {
			return out, fmt.Errorf("%w: %v", domai.ErrMalformedResponse, err2)
		}
	}
	if out.EmployabilityScore < 0 || out.EmployabilityScore > 100 {
		return out, fmt.Errorf("%w: employability_score %d out of range", domai.ErrMalformedResponse, out.EmployabilityScore)
	}
	return out, nil
}

// extractObject returns the substring between the first '{' and the last
// '}' of s, when both exist.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
