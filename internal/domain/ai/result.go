package ai

// MainAnalysis is the employability narrative produced by the main phase.
// Immutable after creation; owned by the request that produced it.
type MainAnalysis struct {
	Strengths          string   `json:"strengths"`
	DevelopmentAreas   string   `json:"development_areas"`
	RecommendedRoles   []string `json:"recommended_roles"`
	Certifications     []string `json:"certifications"`
	EmployabilityScore int      `json:"employability_score"`
	EmployabilityText  string   `json:"employability_text"`
}

// VARKAnalysis is the supplementary learning-style narrative: four
// sentences in Visual, Auditory, Read/Write, Kinesthetic order.
type VARKAnalysis struct {
	Descriptions []string `json:"vark_descriptions"`
}

// DefaultVARKDescriptions fill in when the VARK phase is skipped or
// degrades; the chart still renders with static definitions.
func DefaultVARKDescriptions() []string {
	return []string{
		"Visual learners prefer information presented in a visual format like graphs, charts, or diagrams.",
		"Auditory learners learn best through listening and verbal instructions.",
		"Reading/Writing learners excel when information is presented in written form, such as reading textbooks.",
		"Kinesthetic learners learn by doing and prefer hands-on activities or practical experiences.",
	}
}
