package profile

// CategoryKey classifies a psychometric category by its KeyName discriminator.
type CategoryKey string

const (
	KeyPersonality  CategoryKey = "first"  // personality traits
	KeyCognitive    CategoryKey = "second" // cognitive ability / aptitude
	KeyInterests    CategoryKey = "third"  // career interests
	KeyEmotional    CategoryKey = "fourth" // emotional intelligence
	KeyLearningVARK CategoryKey = "fifth"  // learning styles (VARK)
	KeyOther        CategoryKey = "other"
)

// ClassifyKey maps a raw KeyName onto the closed category set.
// Anything outside the five known discriminators is KeyOther.
func ClassifyKey(keyName string) CategoryKey {
	switch CategoryKey(keyName) {
	case KeyPersonality, KeyCognitive, KeyInterests, KeyEmotional, KeyLearningVARK:
		return CategoryKey(keyName)
	default:
		return KeyOther
	}
}

// Profile is one student record as served by the remote profile store.
type Profile struct {
	StudentName string           `json:"StudentName"`
	RegisterNo  string           `json:"RegisterNo"`
	Institution string           `json:"InstitutionName"`
	Course      string           `json:"CourseName"`
	Email       string           `json:"Email"`
	Batch       string           `json:"Batch"`
	Categories  []CategoryRecord `json:"StudentPsychometricCategoryDetailsForPortfolioData"`
}

// CategoryRecord is one raw test-category entry. JsonResult is itself a
// JSON document encoded as a string (see Decode).
type CategoryRecord struct {
	KeyName    string `json:"KeyName"`
	Label      string `json:"PsychometricTestCategory"`
	JsonResult string `json:"JsonResult"`
}

// SectionScore is one scored section inside a decoded category payload.
type SectionScore struct {
	Section        string `json:"section"`
	Description    string `json:"description"`
	Representation string `json:"representation"`
	Interpretation string `json:"interpretation"`
	SectionScore   string `json:"section_score"`
}

// CategoryPayload is the decoded form of CategoryRecord.JsonResult.
type CategoryPayload struct {
	TestName    string         `json:"test_name"`
	Description string         `json:"description"`
	Sections    []SectionScore `json:"sections"`
}

// Section is a normalized section score ready for charting and prompting.
type Section struct {
	Name           string  `json:"section"`
	Score          float64 `json:"score_percentage"`
	RawScore       string  `json:"original_score"`
	Benchmark      string  `json:"benchmark"`
	Interpretation string  `json:"interpretation"`
}

// Category is a fully decoded and normalized analysis unit.
type Category struct {
	Key         CategoryKey `json:"key"`
	KeyName     string      `json:"key_name"`
	Label       string      `json:"label"`
	TestName    string      `json:"test_name"`
	Description string      `json:"description"`
	Sections    []Section   `json:"sections"`
}

// IsVARK reports whether this category is the learning-styles category.
func (c Category) IsVARK() bool { return c.Key == KeyLearningVARK }

// Labels returns section names in input order.
func (c Category) Labels() []string {
	out := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		out[i] = s.Name
	}
	return out
}

// Scores returns section score percentages in input order.
func (c Category) Scores() []float64 {
	out := make([]float64, len(c.Sections))
	for i, s := range c.Sections {
		out[i] = s.Score
	}
	return out
}
