package charts

import (
	"fmt"

	"github.com/bryanwahyu/portfolio-report/internal/domain/profile"
)

// Kind enum
type Kind string

const (
	KindBar            Kind = "bar"
	KindRadar          Kind = "radar"
	KindDonut          Kind = "donut"
	KindSevenSegment   Kind = "seven_segment"
	KindVARKCircles    Kind = "vark_circles"
	KindVariableRadius Kind = "variable_radius"
)

// Spec is the derived, render-ready form of one category: a chart kind
// plus the numeric series extracted from its section scores.
type Spec struct {
	Kind   Kind
	Title  string
	Labels []string
	Values []float64

	// VARK circle descriptions, V/A/R/K order. Only set for KindVARKCircles.
	Descriptions []string
}

// KindFor maps a category key onto exactly one chart kind. Unknown keys
// always get the variable-radius fallback so every category produces a
// visual.
func KindFor(key profile.CategoryKey) Kind {
	switch key {
	case profile.KeyCognitive:
		return KindBar
	case profile.KeyPersonality:
		return KindRadar
	case profile.KeyInterests:
		return KindDonut
	case profile.KeyEmotional:
		return KindSevenSegment
	case profile.KeyLearningVARK:
		return KindVARKCircles
	default:
		return KindVariableRadius
	}
}

// SpecFor builds the chart spec for one decoded category.
func SpecFor(cat profile.Category) Spec {
	return Spec{
		Kind:   KindFor(cat.Key),
		Title:  cat.TestName,
		Labels: cat.Labels(),
		Values: cat.Scores(),
	}
}

func (s Spec) validate() error {
	if len(s.Values) == 0 {
		return fmt.Errorf("empty series")
	}
	if len(s.Labels) != len(s.Values) {
		return fmt.Errorf("labels/values length mismatch: %d vs %d", len(s.Labels), len(s.Values))
	}
	return nil
}
