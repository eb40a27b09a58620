package charts

import (
	"bytes"
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type varkQuadrant struct {
	letter string
	title  string
	color  drawing.Color
	cx, cy float64
}

var varkQuadrants = []varkQuadrant{
	{"V", "Visual", drawing.Color{R: 0xff, G: 0xf1, B: 0xa8, A: 0xff}, 210, 210},
	{"A", "Auditory", drawing.Color{R: 0xc8, G: 0xf0, B: 0xa8, A: 0xff}, 610, 210},
	{"R", "Reading / Writing", drawing.Color{R: 0x8c, G: 0xca, B: 0xf2, A: 0xff}, 210, 610},
	{"K", "Kinesthetic", drawing.Color{R: 0xd6, G: 0x9e, B: 0xf5, A: 0xff}, 610, 610},
}

// renderVARKCircles draws the four learning-style circles with one
// description each. Descriptions come from the VARK analysis phase when it
// succeeded, static definitions otherwise; exactly four are expected, V,
// A, R, K order.
func renderVARKCircles(spec Spec) ([]byte, error) {
	const (
		size   = 820.0
		radius = 185.0
	)
	r, err := chart.PNG(int(size), int(size))
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	descs := spec.Descriptions
	if len(descs) != 4 {
		descs = defaultVARKCircleDescs
	}

	r.SetFont(font)
	for i, q := range varkQuadrants {
		r.SetFillColor(q.color)
		r.Circle(radius, int(q.cx), int(q.cy))
		r.Fill()

		strokeCircle(r, q.cx, q.cy, radius+2, drawing.Color{R: 0, G: 0, B: 0, A: 0xcc}, 3)

		r.SetFontColor(textDark)
		r.SetFontSize(64)
		centeredText(r, q.letter, int(q.cx), int(q.cy)-70)
		r.SetFontSize(14)
		centeredText(r, q.title, int(q.cx), int(q.cy)-10)

		r.SetFontSize(9)
		for j, line := range wrapText(descs[i], 38) {
			centeredText(r, line, int(q.cx), int(q.cy)+25+j*14)
		}
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render vark circles: %w", err)
	}
	return buf.Bytes(), nil
}

var defaultVARKCircleDescs = []string{
	"Visual learners prefer information presented in a visual format like graphs, charts, or diagrams.",
	"Auditory learners learn best through listening and verbal instructions.",
	"Reading/Writing learners excel when information is presented in written form, such as reading textbooks.",
	"Kinesthetic learners learn by doing and prefer hands-on activities or practical experiences.",
}

// wrapText breaks s into lines of at most width characters on word
// boundaries.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
