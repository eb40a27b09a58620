package charts

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Render turns a Spec into PNG bytes. It is a pure function of its input:
// identical specs produce identical images, and concurrent renders share
// no mutable state.
func Render(spec Spec) ([]byte, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("chart %q: %w", spec.Kind, err)
	}

	switch spec.Kind {
	case KindBar:
		return renderBar(spec)
	case KindDonut:
		return renderDonut(spec)
	case KindRadar:
		return renderRadar(spec)
	case KindSevenSegment:
		return renderSevenSegment(spec)
	case KindVARKCircles:
		return renderVARKCircles(spec)
	case KindVariableRadius:
		return renderVariableRadius(spec)
	default:
		return renderVariableRadius(spec)
	}
}

var barBlue = drawing.Color{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff}

func renderBar(spec Spec) ([]byte, error) {
	bars := make([]chart.Value, len(spec.Values))
	for i, v := range spec.Values {
		bars[i] = chart.Value{
			Value: v,
			Label: spec.Labels[i],
			Style: chart.Style{FillColor: barBlue, StrokeColor: barBlue},
		}
	}

	graph := chart.BarChart{
		Width:    800,
		Height:   500,
		BarWidth: 56,
		XAxis:    chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 110},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Palette for the radial career-interest chart (matches the report theme).
var donutPalette = []drawing.Color{
	{R: 0x8e, G: 0xd1, B: 0xe6, A: 0xff},
	{R: 0x8d, G: 0x8f, B: 0xb9, A: 0xff},
	{R: 0xc5, G: 0x86, B: 0xb5, A: 0xff},
	{R: 0xe7, G: 0x8f, B: 0xa2, A: 0xff},
	{R: 0xf5, G: 0xe5, B: 0x56, A: 0xff},
	{R: 0x7f, G: 0xb9, B: 0x7a, A: 0xff},
	{R: 0x28, G: 0xd4, B: 0xa9, A: 0xff},
}

func renderDonut(spec Spec) ([]byte, error) {
	values := make([]chart.Value, len(spec.Values))
	for i, v := range spec.Values {
		val := v
		if val <= 0 {
			val = 0.5 // zero slices break the pie geometry; keep a sliver visible
		}
		c := donutPalette[i%len(donutPalette)]
		values[i] = chart.Value{
			Value: val,
			Label: fmt.Sprintf("%s (%.0f%%)", spec.Labels[i], v),
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}

	graph := chart.DonutChart{
		Width:  700,
		Height: 700,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render donut chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Placeholder renders the "no data" stand-in used when a category's chart
// render fails. Failures here are absorbed by the caller as diagnostics.
func Placeholder(title string) ([]byte, error) {
	r, err := chart.PNG(600, 300)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(drawing.Color{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff})
	r.MoveTo(0, 0)
	r.LineTo(600, 0)
	r.LineTo(600, 300)
	r.LineTo(0, 300)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontSize(18)
	r.SetFontColor(drawing.Color{R: 0x66, G: 0x66, B: 0x66, A: 0xff})
	r.Text("No chart data available", 180, 140)
	if title != "" {
		r.SetFontSize(12)
		r.Text(title, 180, 170)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
