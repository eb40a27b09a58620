package charts

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// The polar chart kinds (radar, seven-segment, variable-radius) are drawn
// directly on go-chart's raster renderer; go-chart only ships cartesian
// and pie primitives.

func polarPoint(cx, cy, r, angle float64) (int, int) {
	return int(cx + r*math.Cos(angle)), int(cy - r*math.Sin(angle))
}

// fillWedge approximates an annular wedge with a line-segment polygon.
// Angles are math-convention radians (counter-clockwise from east).
func fillWedge(r chart.Renderer, cx, cy, rInner, rOuter, a0, a1 float64, fill drawing.Color, stroke drawing.Color, strokeWidth float64) {
	const steps = 32
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(strokeWidth)

	x, y := polarPoint(cx, cy, rOuter, a0)
	r.MoveTo(x, y)
	for i := 1; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/steps
		x, y = polarPoint(cx, cy, rOuter, a)
		r.LineTo(x, y)
	}
	if rInner > 0 {
		for i := steps; i >= 0; i-- {
			a := a0 + (a1-a0)*float64(i)/steps
			x, y = polarPoint(cx, cy, rInner, a)
			r.LineTo(x, y)
		}
	} else {
		r.LineTo(int(cx), int(cy))
	}
	r.Close()
	if strokeWidth > 0 {
		r.FillStroke()
	} else {
		r.Fill()
	}
}

func strokeCircle(r chart.Renderer, cx, cy, radius float64, color drawing.Color, width float64) {
	const steps = 96
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	x, y := polarPoint(cx, cy, radius, 0)
	r.MoveTo(x, y)
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		x, y = polarPoint(cx, cy, radius, a)
		r.LineTo(x, y)
	}
	r.Close()
	r.Stroke()
}

func centeredText(r chart.Renderer, body string, x, y int) {
	box := r.MeasureText(body)
	r.Text(body, x-box.Width()/2, y+box.Height()/2)
}

var (
	radarBlue     = drawing.Color{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff}
	radarBlueFill = drawing.Color{R: 0x4a, G: 0x90, B: 0xe2, A: 0x2a}
	gridGray      = drawing.Color{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	textDark      = drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// renderRadar draws a closed polygon of scores over concentric grid rings,
// one spoke per section, 0-100 scale.
func renderRadar(spec Spec) ([]byte, error) {
	const (
		size   = 640.0
		maxR   = 230.0
		cx, cy = size / 2, size / 2
	)
	r, err := chart.PNG(int(size), int(size))
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	n := len(spec.Values)
	angleAt := func(i int) float64 {
		// start at top, clockwise
		return math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
	}

	// grid rings at 25/50/75/100
	for _, frac := range []float64{0.25, 0.5, 0.75, 1.0} {
		strokeCircle(r, cx, cy, maxR*frac, gridGray, 1)
	}
	// spokes
	for i := 0; i < n; i++ {
		x, y := polarPoint(cx, cy, maxR, angleAt(i))
		r.SetStrokeColor(gridGray)
		r.SetStrokeWidth(1)
		r.MoveTo(int(cx), int(cy))
		r.LineTo(x, y)
		r.Stroke()
	}

	// data polygon
	r.SetStrokeColor(radarBlue)
	r.SetFillColor(radarBlueFill)
	r.SetStrokeWidth(2)
	for i := 0; i <= n; i++ {
		v := clamp(spec.Values[i%n], 0, 100)
		x, y := polarPoint(cx, cy, maxR*v/100, angleAt(i%n))
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.Close()
	r.FillStroke()

	// section labels just outside the outer ring
	r.SetFont(font)
	r.SetFontSize(11)
	r.SetFontColor(textDark)
	for i := 0; i < n; i++ {
		x, y := polarPoint(cx, cy, maxR+28, angleAt(i))
		centeredText(r, spec.Labels[i], x, y)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render radar chart: %w", err)
	}
	return buf.Bytes(), nil
}

var segmentPalette = []drawing.Color{
	{R: 0xff, G: 0x52, B: 0x52, A: 0xff},
	{R: 0xff, G: 0xd6, B: 0x00, A: 0xff},
	{R: 0x00, G: 0xe6, B: 0x76, A: 0xff},
	{R: 0x00, G: 0xb0, B: 0xff, A: 0xff},
	{R: 0xaa, G: 0x00, B: 0xff, A: 0xff},
	{R: 0xff, G: 0x6d, B: 0x00, A: 0xff},
	{R: 0xf5, G: 0x00, B: 0x57, A: 0xff},
}

// renderSevenSegment draws a circle split into equal angular segments,
// each filled from the center out proportionally to its score.
func renderSevenSegment(spec Spec) ([]byte, error) {
	const (
		size   = 700.0
		maxR   = 250.0
		cx, cy = size / 2, size / 2
	)
	r, err := chart.PNG(int(size), int(size))
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	n := len(spec.Values)
	step := 2 * math.Pi / float64(n)
	startAt := func(i int) float64 { return math.Pi/2 - float64(i+1)*step }

	for i, v := range spec.Values {
		frac := clamp(v, 0, 100) / 100
		radius := maxR * frac
		if radius < 14 {
			radius = 14
		}
		a0 := startAt(i)
		a1 := a0 + step
		fillWedge(r, cx, cy, 0, radius, a0, a1, segmentPalette[i%len(segmentPalette)], segmentPalette[i%len(segmentPalette)], 0)
	}

	// segment dividers and outer rim on top of the wedges
	black := drawing.ColorBlack
	for i := 0; i < n; i++ {
		x, y := polarPoint(cx, cy, maxR, startAt(i))
		r.SetStrokeColor(black)
		r.SetStrokeWidth(1.5)
		r.MoveTo(int(cx), int(cy))
		r.LineTo(x, y)
		r.Stroke()
	}
	strokeCircle(r, cx, cy, maxR, black, 2)

	// value inside each wedge, label outside the rim
	r.SetFont(font)
	for i, v := range spec.Values {
		mid := startAt(i) + step/2
		frac := clamp(v, 0, 100) / 100
		textR := maxR * frac * 0.6
		if textR < 55 {
			textR = 55
		}
		x, y := polarPoint(cx, cy, textR, mid)
		r.SetFontSize(13)
		r.SetFontColor(textDark)
		centeredText(r, fmt.Sprintf("%.0f%%", v), x, y)

		lx, ly := polarPoint(cx, cy, maxR*1.15, mid)
		r.SetFontSize(12)
		centeredText(r, spec.Labels[i], lx, ly)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render seven-segment chart: %w", err)
	}
	return buf.Bytes(), nil
}

var tealPalette = []drawing.Color{
	{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff},
	{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff},
	{R: 0x00, G: 0x96, B: 0x88, A: 0xff},
	{R: 0x00, G: 0x89, B: 0x7b, A: 0xff},
	{R: 0x00, G: 0x79, B: 0x6b, A: 0xff},
	{R: 0x00, G: 0x69, B: 0x5c, A: 0xff},
}

// renderVariableRadius is the catch-all infographic: one ring wedge per
// section, rim radius proportional to the score relative to the series
// maximum. Used for every category without a dedicated chart kind, so any
// unknown KeyName still yields a visual.
func renderVariableRadius(spec Spec) ([]byte, error) {
	const (
		size   = 700.0
		voidR  = 50.0
		maxRim = 260.0
		cx, cy = size / 2, size / 2
	)
	r, err := chart.PNG(int(size), int(size))
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	maxVal := 0.0
	for _, v := range spec.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 100
	}

	n := len(spec.Values)
	step := 2 * math.Pi / float64(n)
	gap := 2 * math.Pi / 180 // 2 degree gap between wedges
	white := drawing.ColorWhite

	r.SetFont(font)
	for i, v := range spec.Values {
		a1 := math.Pi/2 - float64(i)*step - gap/2
		a0 := a1 - step + gap
		rim := voidR + (maxRim-voidR)*(v/maxVal)
		if rim < voidR+22 {
			rim = voidR + 22
		}
		color := tealPalette[i%len(tealPalette)]
		fillWedge(r, cx, cy, voidR, rim, a0, a1, color, white, 1.5)

		mid := (a0 + a1) / 2
		labelR := rim - 28
		if labelR < voidR+10 {
			labelR = voidR + 10
		}
		x, y := polarPoint(cx, cy, labelR, mid)
		r.SetFontSize(13)
		r.SetFontColor(white)
		centeredText(r, fmt.Sprintf("%.0f%%", v), x, y)

		lx, ly := polarPoint(cx, cy, rim+26, mid)
		r.SetFontSize(11)
		r.SetFontColor(textDark)
		centeredText(r, spec.Labels[i], lx, ly)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render variable-radius chart: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
