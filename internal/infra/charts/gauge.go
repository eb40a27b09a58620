package charts

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var gaugeBands = []drawing.Color{
	{R: 0xe8, G: 0x4e, B: 0x1b, A: 0xff}, // at risk
	{R: 0xf2, G: 0xc0, B: 0x37, A: 0xff}, // average
	{R: 0x5c, G: 0xb8, B: 0x5c, A: 0xff}, // strong
	{R: 0x36, G: 0x9b, B: 0x46, A: 0xff}, // top tier
}

// RenderGauge draws the employability score dial: a 270-degree arc in four
// equal color bands with a needle at score/100.
func RenderGauge(score int) ([]byte, error) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	const (
		width  = 560.0
		height = 460.0
		cx     = width / 2
		cy     = 230.0
		outerR = 180.0
		innerR = 120.0
	)
	r, err := chart.PNG(int(width), int(height))
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	// dial spans 270 degrees, from 225 deg (low) clockwise to -45 deg
	start := 225 * math.Pi / 180
	span := 270 * math.Pi / 180
	bandSpan := span / float64(len(gaugeBands))
	for i, color := range gaugeBands {
		a1 := start - float64(i)*bandSpan
		a0 := a1 - bandSpan
		fillWedge(r, cx, cy, innerR, outerR, a0, a1, color, drawing.ColorWhite, 3)
	}

	// needle
	needleAngle := start - span*float64(score)/100
	needle := drawing.Color{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	tipX, tipY := polarPoint(cx, cy, innerR-18, needleAngle)
	baseLX, baseLY := polarPoint(cx, cy, 12, needleAngle+math.Pi/2)
	baseRX, baseRY := polarPoint(cx, cy, 12, needleAngle-math.Pi/2)
	r.SetFillColor(needle)
	r.MoveTo(tipX, tipY)
	r.LineTo(baseLX, baseLY)
	r.LineTo(baseRX, baseRY)
	r.Close()
	r.Fill()
	r.SetFillColor(needle)
	r.Circle(14, int(cx), int(cy))
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(52)
	centeredText(r, fmt.Sprintf("%d", score), int(cx), int(cy)+110)
	r.SetFontSize(16)
	centeredText(r, "EMPLOYABILITY", int(cx), int(cy)+150)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render gauge: %w", err)
	}
	return buf.Bytes(), nil
}
