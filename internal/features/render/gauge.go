package render

import (
	"math"
	"strings"

	"formdash/internal/features/widget"
)

const (
	gaugeWidth  = 250
	gaugeHeight = 200

	// The arc sweeps 1.6π clockwise, leaving a 0.4π opening at the bottom.
	gaugeStartAngle = 0.7 * math.Pi
	gaugeEndAngle   = 2.3 * math.Pi
)

// gaugePercent normalizes value into [0,1] over [min,max]. Out-of-range
// values clamp; a degenerate range reads as empty.
func gaugePercent(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	pct := (value - min) / (max - min)
	return math.Min(math.Max(pct, 0), 1)
}

// gaugeAngle maps a fill fraction onto the arc.
func gaugeAngle(pct float64) float64 {
	return gaugeStartAngle + (gaugeEndAngle-gaugeStartAngle)*pct
}

// gaugeColor walks the thresholds in stored order and returns the first whose
// ceiling the percentage does not exceed, falling back to the first entry.
func gaugeColor(thresholds []widget.Threshold, pct float64) string {
	if len(thresholds) == 0 {
		return palette[0]
	}
	for _, t := range thresholds {
		if pct*100 <= t.Value {
			return t.Color
		}
	}
	return thresholds[0].Color
}

func gaugeFragment(w widget.Widget) string {
	d := w.GaugeData()
	c := w.GaugeConfig()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-gauge">`)
	header(&sb, w)
	sb.WriteString(gaugeSVG(d, c))
	if d.Description != "" {
		sb.WriteString(`<p class="gauge-description">` + esc(d.Description) + `</p>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func gaugeSVG(d widget.GaugeData, c widget.GaugeConfig) string {
	pct := gaugePercent(d.Value, d.Min, d.Max)
	valueAngle := gaugeAngle(pct)
	color := gaugeColor(c.Thresholds, pct)

	cx := float64(gaugeWidth) / 2
	cy := float64(gaugeHeight) * 0.7
	r := math.Min(gaugeWidth, gaugeHeight) * 0.35
	stroke := r * 0.15

	var sb strings.Builder
	sb.WriteString(`<svg class="gauge-canvas" viewBox="0 0 250 200" width="250" height="200">`)
	sb.WriteString(arcPath(cx, cy, r, gaugeStartAngle, gaugeEndAngle, "#e5e7eb", stroke))
	if pct > 0 {
		sb.WriteString(arcPath(cx, cy, r, gaugeStartAngle, valueAngle, color, stroke))
	}

	// Needle and hub.
	nx := cx + math.Cos(valueAngle)*r*0.7
	ny := cy + math.Sin(valueAngle)*r*0.7
	sb.WriteString(`<line x1="` + f(cx) + `" y1="` + f(cy) + `" x2="` + f(nx) + `" y2="` + f(ny) +
		`" stroke="#374151" stroke-width="3" stroke-linecap="round"/>`)
	sb.WriteString(`<circle cx="` + f(cx) + `" cy="` + f(cy) + `" r="` + f(r*0.08) + `" fill="#374151"/>`)

	sb.WriteString(`<text x="` + f(cx) + `" y="` + f(cy+r*0.5) +
		`" text-anchor="middle" font-size="24" font-weight="bold" fill="#1f2937">` +
		f0(d.Value) + esc(d.Unit) + `</text>`)
	sb.WriteString(`<text x="` + f(cx) + `" y="` + f(cy+r*0.5+20) +
		`" text-anchor="middle" font-size="12" fill="#6b7280">` + esc(d.Label) + `</text>`)
	sb.WriteString(`</svg>`)
	return sb.String()
}

// arcPath emits a stroked circular arc from a0 to a1, clockwise.
func arcPath(cx, cy, r, a0, a1 float64, color string, width float64) string {
	x1 := cx + r*math.Cos(a0)
	y1 := cy + r*math.Sin(a0)
	x2 := cx + r*math.Cos(a1)
	y2 := cy + r*math.Sin(a1)
	largeArc := "0"
	if a1-a0 > math.Pi {
		largeArc = "1"
	}
	return `<path d="M ` + f(x1) + ` ` + f(y1) +
		` A ` + f(r) + ` ` + f(r) + ` 0 ` + largeArc + ` 1 ` + f(x2) + ` ` + f(y2) +
		`" fill="none" stroke="` + color + `" stroke-width="` + f(width) + `" stroke-linecap="round"/>`
}
