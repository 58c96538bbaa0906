package render

import (
	"math"
	"strconv"
	"strings"

	"formdash/internal/features/widget"
)

const (
	chartWidth   = 400
	chartHeight  = 300
	chartPadding = 40
)

// palette cycles per data point for bars and slices.
var palette = []string{
	"#6366f1", "#8b5cf6", "#ec4899", "#f59e0b", "#10b981",
	"#06b6d4", "#f97316", "#ef4444", "#84cc16", "#a855f7",
}

func chartFragment(w widget.Widget) string {
	d := w.ChartData()
	c := w.ChartConfig()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-chart">`)
	header(&sb, w)
	if len(d.Labels) == 0 || len(d.Values) == 0 {
		sb.WriteString(emptyState("No data available"))
	} else {
		sb.WriteString(chartSVG(c.ChartType, d))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func chartSVG(chartType string, d widget.ChartData) string {
	var sb strings.Builder
	sb.WriteString(`<svg class="chart-canvas" viewBox="0 0 ` +
		strconv.Itoa(chartWidth) + ` ` + strconv.Itoa(chartHeight) +
		`" width="` + strconv.Itoa(chartWidth) + `" height="` + strconv.Itoa(chartHeight) + `">`)
	switch chartType {
	case "line":
		lineChart(&sb, d)
	case "pie":
		pieChart(&sb, d, false)
	case "donut":
		pieChart(&sb, d, true)
	default:
		barChart(&sb, d)
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// barChart draws one rectangle per value. Each bar occupies the middle 80%
// of its slot and the tallest value reaches the top padding line.
func barChart(sb *strings.Builder, d widget.ChartData) {
	n := len(d.Values)
	maxValue := maxOf(d.Values)
	barWidth := float64(chartWidth-2*chartPadding) / float64(n)
	scale := 0.0
	if maxValue > 0 {
		scale = float64(chartHeight-2*chartPadding) / maxValue
	}

	for i, v := range d.Values {
		barHeight := v * scale
		x := float64(chartPadding) + float64(i)*barWidth + barWidth*0.1
		y := float64(chartHeight-chartPadding) - barHeight
		sb.WriteString(`<rect x="` + f(x) + `" y="` + f(y) +
			`" width="` + f(barWidth*0.8) + `" height="` + f(barHeight) +
			`" fill="` + palette[i%len(palette)] + `"/>`)
		if i < len(d.Labels) {
			sb.WriteString(`<text x="` + f(x+barWidth*0.4) + `" y="` + strconv.Itoa(chartHeight-chartPadding+20) +
				`" text-anchor="middle" font-size="12" fill="#6b7280">` + esc(d.Labels[i]) + `</text>`)
		}
	}
}

// lineChart draws a polyline through evenly spaced points with a circular
// marker on each.
func lineChart(sb *strings.Builder, d widget.ChartData) {
	n := len(d.Values)
	maxValue := maxOf(d.Values)
	scale := 0.0
	if maxValue > 0 {
		scale = float64(chartHeight-2*chartPadding) / maxValue
	}
	xStep := 0.0
	if n > 1 {
		xStep = float64(chartWidth-2*chartPadding) / float64(n-1)
	}

	points := make([]string, 0, n)
	for i, v := range d.Values {
		x := float64(chartPadding) + float64(i)*xStep
		y := float64(chartHeight-chartPadding) - v*scale
		points = append(points, f(x)+","+f(y))
	}
	sb.WriteString(`<polyline points="` + strings.Join(points, " ") +
		`" fill="none" stroke="` + palette[0] + `" stroke-width="3"/>`)
	for i, v := range d.Values {
		x := float64(chartPadding) + float64(i)*xStep
		y := float64(chartHeight-chartPadding) - v*scale
		sb.WriteString(`<circle cx="` + f(x) + `" cy="` + f(y) + `" r="4" fill="` + palette[0] + `"/>`)
		if i < len(d.Labels) {
			sb.WriteString(`<text x="` + f(x) + `" y="` + strconv.Itoa(chartHeight-chartPadding+20) +
				`" text-anchor="middle" font-size="12" fill="#6b7280">` + esc(d.Labels[i]) + `</text>`)
		}
	}
}

// pieChart draws proportional slices clockwise from twelve o'clock. A donut
// overlays a background-colored disc at 60% of the radius.
func pieChart(sb *strings.Builder, d widget.ChartData, donut bool) {
	total := 0.0
	for _, v := range d.Values {
		total += v
	}
	if total <= 0 {
		return
	}

	cx := float64(chartWidth) / 2
	cy := float64(chartHeight) / 2
	r := math.Min(chartWidth, chartHeight)/2 - 20

	angle := -math.Pi / 2
	for i, v := range d.Values {
		slice := (v / total) * 2 * math.Pi
		x1 := cx + r*math.Cos(angle)
		y1 := cy + r*math.Sin(angle)
		x2 := cx + r*math.Cos(angle+slice)
		y2 := cy + r*math.Sin(angle+slice)
		largeArc := "0"
		if slice > math.Pi {
			largeArc = "1"
		}
		sb.WriteString(`<path d="M ` + f(cx) + ` ` + f(cy) +
			` L ` + f(x1) + ` ` + f(y1) +
			` A ` + f(r) + ` ` + f(r) + ` 0 ` + largeArc + ` 1 ` + f(x2) + ` ` + f(y2) +
			` Z" fill="` + palette[i%len(palette)] + `"/>`)
		angle += slice
	}
	if donut {
		sb.WriteString(`<circle cx="` + f(cx) + `" cy="` + f(cy) + `" r="` + f(r*0.6) + `" fill="#ffffff"/>`)
	}
}

func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// f formats a coordinate with enough precision for stable SVG output.
func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
