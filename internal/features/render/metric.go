package render

import (
	"math"
	"strings"

	"formdash/internal/features/widget"
)

func metricFragment(w widget.Widget) string {
	d := w.MetricData()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-metric">`)
	sb.WriteString(`<div class="metric-label">` + esc(d.Label) + `</div>`)
	sb.WriteString(`<div class="metric-value">` + trimFloat(d.Value) + esc(d.Unit) + `</div>`)

	if d.HasTarget && d.Target != 0 {
		progress := d.Value / d.Target * 100
		// The bar clamps at full width; the percentage text does not.
		barWidth := math.Min(progress, 100)
		sb.WriteString(`<div class="metric-progress"><div class="metric-progress-bar" style="width:` +
			f(barWidth) + `%"></div></div>`)
		sb.WriteString(`<div class="metric-target">` + f0(progress) + `% of target (` +
			trimFloat(d.Target) + esc(d.Unit) + `)</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
