package render

import (
	"math"
	"strconv"
	"strings"

	"formdash/internal/features/widget"
)

func statsFragment(w widget.Widget) string {
	d := w.StatsData()
	c := w.StatsConfig()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-stats-card">`)
	sb.WriteString(`<div class="stats-label">`)
	if c.Icon != "" {
		sb.WriteString(`<span class="stats-icon">` + esc(c.Icon) + `</span>`)
	}
	sb.WriteString(esc(d.Label) + `</div>`)

	color := c.Color
	if color == "" {
		color = palette[0]
	}
	sb.WriteString(`<div class="stats-value" style="color:` + esc(color) + `">` +
		esc(formatStatValue(d.Value)) + `</div>`)

	// A zero change suppresses the trend row entirely.
	if d.Change != 0 {
		arrow, class := trendMarker(d.Trend)
		sb.WriteString(`<div class="stats-change ` + class + `">` + arrow + ` ` +
			strconv.FormatFloat(math.Abs(d.Change), 'f', -1, 64) + `%</div>`)
	}
	if d.Subtitle != "" {
		sb.WriteString(`<div class="stats-subtitle">` + esc(d.Subtitle) + `</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func trendMarker(trend string) (arrow, class string) {
	switch trend {
	case "up":
		return "↑", "trend-up"
	case "down":
		return "↓", "trend-down"
	}
	return "→", "trend-neutral"
}
