package render

import (
	"strconv"
	"strings"

	"formdash/internal/features/widget"
)

func listFragment(w widget.Widget) string {
	d := w.ListData()
	c := w.ListConfig()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-list">`)
	header(&sb, w)
	if len(d.Items) == 0 {
		sb.WriteString(emptyState("No items to display"))
		sb.WriteString(`</div>`)
		return sb.String()
	}

	sb.WriteString(`<ul class="list-items list-` + esc(c.Style) + `">`)
	for i, item := range d.Items {
		sb.WriteString(`<li class="list-item">`)
		if c.ShowIcons {
			sb.WriteString(`<span class="list-marker" style="color:` + esc(c.IconColor) + `">` +
				listMarker(c.Style, item.Icon, i) + `</span>`)
		}
		sb.WriteString(`<span class="list-text">` + esc(item.Text) + `</span>`)
		if item.Subtext != "" {
			sb.WriteString(`<span class="list-subtext">` + esc(item.Subtext) + `</span>`)
		}
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></div>`)
	return sb.String()
}

// listMarker picks the per-item marker: an explicit icon wins, then the
// configured style.
func listMarker(style, icon string, index int) string {
	if icon != "" {
		return esc(icon)
	}
	switch style {
	case "number":
		return strconv.Itoa(index+1) + "."
	case "check":
		return "✓"
	}
	return "•"
}
