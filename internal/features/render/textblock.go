package render

import (
	"strings"

	"formdash/internal/features/widget"
)

// textFragment renders bullets when present, otherwise the plain content.
// All text is escaped; raw HTML payloads are never passed through.
func textFragment(w widget.Widget) string {
	d := w.TextData()
	c := w.TextConfig()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-text-block text-` + esc(c.Alignment) +
		` text-size-` + esc(c.FontSize) + `">`)
	header(&sb, w)
	switch {
	case len(d.Bullets) > 0:
		sb.WriteString(`<ul class="text-bullets">`)
		for _, b := range d.Bullets {
			sb.WriteString(`<li>` + esc(b) + `</li>`)
		}
		sb.WriteString(`</ul>`)
	case d.Content != "":
		sb.WriteString(`<p class="text-content">` + esc(d.Content) + `</p>`)
	default:
		sb.WriteString(emptyState("No content"))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
