package render

import (
	"html"
	"strings"

	"formdash/internal/features/widget"
)

// Options controls rendering mode. Previewing uses the exact same output
// with Editing false; there is no separate preview path.
type Options struct {
	Editing bool
}

// Fragment renders one widget to an HTML fragment. It is a pure function of
// its inputs: no I/O, no mutation of the widget, identical output for
// identical input. A partial or missing payload renders the widget's empty
// state; an unknown type renders a visible inline fallback. Nothing here
// can fail a dashboard render.
func Fragment(w widget.Widget, opts Options) string {
	var body string
	switch w.Type {
	case widget.TypeChart:
		body = chartFragment(w)
	case widget.TypeStatsCard:
		body = statsFragment(w)
	case widget.TypeTable:
		body = tableFragment(w)
	case widget.TypeTextBlock:
		body = textFragment(w)
	case widget.TypeMetric:
		body = metricFragment(w)
	case widget.TypeList:
		body = listFragment(w)
	case widget.TypeTimeline:
		body = timelineFragment(w)
	case widget.TypeGauge:
		body = gaugeFragment(w)
	default:
		body = unknownFragment(w)
	}

	var sb strings.Builder
	sb.WriteString(`<div class="widget-frame" data-widget-id="` + esc(w.ID) + `">`)
	sb.WriteString(body)
	if opts.Editing {
		sb.WriteString(controls(w))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// controls renders the edit-mode affordances. The buttons carry the widget
// id; click wiring belongs to the embedding page.
func controls(w widget.Widget) string {
	id := esc(w.ID)
	return `<div class="widget-controls">` +
		`<button type="button" class="widget-edit" data-widget-id="` + id + `" title="Edit widget">✎</button>` +
		`<button type="button" class="widget-delete" data-widget-id="` + id + `" title="Delete widget">🗑</button>` +
		`</div>`
}

func unknownFragment(w widget.Widget) string {
	return `<div class="widget widget-unknown"><p>Unknown widget type: ` + esc(string(w.Type)) + `</p></div>`
}

// header emits the shared title/description block.
func header(sb *strings.Builder, w widget.Widget) {
	if w.Title != "" {
		sb.WriteString(`<h3 class="widget-title">` + esc(w.Title) + `</h3>`)
	}
	if w.Description != "" {
		sb.WriteString(`<p class="widget-description">` + esc(w.Description) + `</p>`)
	}
}

func emptyState(message string) string {
	return `<p class="widget-empty">` + esc(message) + `</p>`
}

func esc(s string) string {
	return html.EscapeString(s)
}
