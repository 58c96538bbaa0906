package render

import (
	"strings"
	"time"

	"formdash/internal/features/widget"
)

var timelineDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// formatEventDate pretty-prints a parseable date and returns anything else
// verbatim so a malformed event stays visible.
func formatEventDate(raw string) string {
	for _, layout := range timelineDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}

func timelineFragment(w widget.Widget) string {
	d := w.TimelineData()

	var sb strings.Builder
	sb.WriteString(`<div class="widget widget-timeline">`)
	header(&sb, w)
	if len(d.Events) == 0 {
		sb.WriteString(emptyState("No events to display"))
		sb.WriteString(`</div>`)
		return sb.String()
	}

	sb.WriteString(`<ol class="timeline-events">`)
	for i, ev := range d.Events {
		color := ev.Color
		if color == "" {
			color = palette[0]
		}
		sb.WriteString(`<li class="timeline-event">`)
		sb.WriteString(`<span class="timeline-dot" style="background-color:` + esc(color) + `"></span>`)
		if i < len(d.Events)-1 {
			sb.WriteString(`<span class="timeline-connector"></span>`)
		}
		sb.WriteString(`<div class="timeline-body">`)
		sb.WriteString(`<span class="timeline-date">` + esc(formatEventDate(ev.Date)) + `</span>`)
		sb.WriteString(`<span class="timeline-title">` + esc(ev.Title) + `</span>`)
		if ev.Description != "" {
			sb.WriteString(`<p class="timeline-description">` + esc(ev.Description) + `</p>`)
		}
		if len(ev.Tags) > 0 {
			sb.WriteString(`<div class="timeline-tags">`)
			for _, tag := range ev.Tags {
				sb.WriteString(`<span class="timeline-tag">` + esc(tag) + `</span>`)
			}
			sb.WriteString(`</div>`)
		}
		sb.WriteString(`</div></li>`)
	}
	sb.WriteString(`</ol></div>`)
	return sb.String()
}
