package render

import (
	"fmt"
	"html/template"
	"strings"

	"formdash/internal/features/widget"
)

// Page is the input for a full-document render. Both the editor preview and
// the public share view build a Page and go through Document; there is no
// second rendering path.
type Page struct {
	Title   string
	Widgets []widget.Widget
	Theme   widget.Theme
	Layout  widget.Layout
	Editing bool
}

type pageWidget struct {
	Style    template.CSS
	Fragment template.HTML
}

type pageData struct {
	Title     string
	Theme     widget.Theme
	GridStyle template.CSS
	Widgets   []pageWidget
}

var documentTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: {{.Theme.FontFamily}}; background: #f3f4f6; color: {{.Theme.TextColor}}; }
.dashboard-header { padding: 16px 24px; background: {{.Theme.BackgroundColor}}; border-bottom: 1px solid #e5e7eb; }
.dashboard-header h1 { margin: 0; font-size: 20px; color: {{.Theme.PrimaryColor}}; }
.dashboard-grid { display: grid; }
.widget-frame { position: relative; background: {{.Theme.BackgroundColor}}; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); padding: 16px; overflow: hidden; }
.widget-title { margin: 0 0 4px; font-size: 14px; font-weight: 600; }
.widget-description { margin: 0 0 8px; font-size: 12px; color: #6b7280; }
.widget-empty { color: #9ca3af; font-size: 13px; }
.widget-controls { position: absolute; top: 8px; right: 8px; display: flex; gap: 4px; }
.data-table { width: 100%; border-collapse: collapse; font-size: 13px; }
.data-table th, .data-table td { padding: 6px 8px; text-align: left; border-bottom: 1px solid #e5e7eb; }
.stats-value { font-size: 28px; font-weight: 700; }
.trend-up { color: #10b981; } .trend-down { color: #ef4444; } .trend-neutral { color: #6b7280; }
.metric-progress { height: 8px; border-radius: 4px; background: #e5e7eb; overflow: hidden; }
.metric-progress-bar { height: 100%; background: {{.Theme.PrimaryColor}}; }
.list-items, .timeline-events { list-style: none; margin: 0; padding: 0; }
.timeline-event { position: relative; padding-left: 20px; margin-bottom: 12px; }
.timeline-dot { position: absolute; left: 0; top: 4px; width: 10px; height: 10px; border-radius: 50%; }
.timeline-connector { position: absolute; left: 4px; top: 16px; bottom: -12px; width: 2px; background: #e5e7eb; }
</style>
</head>
<body>
<header class="dashboard-header"><h1>{{.Title}}</h1></header>
<main class="dashboard-grid" style="{{.GridStyle}}">
{{range .Widgets}}<div class="widget-cell" style="{{.Style}}">{{.Fragment}}</div>
{{end}}</main>
</body>
</html>
`))

// Document renders a complete standalone HTML page for a dashboard.
func Document(p Page) (string, error) {
	data := pageData{
		Title: p.Title,
		Theme: p.Theme,
		GridStyle: template.CSS(fmt.Sprintf(
			"grid-template-columns: repeat(%d, 1fr); gap: %dpx; padding: %dpx;",
			p.Layout.Columns, p.Layout.Gap, p.Layout.Padding)),
	}
	if data.Title == "" {
		data.Title = "Dashboard"
	}
	for _, w := range p.Widgets {
		data.Widgets = append(data.Widgets, pageWidget{
			Style:    gridStyle(w.Position),
			Fragment: template.HTML(Fragment(w, Options{Editing: p.Editing})),
		})
	}

	var sb strings.Builder
	if err := documentTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// gridStyle places a widget by its grid rectangle. Rows are sized uniformly
// so the h span controls height.
func gridStyle(p widget.Position) template.CSS {
	return template.CSS(fmt.Sprintf(
		"grid-column: %d / span %d; grid-row: %d / span %d;",
		p.X+1, max(p.W, 1), p.Y+1, max(p.H, 1)))
}
