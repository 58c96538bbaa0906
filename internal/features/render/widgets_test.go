package render

import (
	"strings"
	"testing"

	"formdash/internal/features/widget"
)

func TestStatsCardTrend(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]interface{}
		want    string
		exclude string
	}{
		{
			name: "upward trend",
			data: map[string]interface{}{"value": 1234.0, "change": 12.0, "trend": "up"},
			want: "↑ 12%",
		},
		{
			name: "downward trend shows magnitude",
			data: map[string]interface{}{"value": 50.0, "change": -8.0, "trend": "down"},
			want: "↓ 8%",
		},
		{
			name:    "zero change hides trend row",
			data:    map[string]interface{}{"value": 50.0, "change": 0.0, "trend": "up"},
			exclude: "stats-change",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Fragment(widget.Widget{ID: "s1", Type: widget.TypeStatsCard, Data: tt.data}, Options{})
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("missing %q:\n%s", tt.want, out)
			}
			if tt.exclude != "" && strings.Contains(out, tt.exclude) {
				t.Errorf("unexpected %q:\n%s", tt.exclude, out)
			}
		})
	}
}

func TestMetricProgress(t *testing.T) {
	w := widget.Widget{
		ID:   "m1",
		Type: widget.TypeMetric,
		Data: map[string]interface{}{"value": 42.0, "target": 50.0, "unit": "%"},
	}
	out := Fragment(w, Options{})
	if !strings.Contains(out, "width:84.00%") {
		t.Errorf("progress bar width mismatch:\n%s", out)
	}
	if !strings.Contains(out, "84% of target") {
		t.Errorf("progress text mismatch:\n%s", out)
	}
}

func TestMetricOverTarget(t *testing.T) {
	w := widget.Widget{
		ID:   "m1",
		Type: widget.TypeMetric,
		Data: map[string]interface{}{"value": 75.0, "target": 50.0},
	}
	out := Fragment(w, Options{})
	// The bar clamps at 100% but the text reports the true 150%.
	if !strings.Contains(out, "width:100.00%") {
		t.Errorf("bar should clamp at 100%%:\n%s", out)
	}
	if !strings.Contains(out, "150% of target") {
		t.Errorf("text should not clamp:\n%s", out)
	}
}

func TestMetricWithoutTarget(t *testing.T) {
	w := widget.Widget{
		ID:   "m1",
		Type: widget.TypeMetric,
		Data: map[string]interface{}{"value": 42.0},
	}
	out := Fragment(w, Options{})
	if strings.Contains(out, "metric-progress") {
		t.Errorf("no target means no progress bar:\n%s", out)
	}
}

func TestTableCellResolution(t *testing.T) {
	w := widget.Widget{
		ID:   "t1",
		Type: widget.TypeTable,
		Data: map[string]interface{}{
			"columns": []interface{}{
				map[string]interface{}{"key": "name", "label": "Name"},
				map[string]interface{}{"key": "status", "label": "Status"},
			},
			"rows": []interface{}{
				map[string]interface{}{"name": "Alpha", "Status": "Active"},
				[]interface{}{"Beta"},
			},
		},
	}
	out := Fragment(w, Options{})
	for _, want := range []string{
		"<td>Alpha</td>",  // by key
		"<td>Active</td>", // by label
		"<td>Beta</td>",   // by position
		"<td>-</td>",      // missing cell
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestTableEmptyRows(t *testing.T) {
	w := widget.Widget{
		ID:   "t1",
		Type: widget.TypeTable,
		Data: map[string]interface{}{
			"columns": []interface{}{"Name", "Value", "Status"},
		},
	}
	out := Fragment(w, Options{})
	if !strings.Contains(out, `colspan="3"`) || !strings.Contains(out, "No data available") {
		t.Errorf("empty table should show placeholder row spanning columns:\n%s", out)
	}
}

func TestTextBlockBulletsWinOverContent(t *testing.T) {
	w := widget.Widget{
		ID:   "x1",
		Type: widget.TypeTextBlock,
		Data: map[string]interface{}{
			"content": "fallback text",
			"bullets": []interface{}{"one", "two"},
		},
	}
	out := Fragment(w, Options{})
	if !strings.Contains(out, "<li>one</li>") {
		t.Errorf("bullets should render:\n%s", out)
	}
	if strings.Contains(out, "fallback text") {
		t.Errorf("content should be suppressed when bullets exist:\n%s", out)
	}
}

func TestListStyles(t *testing.T) {
	data := map[string]interface{}{"items": []interface{}{"a", "b"}}
	tests := []struct {
		style string
		want  string
	}{
		{"bullet", "•"},
		{"check", "✓"},
		{"number", "2."},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			w := widget.Widget{
				ID:     "l1",
				Type:   widget.TypeList,
				Data:   data,
				Config: map[string]interface{}{"style": tt.style},
			}
			out := Fragment(w, Options{})
			if !strings.Contains(out, tt.want) {
				t.Errorf("style %s missing marker %q:\n%s", tt.style, tt.want, out)
			}
		})
	}
}

func TestListHiddenIcons(t *testing.T) {
	w := widget.Widget{
		ID:     "l1",
		Type:   widget.TypeList,
		Data:   map[string]interface{}{"items": []interface{}{"a"}},
		Config: map[string]interface{}{"showIcons": false},
	}
	out := Fragment(w, Options{})
	if strings.Contains(out, "list-marker") {
		t.Errorf("markers should be hidden:\n%s", out)
	}
}

func TestTimelineConnectors(t *testing.T) {
	w := widget.Widget{
		ID:   "tl1",
		Type: widget.TypeTimeline,
		Data: map[string]interface{}{
			"events": []interface{}{
				map[string]interface{}{"date": "2024-01-01", "title": "First"},
				map[string]interface{}{"date": "bogus", "title": "Second"},
			},
		},
	}
	out := Fragment(w, Options{})
	if got := strings.Count(out, "timeline-connector"); got != 1 {
		t.Errorf("connector count = %d, want 1 (last event has none):\n%s", got, out)
	}
	if !strings.Contains(out, "Jan 1, 2024") {
		t.Errorf("parseable date should be formatted:\n%s", out)
	}
	if !strings.Contains(out, "bogus") {
		t.Errorf("unparseable date should pass through:\n%s", out)
	}
}

func TestDocumentContainsAllWidgets(t *testing.T) {
	page := Page{
		Title:  "Q1 Review",
		Theme:  widget.DefaultTheme(),
		Layout: widget.DefaultLayout(),
		Widgets: []widget.Widget{
			{ID: "a", Type: widget.TypeTextBlock, Title: "Notes"},
			{ID: "b", Type: widget.TypeList, Title: "Items"},
		},
	}
	out, err := Document(page)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	for _, want := range []string{
		"Q1 Review",
		`data-widget-id="a"`,
		`data-widget-id="b"`,
		"repeat(12, 1fr)",
		"gap: 16px",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(out, "widget-delete") {
		t.Error("share document must not include edit controls")
	}
}
