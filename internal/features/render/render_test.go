package render

import (
	"strings"
	"testing"

	"formdash/internal/features/widget"
)

func TestFragmentEmptyStates(t *testing.T) {
	tests := []struct {
		widgetType widget.Type
		want       string
	}{
		{widget.TypeChart, "No data available"},
		{widget.TypeTable, "No data available"},
		{widget.TypeList, "No items to display"},
		{widget.TypeTimeline, "No events to display"},
		{widget.TypeTextBlock, "No content"},
	}
	for _, tt := range tests {
		t.Run(string(tt.widgetType), func(t *testing.T) {
			out := Fragment(widget.Widget{ID: "w1", Type: tt.widgetType}, Options{})
			if out == "" {
				t.Fatal("expected non-empty output for nil data")
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing empty state %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestFragmentNeverEmpty(t *testing.T) {
	for _, typ := range widget.Types() {
		out := Fragment(widget.Widget{ID: "w1", Type: typ}, Options{})
		if out == "" {
			t.Errorf("type %s rendered empty output for nil data", typ)
		}
	}
}

func TestFragmentDeterministic(t *testing.T) {
	w, ok := widget.NewOfType(widget.TypeChart, 0)
	if !ok {
		t.Fatal("chart missing from library")
	}
	first := Fragment(w, Options{})
	for i := 0; i < 3; i++ {
		if got := Fragment(w, Options{}); got != first {
			t.Fatal("repeated render produced different output")
		}
	}
}

func TestFragmentUnknownType(t *testing.T) {
	out := Fragment(widget.Widget{ID: "w1", Type: "sparkline"}, Options{})
	if !strings.Contains(out, "Unknown widget type: sparkline") {
		t.Errorf("missing unknown-type fallback: %s", out)
	}
}

func TestFragmentEditControls(t *testing.T) {
	w := widget.Widget{ID: "w9", Type: widget.TypeTextBlock}

	edit := Fragment(w, Options{Editing: true})
	if !strings.Contains(edit, "widget-delete") || !strings.Contains(edit, `data-widget-id="w9"`) {
		t.Errorf("edit mode missing controls: %s", edit)
	}
	view := Fragment(w, Options{})
	if strings.Contains(view, "widget-delete") {
		t.Errorf("view mode leaked edit controls: %s", view)
	}
}

func TestFragmentEscapesContent(t *testing.T) {
	w := widget.Widget{
		ID:    "w1",
		Type:  widget.TypeTextBlock,
		Title: "<script>alert(1)</script>",
		Data:  map[string]interface{}{"html": "<img onerror=x>"},
	}
	out := Fragment(w, Options{})
	if strings.Contains(out, "<script>") || strings.Contains(out, "<img") {
		t.Errorf("unescaped markup in output: %s", out)
	}
	if !strings.Contains(out, "&lt;img") {
		t.Errorf("html payload should render as escaped text: %s", out)
	}
}
