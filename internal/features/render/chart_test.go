package render

import (
	"strings"
	"testing"

	"formdash/internal/features/widget"
)

func chartWidget(chartType string, labels []interface{}, values []interface{}) widget.Widget {
	return widget.Widget{
		ID:     "c1",
		Type:   widget.TypeChart,
		Data:   map[string]interface{}{"labels": labels, "values": values},
		Config: map[string]interface{}{"chartType": chartType},
	}
}

func TestBarChartGeometry(t *testing.T) {
	w := chartWidget("bar",
		[]interface{}{"A", "B"},
		[]interface{}{10.0, 20.0})
	out := Fragment(w, Options{})

	// Two slots over the 320px plot area: slot width 160, bars at the
	// 10% inset, 80% wide.
	if !strings.Contains(out, `<rect x="56.00"`) {
		t.Errorf("first bar x mismatch:\n%s", out)
	}
	if !strings.Contains(out, `<rect x="216.00"`) {
		t.Errorf("second bar x mismatch:\n%s", out)
	}
	if !strings.Contains(out, `width="128.00"`) {
		t.Errorf("bar width mismatch:\n%s", out)
	}
	// The max value spans the full 220px plot height from y=40.
	if !strings.Contains(out, `y="40.00" width="128.00" height="220.00"`) {
		t.Errorf("max bar should reach top padding:\n%s", out)
	}
}

func TestBarChartPaletteCycles(t *testing.T) {
	labels := make([]interface{}, 12)
	values := make([]interface{}, 12)
	for i := range labels {
		labels[i] = "L"
		values[i] = 1.0
	}
	out := Fragment(chartWidget("bar", labels, values), Options{})
	if strings.Count(out, `fill="`+palette[0]+`"`) != 2 {
		t.Errorf("11th bar should reuse the first palette color:\n%s", out)
	}
}

func TestLineChartMarkers(t *testing.T) {
	w := chartWidget("line",
		[]interface{}{"A", "B", "C"},
		[]interface{}{1.0, 2.0, 3.0})
	out := Fragment(w, Options{})
	if !strings.Contains(out, "<polyline") {
		t.Errorf("missing polyline:\n%s", out)
	}
	if got := strings.Count(out, `r="4"`); got != 3 {
		t.Errorf("marker count = %d, want 3:\n%s", got, out)
	}
	// First and last points sit on the padding edges.
	if !strings.Contains(out, `cx="40.00"`) || !strings.Contains(out, `cx="360.00"`) {
		t.Errorf("endpoint markers misplaced:\n%s", out)
	}
}

func TestPieChartSlices(t *testing.T) {
	w := chartWidget("pie",
		[]interface{}{"A", "B"},
		[]interface{}{1.0, 3.0})
	out := Fragment(w, Options{})
	if got := strings.Count(out, "<path"); got != 2 {
		t.Errorf("slice count = %d, want 2:\n%s", got, out)
	}
	// The 3/4 slice sweeps more than π so it needs the large-arc flag.
	if !strings.Contains(out, ` 0 1 1 `) {
		t.Errorf("large slice missing large-arc flag:\n%s", out)
	}
}

func TestDonutChartHole(t *testing.T) {
	w := chartWidget("donut",
		[]interface{}{"A", "B"},
		[]interface{}{1.0, 1.0})
	out := Fragment(w, Options{})
	// Radius 130, hole at 60%.
	if !strings.Contains(out, `r="78.00" fill="#ffffff"`) {
		t.Errorf("missing donut hole:\n%s", out)
	}
}

func TestChartAllZeroValues(t *testing.T) {
	out := Fragment(chartWidget("bar",
		[]interface{}{"A"},
		[]interface{}{0.0}), Options{})
	if !strings.Contains(out, `height="0.00"`) {
		t.Errorf("zero values should draw zero-height bars, not blow up:\n%s", out)
	}
}

func TestUnknownChartTypeFallsBackToBar(t *testing.T) {
	out := Fragment(chartWidget("scatter",
		[]interface{}{"A"},
		[]interface{}{5.0}), Options{})
	if !strings.Contains(out, "<rect") {
		t.Errorf("unknown chart type should draw bars:\n%s", out)
	}
}
