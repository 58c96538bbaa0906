package widget

import (
	"strings"
	"testing"
)

func TestLibraryCoversEveryType(t *testing.T) {
	for _, typ := range Types() {
		if _, ok := LibraryItemFor(typ); !ok {
			t.Errorf("type %q missing from library", typ)
		}
	}
	if len(Library()) != len(Types()) {
		t.Errorf("library has %d entries, want %d", len(Library()), len(Types()))
	}
}

func TestLibrarySizeBounds(t *testing.T) {
	for _, item := range Library() {
		if item.MinSize.W < 1 || item.MinSize.H < 1 {
			t.Errorf("%s: degenerate min size %+v", item.Type, item.MinSize)
		}
		if item.MaxSize.W < item.MinSize.W || item.MaxSize.H < item.MinSize.H {
			t.Errorf("%s: max size %+v below min size %+v", item.Type, item.MaxSize, item.MinSize)
		}
		if item.MaxSize.W > 12 {
			t.Errorf("%s: max width %d exceeds the 12-column grid", item.Type, item.MaxSize.W)
		}
		if item.Name == "" || item.Icon == "" {
			t.Errorf("%s: incomplete catalog entry %+v", item.Type, item)
		}
	}
}

func TestNewWidgetFromCatalog(t *testing.T) {
	item, _ := LibraryItemFor(TypeChart)
	w := New(item, 3)

	if !strings.HasPrefix(w.ID, "widget-") {
		t.Errorf("id = %q, want widget- prefix", w.ID)
	}
	if w.Type != TypeChart {
		t.Errorf("type = %q", w.Type)
	}
	if w.Title != "New Chart" {
		t.Errorf("title = %q", w.Title)
	}
	if w.Position.X != 0 || w.Position.Y != 6 {
		t.Errorf("position = %+v, want x=0 y=6", w.Position)
	}
	if w.Position.W != item.MinSize.W || w.Position.H != item.MinSize.H {
		t.Errorf("position %+v does not match min size %+v", w.Position, item.MinSize)
	}
}

func TestNewWidgetIDsAreUnique(t *testing.T) {
	item, _ := LibraryItemFor(TypeStatsCard)
	a := New(item, 0)
	b := New(item, 0)
	if a.ID == b.ID {
		t.Errorf("two widgets share id %q", a.ID)
	}
}

func TestNewWidgetSampleData(t *testing.T) {
	gauge, ok := NewOfType(TypeGauge, 0)
	if !ok {
		t.Fatal("gauge missing from catalog")
	}
	d := gauge.GaugeData()
	if d.Value != 75 || d.Min != 0 || d.Max != 100 {
		t.Errorf("gauge sample = %+v, want 75 in [0,100]", d)
	}

	chart, _ := NewOfType(TypeChart, 0)
	cd := chart.ChartData()
	if len(cd.Labels) != 4 || len(cd.Values) != 4 {
		t.Errorf("chart sample = %+v, want 4 labels and 4 values", cd)
	}
	if chart.ChartConfig().ChartType != "bar" {
		t.Errorf("chart sample type = %q", chart.ChartConfig().ChartType)
	}
}

func TestNewOfTypeUnknown(t *testing.T) {
	if _, ok := NewOfType(Type("sparkline"), 0); ok {
		t.Error("unknown type produced a widget")
	}
}
