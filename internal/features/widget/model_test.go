package widget

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCloneIsolatesData(t *testing.T) {
	w := Widget{
		ID:   "widget-a",
		Type: TypeChart,
		Data: map[string]interface{}{
			"labels": []interface{}{"Q1", "Q2"},
			"nested": map[string]interface{}{"k": "v"},
		},
		Config: map[string]interface{}{"chartType": "bar"},
	}

	c := w.Clone()
	c.Data["labels"].([]interface{})[0] = "changed"
	c.Data["nested"].(map[string]interface{})["k"] = "changed"
	c.Config["chartType"] = "pie"

	if w.Data["labels"].([]interface{})[0] != "Q1" {
		t.Error("clone aliased the labels slice")
	}
	if w.Data["nested"].(map[string]interface{})["k"] != "v" {
		t.Error("clone aliased the nested map")
	}
	if w.Config["chartType"] != "bar" {
		t.Error("clone aliased the config map")
	}
}

func TestCloneHandlesBSONShapes(t *testing.T) {
	// A widget loaded from Mongo carries primitive.M / primitive.A values.
	w := Widget{
		Type: TypeTimeline,
		Data: map[string]interface{}{
			"events": primitive.A{
				primitive.M{"title": "Launch", "date": "2024-01-01"},
			},
		},
	}

	c := w.Clone()
	events, ok := c.Data["events"].([]interface{})
	if !ok {
		t.Fatalf("events = %T, want []interface{}", c.Data["events"])
	}
	events[0].(map[string]interface{})["title"] = "changed"

	original := w.Data["events"].(primitive.A)[0].(primitive.M)
	if original["title"] != "Launch" {
		t.Error("clone aliased the BSON event map")
	}
}

func TestCloneWidgetsNil(t *testing.T) {
	if CloneWidgets(nil) != nil {
		t.Error("cloning nil should stay nil")
	}
}

func TestPayloadDefaults(t *testing.T) {
	w := Widget{Type: TypeGauge, Title: "NPS"}

	g := w.GaugeData()
	if g.Max != 100 {
		t.Errorf("max = %v, want default 100", g.Max)
	}
	if g.Label != "NPS" {
		t.Errorf("label = %q, want widget title", g.Label)
	}

	thresholds := w.GaugeConfig().Thresholds
	if len(thresholds) != 3 || thresholds[0].Color != "#ef4444" || thresholds[2].Value != 100 {
		t.Errorf("default thresholds = %+v", thresholds)
	}

	m := Widget{Type: TypeMetric}.MetricData()
	if m.HasTarget {
		t.Error("metric without target reports HasTarget")
	}

	s := Widget{Type: TypeStatsCard}.StatsData()
	if s.Trend != "neutral" || s.Label != "Metric" {
		t.Errorf("stats defaults = %+v", s)
	}
}

func TestMetricZeroTargetIsStillATarget(t *testing.T) {
	w := Widget{Type: TypeMetric, Data: map[string]interface{}{"value": 5.0, "target": 0.0}}
	d := w.MetricData()
	if !d.HasTarget || d.Target != 0 {
		t.Errorf("metric = %+v, want HasTarget with zero target", d)
	}
}

func TestTableCellResolution(t *testing.T) {
	col := TableColumn{Key: "score", Label: "Score"}

	tests := []struct {
		name string
		row  TableRow
		want string
	}{
		{"by key", TableRow{Fields: map[string]interface{}{"score": 42.0}}, "42"},
		{"by label", TableRow{Fields: map[string]interface{}{"Score": "high"}}, "high"},
		{"by position", TableRow{Cells: []interface{}{"first", "second"}}, "second"},
		{"missing", TableRow{}, "-"},
		{"nil field falls through", TableRow{Fields: map[string]interface{}{"score": nil}, Cells: []interface{}{"a", "b"}}, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Cell(col, 1); got != tt.want {
				t.Errorf("Cell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextDataFoldsHTMLIntoContent(t *testing.T) {
	w := Widget{Type: TypeTextBlock, Data: map[string]interface{}{"html": "<b>bold</b>"}}
	if got := w.TextData().Content; got != "<b>bold</b>" {
		t.Errorf("content = %q", got)
	}

	w.Data["content"] = "plain"
	if got := w.TextData().Content; got != "plain" {
		t.Errorf("content = %q, want content to win over html", got)
	}
}

func TestListDataShapes(t *testing.T) {
	w := Widget{Type: TypeList, Data: map[string]interface{}{
		"items": []interface{}{
			"plain string",
			map[string]interface{}{"text": "texted", "subtext": "sub"},
			map[string]interface{}{"label": "labeled"},
		},
	}}
	items := w.ListData().Items
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Text != "plain string" || items[1].Text != "texted" || items[2].Text != "labeled" {
		t.Errorf("items = %+v", items)
	}
	if items[1].Subtext != "sub" {
		t.Errorf("subtext = %q", items[1].Subtext)
	}
}
