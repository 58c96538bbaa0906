package widget

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Typed payload views over the loose data/config maps. Decoding is tolerant:
// a missing or mistyped field yields its zero value so a partial widget always
// renders as a documented empty state. Nothing here returns an error.

type ChartData struct {
	Labels []string
	Values []float64
}

type ChartConfig struct {
	ChartType string
	Color     string
}

type GaugeData struct {
	Value       float64
	Min         float64
	Max         float64
	Label       string
	Unit        string
	Description string
}

// Threshold maps a percent ceiling to a display color. Thresholds are
// expected in ascending Value order; they are deliberately not re-sorted so
// that an unsorted caller stays visible.
type Threshold struct {
	Value float64
	Color string
}

type GaugeConfig struct {
	Thresholds []Threshold
}

type MetricData struct {
	Value  float64
	Unit   string
	Label  string
	Target float64
	// HasTarget distinguishes "no target" from a zero target.
	HasTarget bool
}

type StatsData struct {
	// Value may be numeric or a preformatted string.
	Value    interface{}
	Change   float64
	Trend    string
	Label    string
	Subtitle string
}

type StatsConfig struct {
	Icon  string
	Color string
}

type TableColumn struct {
	Key   string
	Label string
}

type TableData struct {
	Columns []TableColumn
	Rows    []TableRow
}

// TableRow keeps both positional cells and keyed fields; a cell is resolved
// by column key, then label, then position, defaulting to "-".
type TableRow struct {
	Cells  []interface{}
	Fields map[string]interface{}
}

type TextData struct {
	Content string
	Bullets []string
}

type TextConfig struct {
	Alignment string
	FontSize  string
}

type ListItem struct {
	Text    string
	Subtext string
	Icon    string
}

type ListData struct {
	Items []ListItem
}

type ListConfig struct {
	Style     string
	ShowIcons bool
	IconColor string
}

type TimelineEvent struct {
	Title       string
	Date        string
	Description string
	Color       string
	Tags        []string
}

type TimelineData struct {
	Events []TimelineEvent
}

func (w Widget) ChartData() ChartData {
	d := ChartData{
		Labels: stringsAt(w.Data, "labels"),
	}
	for _, v := range sliceAt(w.Data, "values") {
		if f, ok := asFloat(v); ok {
			d.Values = append(d.Values, f)
		}
	}
	return d
}

func (w Widget) ChartConfig() ChartConfig {
	c := ChartConfig{
		ChartType: stringAt(w.Config, "chartType"),
		Color:     stringAt(w.Config, "color"),
	}
	if c.ChartType == "" {
		c.ChartType = "bar"
	}
	return c
}

func (w Widget) GaugeData() GaugeData {
	d := GaugeData{
		Value:       floatAt(w.Data, "value"),
		Min:         floatAt(w.Data, "min"),
		Max:         floatAt(w.Data, "max"),
		Label:       stringAt(w.Data, "label"),
		Unit:        stringAt(w.Data, "unit"),
		Description: stringAt(w.Data, "description"),
	}
	if d.Max == 0 {
		d.Max = 100
	}
	if d.Label == "" {
		d.Label = w.Title
	}
	if d.Label == "" {
		d.Label = "Score"
	}
	return d
}

func (w Widget) GaugeConfig() GaugeConfig {
	var c GaugeConfig
	for _, v := range sliceAt(w.Config, "thresholds") {
		if m, ok := asMap(v); ok {
			c.Thresholds = append(c.Thresholds, Threshold{
				Value: floatAt(m, "value"),
				Color: stringAt(m, "color"),
			})
		}
	}
	if len(c.Thresholds) == 0 {
		c.Thresholds = []Threshold{
			{Value: 33, Color: "#ef4444"},
			{Value: 66, Color: "#f59e0b"},
			{Value: 100, Color: "#10b981"},
		}
	}
	return c
}

func (w Widget) MetricData() MetricData {
	d := MetricData{
		Value: floatAt(w.Data, "value"),
		Unit:  stringAt(w.Data, "unit"),
		Label: stringAt(w.Data, "label"),
	}
	if d.Label == "" {
		d.Label = w.Title
	}
	if d.Label == "" {
		d.Label = "Metric"
	}
	if w.Data != nil {
		if t, ok := asFloat(w.Data["target"]); ok {
			d.Target = t
			d.HasTarget = true
		}
	}
	return d
}

func (w Widget) StatsData() StatsData {
	d := StatsData{
		Trend:    stringAt(w.Data, "trend"),
		Label:    stringAt(w.Data, "label"),
		Subtitle: stringAt(w.Data, "subtitle"),
	}
	if w.Data != nil {
		d.Value = w.Data["value"]
		if f, ok := asFloat(w.Data["change"]); ok {
			d.Change = f
		}
	}
	if d.Label == "" {
		d.Label = w.Title
	}
	if d.Label == "" {
		d.Label = "Metric"
	}
	if d.Trend == "" {
		d.Trend = "neutral"
	}
	return d
}

func (w Widget) StatsConfig() StatsConfig {
	return StatsConfig{
		Icon:  stringAt(w.Config, "icon"),
		Color: stringAt(w.Config, "color"),
	}
}

func (w Widget) TableData() TableData {
	var d TableData
	for _, v := range sliceAt(w.Data, "columns") {
		switch col := v.(type) {
		case string:
			d.Columns = append(d.Columns, TableColumn{Key: col, Label: col})
		default:
			if m, ok := asMap(v); ok {
				c := TableColumn{Key: stringAt(m, "key"), Label: stringAt(m, "label")}
				if c.Label == "" {
					c.Label = c.Key
				}
				d.Columns = append(d.Columns, c)
			}
		}
	}
	for _, v := range sliceAt(w.Data, "rows") {
		var row TableRow
		if cells, ok := asSlice(v); ok {
			row.Cells = cells
		} else if m, ok := asMap(v); ok {
			row.Fields = m
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

// Cell resolves a row value for the given column and position.
func (r TableRow) Cell(col TableColumn, index int) string {
	if r.Fields != nil {
		if v, ok := r.Fields[col.Key]; ok && v != nil {
			return stringify(v)
		}
		if v, ok := r.Fields[col.Label]; ok && v != nil {
			return stringify(v)
		}
	}
	if index >= 0 && index < len(r.Cells) && r.Cells[index] != nil {
		return stringify(r.Cells[index])
	}
	return "-"
}

func (w Widget) TextData() TextData {
	d := TextData{
		Content: stringAt(w.Data, "content"),
		Bullets: stringsAt(w.Data, "bullets"),
	}
	// The raw HTML content mode was removed; anything supplied there is
	// treated as plain text and escaped on render.
	if d.Content == "" {
		d.Content = stringAt(w.Data, "html")
	}
	return d
}

func (w Widget) TextConfig() TextConfig {
	c := TextConfig{
		Alignment: stringAt(w.Config, "alignment"),
		FontSize:  stringAt(w.Config, "fontSize"),
	}
	if c.Alignment == "" {
		c.Alignment = "left"
	}
	if c.FontSize == "" {
		c.FontSize = "medium"
	}
	return c
}

func (w Widget) ListData() ListData {
	var d ListData
	for _, v := range sliceAt(w.Data, "items") {
		switch item := v.(type) {
		case string:
			d.Items = append(d.Items, ListItem{Text: item})
		default:
			if m, ok := asMap(v); ok {
				li := ListItem{
					Text:    firstStringAt(m, "text", "label", "name"),
					Subtext: firstStringAt(m, "subtext", "description"),
					Icon:    stringAt(m, "icon"),
				}
				d.Items = append(d.Items, li)
			}
		}
	}
	return d
}

func (w Widget) ListConfig() ListConfig {
	c := ListConfig{
		Style:     stringAt(w.Config, "style"),
		ShowIcons: true,
		IconColor: stringAt(w.Config, "iconColor"),
	}
	if c.Style == "" {
		c.Style = "bullet"
	}
	if c.IconColor == "" {
		c.IconColor = "#6366f1"
	}
	if w.Config != nil {
		if b, ok := w.Config["showIcons"].(bool); ok {
			c.ShowIcons = b
		}
	}
	return c
}

func (w Widget) TimelineData() TimelineData {
	var d TimelineData
	for _, v := range sliceAt(w.Data, "events") {
		if m, ok := asMap(v); ok {
			d.Events = append(d.Events, TimelineEvent{
				Title:       stringAt(m, "title"),
				Date:        stringAt(m, "date"),
				Description: stringAt(m, "description"),
				Color:       stringAt(m, "color"),
				Tags:        stringsAt(m, "tags"),
			})
		}
	}
	return d
}

// ---- tolerant accessors ----

// asMap accepts both JSON-decoded and BSON-decoded shapes.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case primitive.M:
		return map[string]interface{}(m), true
	}
	return nil, false
}

func asSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case primitive.A:
		return []interface{}(s), true
	}
	return nil, false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringAt(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func firstStringAt(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := stringAt(m, key); s != "" {
			return s
		}
	}
	return ""
}

func floatAt(m map[string]interface{}, key string) float64 {
	if m == nil {
		return 0
	}
	f, _ := asFloat(m[key])
	return f
}

func sliceAt(m map[string]interface{}, key string) []interface{} {
	if m == nil {
		return nil
	}
	s, _ := asSlice(m[key])
	return s
}

func stringsAt(m map[string]interface{}, key string) []string {
	var out []string
	for _, v := range sliceAt(m, key) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	}
	return "-"
}
