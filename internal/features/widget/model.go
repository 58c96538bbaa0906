package widget

// Type identifies the visual kind of a widget. The set is closed; an
// unrecognized value is rendered as a visible fallback, never an error.
type Type string

const (
	TypeChart     Type = "chart"
	TypeStatsCard Type = "stats-card"
	TypeTable     Type = "table"
	TypeTextBlock Type = "text-block"
	TypeMetric    Type = "metric"
	TypeList      Type = "list"
	TypeTimeline  Type = "timeline"
	TypeGauge     Type = "gauge"
)

// Types lists every known widget type in catalog order.
func Types() []Type {
	return []Type{
		TypeChart, TypeStatsCard, TypeTable, TypeTextBlock,
		TypeMetric, TypeGauge, TypeList, TypeTimeline,
	}
}

// Size is a coarse authoring hint; the rendered footprint comes from Position.
type Size string

const (
	SizeSmall     Size = "small"
	SizeMedium    Size = "medium"
	SizeLarge     Size = "large"
	SizeFullWidth Size = "full-width"
)

// Position is a grid rectangle in grid-cell units.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	W int `json:"w" bson:"w"`
	H int `json:"h" bson:"h"`
}

// Widget is one placed visual element on a dashboard. Data and Config are
// stored loose because the document round-trips through JSON and BSON; the
// render boundary decodes them into the typed payloads in payload.go.
type Widget struct {
	ID          string                 `json:"id" bson:"id"`
	Type        Type                   `json:"type" bson:"type"`
	Size        Size                   `json:"size" bson:"size"`
	Title       string                 `json:"title" bson:"title"`
	Description string                 `json:"description,omitempty" bson:"description,omitempty"`
	Position    Position               `json:"position" bson:"position"`
	Data        map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	Config      map[string]interface{} `json:"config,omitempty" bson:"config,omitempty"`
}

// Theme holds dashboard-wide visual settings. There is no per-widget
// override beyond each widget's own config color.
type Theme struct {
	ID              string `json:"id" bson:"id"`
	Name            string `json:"name" bson:"name"`
	PrimaryColor    string `json:"primaryColor" bson:"primary_color"`
	SecondaryColor  string `json:"secondaryColor" bson:"secondary_color"`
	AccentColor     string `json:"accentColor" bson:"accent_color"`
	BackgroundColor string `json:"backgroundColor" bson:"background_color"`
	TextColor       string `json:"textColor" bson:"text_color"`
	BorderRadius    string `json:"borderRadius" bson:"border_radius"`
	ShadowIntensity string `json:"shadowIntensity" bson:"shadow_intensity"`
	FontFamily      string `json:"fontFamily" bson:"font_family"`
	FontSize        string `json:"fontSize" bson:"font_size"`
}

// Layout holds the dashboard grid settings.
type Layout struct {
	Type       string `json:"type" bson:"type"`
	Columns    int    `json:"columns" bson:"columns"`
	Gap        int    `json:"gap" bson:"gap"`
	Padding    int    `json:"padding" bson:"padding"`
	Responsive bool   `json:"responsive" bson:"responsive"`
}

func DefaultTheme() Theme {
	return Theme{
		ID:              "default",
		Name:            "Default",
		PrimaryColor:    "#6366f1",
		SecondaryColor:  "#8b5cf6",
		AccentColor:     "#ec4899",
		BackgroundColor: "#ffffff",
		TextColor:       "#1f2937",
		BorderRadius:    "medium",
		ShadowIntensity: "light",
		FontFamily:      "Inter, system-ui, sans-serif",
		FontSize:        "medium",
	}
}

func DefaultLayout() Layout {
	return Layout{
		Type:       "grid",
		Columns:    12,
		Gap:        16,
		Padding:    20,
		Responsive: true,
	}
}

// Clone returns a deep copy of the widget. Applying a template must never
// alias the template's own data or config maps.
func (w Widget) Clone() Widget {
	c := w
	c.Data = cloneMap(w.Data)
	c.Config = cloneMap(w.Config)
	return c
}

// CloneWidgets deep-copies a widget collection.
func CloneWidgets(widgets []Widget) []Widget {
	if widgets == nil {
		return nil
	}
	out := make([]Widget, len(widgets))
	for i, w := range widgets {
		out[i] = w.Clone()
	}
	return out
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	if m, ok := asMap(v); ok {
		return cloneMap(m)
	}
	if s, ok := asSlice(v); ok {
		out := make([]interface{}, len(s))
		for i, item := range s {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
