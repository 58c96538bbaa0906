package widget

import "github.com/google/uuid"

// Dimensions is an inclusive grid size bound.
type Dimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

// LibraryItem is a catalog entry describing one placeable widget type. The
// catalog is a build-time constant; it is never persisted with a dashboard.
type LibraryItem struct {
	Type        Type       `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	DefaultSize Size       `json:"defaultSize"`
	MinSize     Dimensions `json:"minSize"`
	MaxSize     Dimensions `json:"maxSize"`
}

var library = []LibraryItem{
	{
		Type:        TypeChart,
		Name:        "Chart",
		Description: "Bar, line, pie charts",
		Icon:        "📊",
		DefaultSize: SizeMedium,
		MinSize:     Dimensions{W: 3, H: 3},
		MaxSize:     Dimensions{W: 12, H: 8},
	},
	{
		Type:        TypeStatsCard,
		Name:        "Stats Card",
		Description: "Key metrics display",
		Icon:        "📈",
		DefaultSize: SizeSmall,
		MinSize:     Dimensions{W: 3, H: 2},
		MaxSize:     Dimensions{W: 6, H: 4},
	},
	{
		Type:        TypeTable,
		Name:        "Table",
		Description: "Data table",
		Icon:        "📋",
		DefaultSize: SizeLarge,
		MinSize:     Dimensions{W: 4, H: 3},
		MaxSize:     Dimensions{W: 12, H: 8},
	},
	{
		Type:        TypeTextBlock,
		Name:        "Text Block",
		Description: "Rich text content",
		Icon:        "📝",
		DefaultSize: SizeMedium,
		MinSize:     Dimensions{W: 3, H: 2},
		MaxSize:     Dimensions{W: 12, H: 6},
	},
	{
		Type:        TypeMetric,
		Name:        "Metric",
		Description: "Single metric with progress",
		Icon:        "🎯",
		DefaultSize: SizeSmall,
		MinSize:     Dimensions{W: 3, H: 2},
		MaxSize:     Dimensions{W: 6, H: 4},
	},
	{
		Type:        TypeGauge,
		Name:        "Gauge",
		Description: "Visual gauge meter",
		Icon:        "🌡️",
		DefaultSize: SizeMedium,
		MinSize:     Dimensions{W: 4, H: 3},
		MaxSize:     Dimensions{W: 6, H: 5},
	},
	{
		Type:        TypeList,
		Name:        "List",
		Description: "Bullet or numbered list",
		Icon:        "📑",
		DefaultSize: SizeMedium,
		MinSize:     Dimensions{W: 3, H: 3},
		MaxSize:     Dimensions{W: 6, H: 8},
	},
	{
		Type:        TypeTimeline,
		Name:        "Timeline",
		Description: "Event timeline",
		Icon:        "📅",
		DefaultSize: SizeLarge,
		MinSize:     Dimensions{W: 4, H: 4},
		MaxSize:     Dimensions{W: 12, H: 8},
	},
}

// Library returns the widget catalog. Callers must not mutate the entries.
func Library() []LibraryItem {
	return library
}

// LibraryItemFor looks up the catalog entry for a type.
func LibraryItemFor(t Type) (LibraryItem, bool) {
	for _, item := range library {
		if item.Type == t {
			return item, true
		}
	}
	return LibraryItem{}, false
}

// New constructs a widget from a catalog entry. The position width/height
// come straight from the item's MinSize so the bound invariant holds by
// construction; the y offset appends below the existing widgets.
func New(item LibraryItem, existingCount int) Widget {
	return Widget{
		ID:          "widget-" + uuid.NewString(),
		Type:        item.Type,
		Size:        item.DefaultSize,
		Title:       "New " + item.Name,
		Position: Position{
			X: 0,
			Y: existingCount * 2,
			W: item.MinSize.W,
			H: item.MinSize.H,
		},
		Data:   sampleData(item.Type),
		Config: sampleConfig(item.Type),
	}
}

// NewOfType is New for callers that only hold a type. It reports false for a
// type missing from the catalog; no widget is produced.
func NewOfType(t Type, existingCount int) (Widget, bool) {
	item, ok := LibraryItemFor(t)
	if !ok {
		return Widget{}, false
	}
	return New(item, existingCount), true
}

// sampleData supplies the type-specific placeholder payload a freshly placed
// widget starts with.
func sampleData(t Type) map[string]interface{} {
	switch t {
	case TypeChart:
		return map[string]interface{}{
			"labels": []interface{}{"Jan", "Feb", "Mar", "Apr"},
			"values": []interface{}{12.0, 19.0, 3.0, 5.0},
		}
	case TypeStatsCard:
		return map[string]interface{}{
			"value":  1234.0,
			"change": 12.0,
			"trend":  "up",
		}
	case TypeGauge:
		return map[string]interface{}{
			"value": 75.0,
			"min":   0.0,
			"max":   100.0,
		}
	case TypeMetric:
		return map[string]interface{}{
			"value":  42.0,
			"target": 50.0,
			"unit":   "%",
		}
	case TypeTable:
		return map[string]interface{}{
			"columns": []interface{}{"Name", "Value", "Status"},
			"rows": []interface{}{
				[]interface{}{"Item 1", "100", "Active"},
				[]interface{}{"Item 2", "200", "Pending"},
			},
		}
	case TypeList:
		return map[string]interface{}{
			"items": []interface{}{"First item", "Second item", "Third item"},
		}
	case TypeTimeline:
		return map[string]interface{}{
			"events": []interface{}{
				map[string]interface{}{"date": "2024-01-01", "title": "Event 1", "description": "Description 1"},
				map[string]interface{}{"date": "2024-01-02", "title": "Event 2", "description": "Description 2"},
			},
		}
	case TypeTextBlock:
		return map[string]interface{}{
			"content": "This is a text block widget. You can add any content here.",
		}
	}
	return nil
}

func sampleConfig(t Type) map[string]interface{} {
	if t == TypeChart {
		return map[string]interface{}{"chartType": "bar"}
	}
	return nil
}
