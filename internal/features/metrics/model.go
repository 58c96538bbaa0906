package metrics

import "time"

// Definition is a computed metric attached to a dashboard: a named formula
// over user-supplied variables. When WidgetID is set, evaluation writes the
// result into that widget's value before rendering.
type Definition struct {
	ID          string             `json:"id" bson:"_id"`
	DashboardID string             `json:"dashboardId" bson:"dashboard_id"`
	WidgetID    string             `json:"widgetId,omitempty" bson:"widget_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Formula     string             `json:"formula" bson:"formula"`
	Variables   map[string]float64 `json:"variables,omitempty" bson:"variables,omitempty"`
	UserID      string             `json:"userId" bson:"user_id"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Result is one evaluated definition.
type Result struct {
	DefinitionID string  `json:"definitionId"`
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Error        string  `json:"error,omitempty"`
}
