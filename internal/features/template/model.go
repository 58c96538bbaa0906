package template

import (
	"time"

	"formdash/internal/features/widget"
)

// Template is a reusable dashboard blueprint. System templates ship with the
// binary; custom templates are user-saved snapshots stored in Mongo.
type Template struct {
	ID          string          `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Category    string          `json:"category,omitempty" bson:"category,omitempty"`
	Icon        string          `json:"icon,omitempty" bson:"icon,omitempty"`
	Widgets     []widget.Widget `json:"widgets" bson:"widgets"`
	Theme       widget.Theme    `json:"theme" bson:"theme"`
	Layout      widget.Layout   `json:"layout" bson:"layout"`
	Tags        []string        `json:"tags,omitempty" bson:"tags,omitempty"`
	IsSystem    bool            `json:"isSystem" bson:"is_system"`
	IsPublic    bool            `json:"isPublic" bson:"is_public"`
	UsageCount  int64           `json:"usageCount" bson:"usage_count"`
	UserID      string          `json:"userId,omitempty" bson:"user_id,omitempty"`
	// SourceTemplateID links a custom template back to the system template
	// it was derived from, when there was one.
	SourceTemplateID string    `json:"sourceTemplateId,omitempty" bson:"source_template_id,omitempty"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
}

// Blueprint is an instantiated template: deep-copied widgets with fresh ids,
// ready to drop onto a dashboard.
type Blueprint struct {
	Widgets []widget.Widget
	Theme   widget.Theme
	Layout  widget.Layout
}
