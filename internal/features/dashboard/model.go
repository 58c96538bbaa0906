package dashboard

import (
	"time"

	"formdash/internal/features/widget"

	"github.com/google/uuid"
)

// Dashboard is the persisted unit of the product: a named widget collection
// with its theme and layout. Version increments on every successful write and
// guards concurrent editors.
type Dashboard struct {
	ID          string          `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Widgets     []widget.Widget `json:"widgets" bson:"widgets"`
	Theme       widget.Theme    `json:"theme" bson:"theme"`
	Layout      widget.Layout   `json:"layout" bson:"layout"`
	UserID      string          `json:"userId" bson:"user_id"`
	Version     int64           `json:"version" bson:"version"`
	IsShared    bool            `json:"isShared" bson:"is_shared"`
	ShareToken  string          `json:"shareToken,omitempty" bson:"share_token,omitempty"`
	ViewCount   int64           `json:"viewCount" bson:"view_count"`
	TemplateID  string          `json:"templateId,omitempty" bson:"template_id,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updated_at"`
}

// NewID returns a fresh dashboard id.
func NewID() string {
	return "dashboard-" + uuid.NewString()
}

// NewDashboard builds an empty dashboard with the default theme and layout.
func NewDashboard(name, userID string) *Dashboard {
	return &Dashboard{
		ID:      NewID(),
		Name:    name,
		Widgets: []widget.Widget{},
		Theme:   widget.DefaultTheme(),
		Layout:  widget.DefaultLayout(),
		UserID:  userID,
		Version: 1,
	}
}
