package export

import "time"

// Format selects what a scheduled export produces.
const (
	FormatWorkbook = "xlsx"
	FormatSnapshot = "snapshot"
)

// Schedule is a recurring export of one dashboard, driven by a standard cron
// expression.
type Schedule struct {
	ID          string     `json:"id" bson:"_id"`
	DashboardID string     `json:"dashboardId" bson:"dashboard_id"`
	UserID      string     `json:"userId" bson:"user_id"`
	Spec        string     `json:"spec" bson:"spec"`
	Format      string     `json:"format" bson:"format"`
	Enabled     bool       `json:"enabled" bson:"enabled"`
	LastRun     *time.Time `json:"lastRun,omitempty" bson:"last_run,omitempty"`
	NextRun     *time.Time `json:"nextRun,omitempty" bson:"next_run,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`
}
