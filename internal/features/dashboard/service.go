package dashboard

import (
	"context"
	"fmt"

	common_models "formdash/internal/common/models"
	"formdash/internal/features/audit"
	"formdash/internal/features/widget"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventBroadcaster pushes dashboard change events to connected clients. The
// websocket hub satisfies this; a no-op implementation is fine in tests.
type EventBroadcaster interface {
	Broadcast(dashboardID string, event string, payload interface{})
}

type DashboardService interface {
	CreateDashboard(ctx context.Context, dashboard *Dashboard, userID string) error
	GetDashboard(ctx context.Context, id string, userID string) (*Dashboard, error)
	ListUserDashboards(ctx context.Context, userID string) ([]Dashboard, error)
	// UpdateDashboard replaces the widget collection, theme and layout. The
	// incoming Version must match the stored one or the update is rejected.
	UpdateDashboard(ctx context.Context, id string, dashboard *Dashboard, userID string) (*Dashboard, error)
	DeleteDashboard(ctx context.Context, id string, userID string) error
	EnableSharing(ctx context.Context, id string, userID string) (string, error)
	DisableSharing(ctx context.Context, id string, userID string) error
	GetSharedDashboard(ctx context.Context, token string) (*Dashboard, error)
	RecordShareView(ctx context.Context, id string)
}

type DashboardServiceImpl struct {
	Repo         DashboardRepository
	AuditService audit.AuditService
	Broadcaster  EventBroadcaster
	Logger       *zap.Logger
}

func NewDashboardService(
	repo DashboardRepository,
	auditService audit.AuditService,
	broadcaster EventBroadcaster,
	logger *zap.Logger,
) DashboardService {
	return &DashboardServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Broadcaster:  broadcaster,
		Logger:       logger,
	}
}

func (s *DashboardServiceImpl) CreateDashboard(ctx context.Context, dashboard *Dashboard, userID string) error {
	dashboard.UserID = userID
	if dashboard.Name == "" {
		dashboard.Name = "Untitled Dashboard"
	}
	if dashboard.Widgets == nil {
		dashboard.Widgets = []widget.Widget{}
	}
	if dashboard.Theme.ID == "" {
		dashboard.Theme = widget.DefaultTheme()
	}
	if dashboard.Layout.Columns == 0 {
		dashboard.Layout = widget.DefaultLayout()
	}

	if err := s.validateWidgets(dashboard.Widgets); err != nil {
		return err
	}

	err := s.Repo.Create(ctx, dashboard)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionDashboard, "dashboards", dashboard.ID, map[string]common_models.Change{
			"dashboard": {New: dashboard.Name},
		})
	}
	return err
}

func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, id string, userID string) (*Dashboard, error) {
	dashboard, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if dashboard.UserID != userID {
		return nil, ErrAccessDenied
	}

	return dashboard, nil
}

func (s *DashboardServiceImpl) ListUserDashboards(ctx context.Context, userID string) ([]Dashboard, error) {
	return s.Repo.FindByUserID(ctx, userID)
}

func (s *DashboardServiceImpl) UpdateDashboard(ctx context.Context, id string, dashboard *Dashboard, userID string) (*Dashboard, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserID != userID {
		return nil, ErrAccessDenied
	}

	if err := s.validateWidgets(dashboard.Widgets); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = dashboard.Name
	updated.Description = dashboard.Description
	updated.Widgets = dashboard.Widgets
	updated.Theme = dashboard.Theme
	updated.Layout = dashboard.Layout
	updated.Version = dashboard.Version

	if updated.Name == "" {
		updated.Name = existing.Name
	}
	if updated.Widgets == nil {
		updated.Widgets = []widget.Widget{}
	}

	if err := s.Repo.Replace(ctx, &updated); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionDashboard, "dashboards", id, map[string]common_models.Change{
		"widgets": {Old: len(existing.Widgets), New: len(updated.Widgets)},
	})
	s.Broadcaster.Broadcast(id, "dashboard.updated", map[string]interface{}{
		"version": updated.Version,
	})

	return &updated, nil
}

func (s *DashboardServiceImpl) DeleteDashboard(ctx context.Context, id string, userID string) error {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return ErrAccessDenied
	}

	err = s.Repo.Delete(ctx, id)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "dashboards", id, map[string]common_models.Change{
			"dashboard": {Old: existing.Name, New: "DELETED"},
		})
		s.Broadcaster.Broadcast(id, "dashboard.deleted", nil)
	}
	return err
}

func (s *DashboardServiceImpl) EnableSharing(ctx context.Context, id string, userID string) (string, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if existing.UserID != userID {
		return "", ErrAccessDenied
	}

	// Re-enabling keeps the existing token so previously shared links
	// stay valid.
	token := existing.ShareToken
	if token == "" {
		token = uuid.NewString()
	}

	if err := s.Repo.SetSharing(ctx, id, true, token); err != nil {
		return "", err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionShare, "dashboards", id, map[string]common_models.Change{
		"shared": {Old: existing.IsShared, New: true},
	})
	return token, nil
}

func (s *DashboardServiceImpl) DisableSharing(ctx context.Context, id string, userID string) error {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrAccessDenied
	}

	if err := s.Repo.SetSharing(ctx, id, false, ""); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionShare, "dashboards", id, map[string]common_models.Change{
		"shared": {Old: existing.IsShared, New: false},
	})
	return nil
}

func (s *DashboardServiceImpl) GetSharedDashboard(ctx context.Context, token string) (*Dashboard, error) {
	return s.Repo.FindByShareToken(ctx, token)
}

// RecordShareView bumps the view counter. Failures are logged and swallowed;
// a broken counter must never break the share page.
func (s *DashboardServiceImpl) RecordShareView(ctx context.Context, id string) {
	if err := s.Repo.IncrementViewCount(ctx, id); err != nil {
		s.Logger.Warn("failed to record share view",
			zap.String("dashboard_id", id),
			zap.Error(err))
	}
}

func (s *DashboardServiceImpl) validateWidgets(widgets []widget.Widget) error {
	for _, w := range widgets {
		if w.ID == "" {
			return fmt.Errorf("widget %q has no id", w.Title)
		}
		if _, ok := widget.LibraryItemFor(w.Type); !ok {
			// Unknown types are stored as-is; the renderer shows a
			// fallback. Only structural problems are rejected.
			continue
		}
		if w.Position.W < 1 || w.Position.H < 1 {
			return fmt.Errorf("widget %q has a degenerate size", w.Title)
		}
	}
	return nil
}
