package metrics

import (
	"context"

	common_models "formdash/internal/common/models"
	"formdash/internal/features/audit"
	"formdash/internal/features/dashboard"
	"formdash/internal/features/widget"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MetricsService interface {
	CreateDefinition(ctx context.Context, def *Definition, userID string) error
	ListDefinitions(ctx context.Context, dashboardID, userID string) ([]Definition, error)
	UpdateDefinition(ctx context.Context, def *Definition, userID string) error
	DeleteDefinition(ctx context.Context, id, userID string) error
	// EvaluateAll runs every definition on the dashboard. A failing formula
	// produces a Result with its error; it never fails the batch.
	EvaluateAll(ctx context.Context, dashboardID, userID string) ([]Result, error)
	// Materialize writes evaluated values into the linked widgets and saves
	// the dashboard. Widgets without a linked definition are untouched.
	Materialize(ctx context.Context, dashboardID, userID string) (*dashboard.Dashboard, error)
}

type MetricsServiceImpl struct {
	Repo             MetricsRepository
	DashboardService dashboard.DashboardService
	AuditService     audit.AuditService
	Logger           *zap.Logger
}

func NewMetricsService(
	repo MetricsRepository,
	dashboardService dashboard.DashboardService,
	auditService audit.AuditService,
	logger *zap.Logger,
) MetricsService {
	return &MetricsServiceImpl{
		Repo:             repo,
		DashboardService: dashboardService,
		AuditService:     auditService,
		Logger:           logger,
	}
}

// ownedDashboard checks that the caller owns the dashboard the definitions
// hang off. All definition operations go through it.
func (s *MetricsServiceImpl) ownedDashboard(ctx context.Context, dashboardID, userID string) (*dashboard.Dashboard, error) {
	return s.DashboardService.GetDashboard(ctx, dashboardID, userID)
}

func (s *MetricsServiceImpl) CreateDefinition(ctx context.Context, def *Definition, userID string) error {
	if _, err := s.ownedDashboard(ctx, def.DashboardID, userID); err != nil {
		return err
	}

	def.ID = "metric-" + uuid.NewString()
	def.UserID = userID

	// Reject a broken formula at definition time, with zero-valued
	// variables standing in for the real ones.
	if _, err := Evaluate(ctx, def.Formula, def.Variables); err != nil {
		return err
	}

	err := s.Repo.Create(ctx, def)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "metrics", def.ID, map[string]common_models.Change{
			"formula": {New: def.Formula},
		})
	}
	return err
}

func (s *MetricsServiceImpl) ListDefinitions(ctx context.Context, dashboardID, userID string) ([]Definition, error) {
	if _, err := s.ownedDashboard(ctx, dashboardID, userID); err != nil {
		return nil, err
	}
	return s.Repo.FindByDashboard(ctx, dashboardID)
}

func (s *MetricsServiceImpl) UpdateDefinition(ctx context.Context, def *Definition, userID string) error {
	existing, err := s.Repo.Get(ctx, def.ID)
	if err != nil {
		return err
	}
	if _, err := s.ownedDashboard(ctx, existing.DashboardID, userID); err != nil {
		return err
	}

	if _, err := Evaluate(ctx, def.Formula, def.Variables); err != nil {
		return err
	}

	def.DashboardID = existing.DashboardID
	err = s.Repo.Update(ctx, def)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "metrics", def.ID, map[string]common_models.Change{
			"formula": {Old: existing.Formula, New: def.Formula},
		})
	}
	return err
}

func (s *MetricsServiceImpl) DeleteDefinition(ctx context.Context, id, userID string) error {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.ownedDashboard(ctx, existing.DashboardID, userID); err != nil {
		return err
	}

	err = s.Repo.Delete(ctx, id)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "metrics", id, map[string]common_models.Change{
			"metric": {Old: existing.Name, New: "DELETED"},
		})
	}
	return err
}

func (s *MetricsServiceImpl) EvaluateAll(ctx context.Context, dashboardID, userID string) ([]Result, error) {
	defs, err := s.ListDefinitions(ctx, dashboardID, userID)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		result := Result{DefinitionID: def.ID, Name: def.Name}
		value, err := Evaluate(ctx, def.Formula, def.Variables)
		if err != nil {
			result.Error = err.Error()
			s.Logger.Warn("metric evaluation failed",
				zap.String("definition_id", def.ID), zap.Error(err))
		} else {
			result.Value = value
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *MetricsServiceImpl) Materialize(ctx context.Context, dashboardID, userID string) (*dashboard.Dashboard, error) {
	d, err := s.ownedDashboard(ctx, dashboardID, userID)
	if err != nil {
		return nil, err
	}
	defs, err := s.Repo.FindByDashboard(ctx, dashboardID)
	if err != nil {
		return nil, err
	}

	byWidget := make(map[string]Definition)
	for _, def := range defs {
		if def.WidgetID != "" {
			byWidget[def.WidgetID] = def
		}
	}
	if len(byWidget) == 0 {
		return d, nil
	}

	widgets := widget.CloneWidgets(d.Widgets)
	changed := false
	for i, w := range widgets {
		def, ok := byWidget[w.ID]
		if !ok {
			continue
		}
		value, err := Evaluate(ctx, def.Formula, def.Variables)
		if err != nil {
			s.Logger.Warn("skipping widget with failing formula",
				zap.String("widget_id", w.ID), zap.Error(err))
			continue
		}
		if widgets[i].Data == nil {
			widgets[i].Data = map[string]interface{}{}
		}
		widgets[i].Data["value"] = value
		changed = true
	}
	if !changed {
		return d, nil
	}

	updated := *d
	updated.Widgets = widgets
	return s.DashboardService.UpdateDashboard(ctx, dashboardID, &updated, userID)
}
