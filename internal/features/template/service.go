package template

import (
	"context"

	common_models "formdash/internal/common/models"
	"formdash/internal/features/audit"
	"formdash/internal/features/widget"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TemplateService interface {
	// ListTemplates returns system templates plus public custom templates,
	// optionally filtered by category.
	ListTemplates(ctx context.Context, category string) ([]Template, error)
	GetTemplate(ctx context.Context, id string) (*Template, error)
	// Instantiate deep-copies a template into a blueprint with fresh widget
	// ids and records the usage.
	Instantiate(ctx context.Context, id string) (*Blueprint, error)
	CreateCustom(ctx context.Context, template *Template, userID string) error
	ListMyTemplates(ctx context.Context, userID string) ([]Template, error)
	DeleteCustom(ctx context.Context, id string, userID string) error
}

type TemplateServiceImpl struct {
	Repo         TemplateRepository
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewTemplateService(repo TemplateRepository, auditService audit.AuditService, logger *zap.Logger) TemplateService {
	return &TemplateServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, category string) ([]Template, error) {
	system := builtinTemplates()

	ids := make([]string, len(system))
	for i, t := range system {
		ids[i] = t.ID
	}
	counts, err := s.Repo.UsageCounts(ctx, ids)
	if err != nil {
		// The gallery still works without counters.
		s.Logger.Warn("failed to load template usage counts", zap.Error(err))
		counts = map[string]int64{}
	}
	for i := range system {
		system[i].UsageCount = counts[system[i].ID]
	}

	customs, err := s.Repo.FindPublicCustom(ctx)
	if err != nil {
		return nil, err
	}

	all := append(system, customs...)
	if category == "" {
		return all, nil
	}
	filtered := make([]Template, 0, len(all))
	for _, t := range all {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, id string) (*Template, error) {
	for _, t := range builtinTemplates() {
		if t.ID == id {
			counts, err := s.Repo.UsageCounts(ctx, []string{id})
			if err == nil {
				t.UsageCount = counts[id]
			}
			return &t, nil
		}
	}
	return s.Repo.GetCustom(ctx, id)
}

func (s *TemplateServiceImpl) Instantiate(ctx context.Context, id string) (*Blueprint, error) {
	t, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	widgets := widget.CloneWidgets(t.Widgets)
	for i := range widgets {
		widgets[i].ID = "widget-" + uuid.NewString()
	}
	if widgets == nil {
		widgets = []widget.Widget{}
	}

	if err := s.Repo.IncrementUsage(ctx, id); err != nil {
		s.Logger.Warn("failed to record template usage",
			zap.String("template_id", id), zap.Error(err))
	}

	return &Blueprint{
		Widgets: widgets,
		Theme:   t.Theme,
		Layout:  t.Layout,
	}, nil
}

func (s *TemplateServiceImpl) CreateCustom(ctx context.Context, template *Template, userID string) error {
	template.ID = "tpl-custom-" + uuid.NewString()
	template.UserID = userID
	template.IsSystem = false
	template.UsageCount = 0
	if template.Theme.ID == "" {
		template.Theme = widget.DefaultTheme()
	}
	if template.Layout.Columns == 0 {
		template.Layout = widget.DefaultLayout()
	}
	// Snapshot the widgets so later edits to the source dashboard cannot
	// leak into the saved template.
	template.Widgets = widget.CloneWidgets(template.Widgets)
	if template.Widgets == nil {
		template.Widgets = []widget.Widget{}
	}

	err := s.Repo.CreateCustom(ctx, template)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "templates", template.ID, map[string]common_models.Change{
			"template": {New: template.Name},
		})
	}
	return err
}

func (s *TemplateServiceImpl) ListMyTemplates(ctx context.Context, userID string) ([]Template, error) {
	return s.Repo.FindCustomByUser(ctx, userID)
}

func (s *TemplateServiceImpl) DeleteCustom(ctx context.Context, id string, userID string) error {
	existing, err := s.Repo.GetCustom(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotFound
	}

	err = s.Repo.DeleteCustom(ctx, id)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "templates", id, map[string]common_models.Change{
			"template": {Old: existing.Name, New: "DELETED"},
		})
	}
	return err
}
