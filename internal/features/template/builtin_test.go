package template

import (
	"context"
	"strings"
	"testing"

	common_models "formdash/internal/common/models"
	"formdash/internal/features/widget"

	"go.uber.org/zap"
)

func TestBuiltinTemplates(t *testing.T) {
	templates := builtinTemplates()
	if len(templates) != 4 {
		t.Fatalf("got %d system templates, want 4", len(templates))
	}

	wantCategories := map[string]bool{
		"survey_analysis":   false,
		"customer_feedback": false,
		"lead_scoring":      false,
		"nps_analysis":      false,
	}
	for _, tpl := range templates {
		if _, ok := wantCategories[tpl.Category]; !ok {
			t.Errorf("%s: unexpected category %q", tpl.ID, tpl.Category)
		}
		wantCategories[tpl.Category] = true

		if !tpl.IsSystem || !tpl.IsPublic {
			t.Errorf("%s: system templates must be public", tpl.ID)
		}
		if tpl.Icon == "" || tpl.Name == "" {
			t.Errorf("%s: incomplete template", tpl.ID)
		}
		if len(tpl.Widgets) == 0 {
			t.Errorf("%s: no widgets", tpl.ID)
		}
	}
	for cat, seen := range wantCategories {
		if !seen {
			t.Errorf("category %q missing", cat)
		}
	}
}

func TestBuiltinWidgetsAreValid(t *testing.T) {
	for _, tpl := range builtinTemplates() {
		for _, w := range tpl.Widgets {
			if _, ok := widget.LibraryItemFor(w.Type); !ok {
				t.Errorf("%s/%s: type %q not in library", tpl.ID, w.ID, w.Type)
			}
			if w.Position.W < 1 || w.Position.H < 1 {
				t.Errorf("%s/%s: degenerate position %+v", tpl.ID, w.ID, w.Position)
			}
			if w.Position.X+w.Position.W > 12 {
				t.Errorf("%s/%s: overflows the 12-column grid: %+v", tpl.ID, w.ID, w.Position)
			}
		}
	}
}

type fakeTemplateRepo struct {
	customs map[string]*Template
	usage   map[string]int64
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{customs: map[string]*Template{}, usage: map[string]int64{}}
}

func (r *fakeTemplateRepo) CreateCustom(ctx context.Context, template *Template) error {
	copied := *template
	r.customs[template.ID] = &copied
	return nil
}

func (r *fakeTemplateRepo) GetCustom(ctx context.Context, id string) (*Template, error) {
	if t, ok := r.customs[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeTemplateRepo) FindCustomByUser(ctx context.Context, userID string) ([]Template, error) {
	var out []Template
	for _, t := range r.customs {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) FindPublicCustom(ctx context.Context) ([]Template, error) {
	var out []Template
	for _, t := range r.customs {
		if t.IsPublic {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) DeleteCustom(ctx context.Context, id string) error {
	if _, ok := r.customs[id]; !ok {
		return ErrNotFound
	}
	delete(r.customs, id)
	return nil
}

func (r *fakeTemplateRepo) IncrementUsage(ctx context.Context, id string) error {
	r.usage[id]++
	return nil
}

func (r *fakeTemplateRepo) UsageCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, id := range ids {
		if n := r.usage[id]; n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

type noopAudit struct{}

func (noopAudit) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	return nil
}

func (noopAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newTestService(repo TemplateRepository) TemplateService {
	return NewTemplateService(repo, noopAudit{}, zap.NewNop())
}

func TestInstantiateAssignsFreshIDs(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	bp, err := svc.Instantiate(ctx, "tpl-survey-analysis")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if len(bp.Widgets) != 5 {
		t.Fatalf("got %d widgets, want 5", len(bp.Widgets))
	}
	seen := map[string]bool{}
	for _, w := range bp.Widgets {
		if !strings.HasPrefix(w.ID, "widget-") {
			t.Errorf("widget id %q kept its template placeholder", w.ID)
		}
		if seen[w.ID] {
			t.Errorf("duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true
	}
	if repo.usage["tpl-survey-analysis"] != 1 {
		t.Errorf("usage = %d, want 1", repo.usage["tpl-survey-analysis"])
	}
}

func TestInstantiateDoesNotAliasTemplateData(t *testing.T) {
	svc := newTestService(newFakeTemplateRepo())
	ctx := context.Background()

	bp, err := svc.Instantiate(ctx, "tpl-lead-scoring")
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	for _, w := range bp.Widgets {
		if w.Type == widget.TypeChart {
			w.Data["labels"].([]interface{})[0] = "mutated"
		}
	}

	fresh, _ := svc.Instantiate(ctx, "tpl-lead-scoring")
	for _, w := range fresh.Widgets {
		if w.Type == widget.TypeChart {
			if w.Data["labels"].([]interface{})[0] != "W1" {
				t.Error("mutating an instantiated widget leaked into the template")
			}
		}
	}
}

func TestListTemplatesMergesUsage(t *testing.T) {
	repo := newFakeTemplateRepo()
	repo.usage["tpl-nps-analysis"] = 7
	svc := newTestService(repo)

	templates, err := svc.ListTemplates(context.Background(), "")
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	for _, tpl := range templates {
		if tpl.ID == "tpl-nps-analysis" && tpl.UsageCount != 7 {
			t.Errorf("usage = %d, want 7", tpl.UsageCount)
		}
	}
}

func TestListTemplatesCategoryFilter(t *testing.T) {
	svc := newTestService(newFakeTemplateRepo())

	templates, err := svc.ListTemplates(context.Background(), "nps_analysis")
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "tpl-nps-analysis" {
		t.Errorf("got %+v, want only the NPS template", templates)
	}
}

func TestCustomTemplateLifecycle(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	tpl := &Template{Name: "My Layout", IsPublic: true}
	if err := svc.CreateCustom(ctx, tpl, "user-1"); err != nil {
		t.Fatalf("CreateCustom: %v", err)
	}
	if !strings.HasPrefix(tpl.ID, "tpl-custom-") {
		t.Errorf("id = %q", tpl.ID)
	}
	if tpl.IsSystem {
		t.Error("custom template marked as system")
	}
	if tpl.Theme.ID == "" || tpl.Layout.Columns == 0 {
		t.Error("defaults not applied")
	}

	if err := svc.DeleteCustom(ctx, tpl.ID, "someone-else"); err != ErrNotFound {
		t.Errorf("foreign delete = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteCustom(ctx, tpl.ID, "user-1"); err != nil {
		t.Errorf("owner delete = %v", err)
	}
}
