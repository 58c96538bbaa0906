package dashboard

import (
	"context"
	"errors"
	"testing"

	common_models "formdash/internal/common/models"
	"formdash/internal/features/widget"

	"go.uber.org/zap"
)

type fakeRepo struct {
	stored map[string]*Dashboard
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: map[string]*Dashboard{}}
}

func (r *fakeRepo) Create(ctx context.Context, d *Dashboard) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	if d.Version == 0 {
		d.Version = 1
	}
	copied := *d
	r.stored[d.ID] = &copied
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (*Dashboard, error) {
	if d, ok := r.stored[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) FindByUserID(ctx context.Context, userID string) ([]Dashboard, error) {
	var out []Dashboard
	for _, d := range r.stored {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeRepo) Replace(ctx context.Context, d *Dashboard) error {
	existing, ok := r.stored[d.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Version != d.Version {
		return ErrVersionConflict
	}
	d.Version++
	copied := *d
	r.stored[d.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.stored[id]; !ok {
		return ErrNotFound
	}
	delete(r.stored, id)
	return nil
}

func (r *fakeRepo) FindByShareToken(ctx context.Context, token string) (*Dashboard, error) {
	for _, d := range r.stored {
		if d.IsShared && d.ShareToken == token {
			copied := *d
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) SetSharing(ctx context.Context, id string, shared bool, token string) error {
	d, ok := r.stored[id]
	if !ok {
		return ErrNotFound
	}
	d.IsShared = shared
	d.ShareToken = token
	return nil
}

func (r *fakeRepo) IncrementViewCount(ctx context.Context, id string) error {
	if d, ok := r.stored[id]; ok {
		d.ViewCount++
	}
	return nil
}

type noopAudit struct{}

func (noopAudit) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	return nil
}

func (noopAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) Broadcast(dashboardID, event string, payload interface{}) {
	b.events = append(b.events, event)
}

func newTestService(repo DashboardRepository) (DashboardService, *recordingBroadcaster) {
	b := &recordingBroadcaster{}
	return NewDashboardService(repo, noopAudit{}, b, zap.NewNop()), b
}

func testWidget(id string) widget.Widget {
	w, _ := widget.NewOfType(widget.TypeStatsCard, 0)
	w.ID = id
	return w
}

func TestCreateDashboardDefaults(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	d := &Dashboard{}
	if err := svc.CreateDashboard(ctx, d, "user-1"); err != nil {
		t.Fatalf("CreateDashboard: %v", err)
	}
	if d.ID == "" || d.Version != 1 {
		t.Errorf("dashboard = %+v, want id and version 1", d)
	}
	if d.Name != "Untitled Dashboard" {
		t.Errorf("name = %q", d.Name)
	}
	if d.Theme.ID == "" || d.Layout.Columns != 12 {
		t.Error("theme/layout defaults not applied")
	}
}

func TestGetDashboardOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	d := &Dashboard{Name: "Mine"}
	if err := svc.CreateDashboard(ctx, d, "user-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetDashboard(ctx, d.ID, "user-2"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("foreign get = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.GetDashboard(ctx, "dashboard-missing", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing get = %v, want ErrNotFound", err)
	}
}

func TestUpdateDashboardVersionConflict(t *testing.T) {
	repo := newFakeRepo()
	svc, broadcaster := newTestService(repo)
	ctx := context.Background()

	d := &Dashboard{Name: "Concurrent"}
	if err := svc.CreateDashboard(ctx, d, "user-1"); err != nil {
		t.Fatal(err)
	}

	// First writer wins.
	first := &Dashboard{Name: "First", Version: 1, Widgets: []widget.Widget{testWidget("widget-a")}}
	updated, err := svc.UpdateDashboard(ctx, d.ID, first, "user-1")
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("version = %d, want 2", updated.Version)
	}

	// Second writer still holds version 1.
	second := &Dashboard{Name: "Second", Version: 1}
	if _, err := svc.UpdateDashboard(ctx, d.ID, second, "user-1"); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("stale update = %v, want ErrVersionConflict", err)
	}

	stored, _ := svc.GetDashboard(ctx, d.ID, "user-1")
	if stored.Name != "First" {
		t.Errorf("stored name = %q, the stale write went through", stored.Name)
	}
	if len(broadcaster.events) != 2 || broadcaster.events[1] != "dashboard.updated" {
		t.Errorf("events = %v", broadcaster.events)
	}
}

func TestUpdateDashboardRejectsInvalidWidgets(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	d := &Dashboard{Name: "Valid"}
	if err := svc.CreateDashboard(ctx, d, "user-1"); err != nil {
		t.Fatal(err)
	}

	noID := testWidget("")
	update := &Dashboard{Version: 1, Widgets: []widget.Widget{noID}}
	if _, err := svc.UpdateDashboard(ctx, d.ID, update, "user-1"); err == nil {
		t.Error("widget without id was accepted")
	}

	flat := testWidget("widget-flat")
	flat.Position.H = 0
	update = &Dashboard{Version: 1, Widgets: []widget.Widget{flat}}
	if _, err := svc.UpdateDashboard(ctx, d.ID, update, "user-1"); err == nil {
		t.Error("degenerate widget size was accepted")
	}

	// Unknown types pass validation; the renderer shows a fallback.
	odd := testWidget("widget-odd")
	odd.Type = widget.Type("sparkline")
	update = &Dashboard{Version: 1, Widgets: []widget.Widget{odd}}
	if _, err := svc.UpdateDashboard(ctx, d.ID, update, "user-1"); err != nil {
		t.Errorf("unknown widget type rejected: %v", err)
	}
}

func TestSharingLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	d := &Dashboard{Name: "Shared"}
	if err := svc.CreateDashboard(ctx, d, "user-1"); err != nil {
		t.Fatal(err)
	}

	token, err := svc.EnableSharing(ctx, d.ID, "user-1")
	if err != nil {
		t.Fatalf("EnableSharing: %v", err)
	}
	if token == "" {
		t.Fatal("empty share token")
	}

	shared, err := svc.GetSharedDashboard(ctx, token)
	if err != nil {
		t.Fatalf("GetSharedDashboard: %v", err)
	}
	if shared.ID != d.ID {
		t.Errorf("resolved %q, want %q", shared.ID, d.ID)
	}

	// Re-enabling keeps the token stable.
	again, err := svc.EnableSharing(ctx, d.ID, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if again != token {
		t.Errorf("token changed on re-enable: %q -> %q", token, again)
	}

	if err := svc.DisableSharing(ctx, d.ID, "user-1"); err != nil {
		t.Fatalf("DisableSharing: %v", err)
	}
	if _, err := svc.GetSharedDashboard(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("revoked token still resolves: %v", err)
	}

	if _, err := svc.EnableSharing(ctx, d.ID, "user-2"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("foreign share = %v, want ErrAccessDenied", err)
	}
}

func TestRecordShareViewSwallowsErrors(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	// Missing dashboard must not panic or error.
	svc.RecordShareView(context.Background(), "dashboard-missing")
}
