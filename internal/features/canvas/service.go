package canvas

import (
	"context"
	"sync"
	"time"

	"formdash/internal/features/dashboard"
	"formdash/internal/features/render"
	"formdash/internal/features/template"
	"formdash/internal/features/widget"

	"go.uber.org/zap"
)

// Sessions idle longer than this are dropped on the next lookup.
const sessionTTL = 2 * time.Hour

type CanvasService interface {
	// StartSession opens an editor. With a dashboard id it loads that
	// dashboard; without one it opens an empty canvas. A template id seeds
	// the canvas from the template.
	StartSession(ctx context.Context, dashboardID, templateID, userID string) (*Session, error)
	GetSession(ctx context.Context, sessionID, userID string) (*Session, error)
	HandleDrop(ctx context.Context, sessionID, userID string, drop Drop) (*Session, error)
	AddWidget(ctx context.Context, sessionID, userID string, widgetType widget.Type) (*Session, error)
	UpdateWidget(ctx context.Context, sessionID, userID string, w widget.Widget) (*Session, error)
	RemoveWidget(ctx context.Context, sessionID, userID, widgetID string) (*Session, error)
	TogglePreview(ctx context.Context, sessionID, userID string) (*Session, error)
	// Save persists the working copy and returns the stored dashboard. A
	// session for a new dashboard creates one; afterwards the session
	// tracks the stored id and version.
	Save(ctx context.Context, sessionID, userID string) (*dashboard.Dashboard, error)
	RenderSession(ctx context.Context, sessionID, userID string) (string, error)
	CloseSession(ctx context.Context, sessionID, userID string) error
}

type CanvasServiceImpl struct {
	DashboardService dashboard.DashboardService
	TemplateService  template.TemplateService
	Logger           *zap.Logger

	// mu guards the session map and the sessions themselves.
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewCanvasService(
	dashboardService dashboard.DashboardService,
	templateService template.TemplateService,
	logger *zap.Logger,
) CanvasService {
	return &CanvasServiceImpl{
		DashboardService: dashboardService,
		TemplateService:  templateService,
		Logger:           logger,
		sessions:         make(map[string]*Session),
	}
}

func (s *CanvasServiceImpl) StartSession(ctx context.Context, dashboardID, templateID, userID string) (*Session, error) {
	session := newSession(userID)

	switch {
	case dashboardID != "":
		d, err := s.DashboardService.GetDashboard(ctx, dashboardID, userID)
		if err != nil {
			// The editor still opens, on an empty canvas. Saving will
			// create a new dashboard rather than overwrite anything.
			s.Logger.Warn("editor opened with empty canvas after failed load",
				zap.String("dashboard_id", dashboardID), zap.Error(err))
			break
		}
		session.DashboardID = d.ID
		session.Name = d.Name
		session.Widgets = widget.CloneWidgets(d.Widgets)
		if session.Widgets == nil {
			session.Widgets = []widget.Widget{}
		}
		session.Theme = d.Theme
		session.Layout = d.Layout
		session.BaseVersion = d.Version
	case templateID != "":
		bp, err := s.TemplateService.Instantiate(ctx, templateID)
		if err != nil {
			return nil, err
		}
		session.Widgets = bp.Widgets
		session.Theme = bp.Theme
		session.Layout = bp.Layout
		session.Dirty = true
	}

	session.State = StateEditing

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// lookupLocked resolves a live session. Callers must hold mu.
func (s *CanvasServiceImpl) lookupLocked(sessionID, userID string) (*Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	if time.Since(session.UpdatedAt) > sessionTTL {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *CanvasServiceImpl) GetSession(ctx context.Context, sessionID, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(sessionID, userID)
}

func (s *CanvasServiceImpl) HandleDrop(ctx context.Context, sessionID, userID string, drop Drop) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupLocked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := session.HandleDrop(drop); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CanvasServiceImpl) AddWidget(ctx context.Context, sessionID, userID string, widgetType widget.Type) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupLocked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := session.AppendFromLibrary(widgetType); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CanvasServiceImpl) UpdateWidget(ctx context.Context, sessionID, userID string, w widget.Widget) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupLocked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := session.requireEditing(); err != nil {
		return nil, err
	}
	session.UpdateWidget(w)
	return session, nil
}

func (s *CanvasServiceImpl) RemoveWidget(ctx context.Context, sessionID, userID, widgetID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupLocked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := session.requireEditing(); err != nil {
		return nil, err
	}
	session.RemoveWidget(widgetID)
	return session, nil
}

func (s *CanvasServiceImpl) TogglePreview(ctx context.Context, sessionID, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupLocked(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.TogglePreview()
	return session, nil
}

func (s *CanvasServiceImpl) Save(ctx context.Context, sessionID, userID string) (*dashboard.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupLocked(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if session.DashboardID == "" {
		d := dashboard.NewDashboard(session.Name, userID)
		d.Widgets = session.Widgets
		d.Theme = session.Theme
		d.Layout = session.Layout
		if err := s.DashboardService.CreateDashboard(ctx, d, userID); err != nil {
			return nil, err
		}
		session.DashboardID = d.ID
		session.BaseVersion = d.Version
		session.Dirty = false
		session.touch()
		return d, nil
	}

	updated, err := s.DashboardService.UpdateDashboard(ctx, session.DashboardID, &dashboard.Dashboard{
		Name:    session.Name,
		Widgets: session.Widgets,
		Theme:   session.Theme,
		Layout:  session.Layout,
		Version: session.BaseVersion,
	}, userID)
	if err != nil {
		return nil, err
	}

	session.BaseVersion = updated.Version
	session.Dirty = false
	session.touch()
	return updated, nil
}

// RenderSession renders the working copy through the same renderer the share
// view uses. Edit affordances appear only while the session is editing.
func (s *CanvasServiceImpl) RenderSession(ctx context.Context, sessionID, userID string) (string, error) {
	s.mu.Lock()
	session, err := s.lookupLocked(sessionID, userID)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	page := render.Page{
		Title:   session.Name,
		Widgets: widget.CloneWidgets(session.Widgets),
		Theme:   session.Theme,
		Layout:  session.Layout,
		Editing: session.State == StateEditing,
	}
	s.mu.Unlock()

	return render.Document(page)
}

func (s *CanvasServiceImpl) CloseSession(ctx context.Context, sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}
