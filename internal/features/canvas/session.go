package canvas

import (
	"errors"
	"time"

	"formdash/internal/features/widget"

	"github.com/google/uuid"
)

// State is the editor lifecycle. A session is created in StateLoading, moves
// to StateEditing once its dashboard (or an empty canvas) is in place, and
// toggles between StateEditing and StatePreviewing. Preview is read-only.
type State string

const (
	StateLoading    State = "loading"
	StateEditing    State = "editing"
	StatePreviewing State = "previewing"
)

// Droppable ids shared with the client. The library is a drag source only;
// nothing can be dropped into it.
const (
	DroppableLibrary = "widget-library"
	DroppableCanvas  = "dashboard-canvas"
)

var (
	ErrSessionNotFound = errors.New("editor session not found")
	ErrNotEditing      = errors.New("session is not in editing state")
	ErrUnknownWidget   = errors.New("unknown widget type")
)

// Drop describes one completed drag gesture. Destination is empty when the
// drag ended outside any droppable.
type Drop struct {
	Source           string      `json:"source"`
	SourceIndex      int         `json:"sourceIndex"`
	Destination      string      `json:"destination"`
	DestinationIndex int         `json:"destinationIndex"`
	WidgetType       widget.Type `json:"widgetType,omitempty"`
}

// Session is one user's in-progress edit of a dashboard. Widgets here are a
// working copy; nothing is persisted until Save.
type Session struct {
	ID          string          `json:"id"`
	DashboardID string          `json:"dashboardId,omitempty"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Widgets     []widget.Widget `json:"widgets"`
	Theme       widget.Theme    `json:"theme"`
	Layout      widget.Layout   `json:"layout"`
	// BaseVersion is the dashboard version this session loaded. Save sends
	// it back so a concurrent edit surfaces as a conflict, not a silent
	// overwrite.
	BaseVersion int64     `json:"baseVersion"`
	State       State     `json:"state"`
	Dirty       bool      `json:"dirty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newSession(userID string) *Session {
	now := time.Now()
	return &Session{
		ID:        "session-" + uuid.NewString(),
		UserID:    userID,
		Name:      "Untitled Dashboard",
		Widgets:   []widget.Widget{},
		Theme:     widget.DefaultTheme(),
		Layout:    widget.DefaultLayout(),
		State:     StateLoading,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

func (s *Session) requireEditing() error {
	if s.State != StateEditing {
		return ErrNotEditing
	}
	return nil
}

// HandleDrop applies one drag gesture. It reports whether the canvas changed;
// a gesture with no destination, or one that targets the library, is a no-op.
func (s *Session) HandleDrop(d Drop) (bool, error) {
	if err := s.requireEditing(); err != nil {
		return false, err
	}
	if d.Destination == "" || d.Destination != DroppableCanvas {
		return false, nil
	}

	switch d.Source {
	case DroppableLibrary:
		_, err := s.InsertFromLibrary(d.WidgetType, d.DestinationIndex)
		if err != nil {
			return false, err
		}
		return true, nil
	case DroppableCanvas:
		return s.Reorder(d.SourceIndex, d.DestinationIndex), nil
	}
	return false, nil
}

// InsertFromLibrary places a new widget of the given type at index.
func (s *Session) InsertFromLibrary(t widget.Type, index int) (widget.Widget, error) {
	if err := s.requireEditing(); err != nil {
		return widget.Widget{}, err
	}
	w, ok := widget.NewOfType(t, len(s.Widgets))
	if !ok {
		return widget.Widget{}, ErrUnknownWidget
	}

	if index < 0 || index > len(s.Widgets) {
		index = len(s.Widgets)
	}
	s.Widgets = append(s.Widgets, widget.Widget{})
	copy(s.Widgets[index+1:], s.Widgets[index:])
	s.Widgets[index] = w

	s.Dirty = true
	s.touch()
	return w, nil
}

// AppendFromLibrary is the click-to-add path: the new widget goes last.
func (s *Session) AppendFromLibrary(t widget.Type) (widget.Widget, error) {
	return s.InsertFromLibrary(t, len(s.Widgets))
}

// Reorder moves the widget at from to index to, preserving identity. Out of
// range indexes leave the canvas untouched.
func (s *Session) Reorder(from, to int) bool {
	if from < 0 || from >= len(s.Widgets) || to < 0 || to >= len(s.Widgets) || from == to {
		return false
	}
	w := s.Widgets[from]
	s.Widgets = append(s.Widgets[:from], s.Widgets[from+1:]...)
	s.Widgets = append(s.Widgets, widget.Widget{})
	copy(s.Widgets[to+1:], s.Widgets[to:])
	s.Widgets[to] = w

	s.Dirty = true
	s.touch()
	return true
}

// RemoveWidget deletes by id. Removing a widget that is not there is a no-op.
func (s *Session) RemoveWidget(id string) bool {
	if s.State != StateEditing {
		return false
	}
	for i, w := range s.Widgets {
		if w.ID == id {
			s.Widgets = append(s.Widgets[:i], s.Widgets[i+1:]...)
			s.Dirty = true
			s.touch()
			return true
		}
	}
	return false
}

// UpdateWidget replaces the stored widget with the same id.
func (s *Session) UpdateWidget(updated widget.Widget) bool {
	if s.State != StateEditing {
		return false
	}
	for i, w := range s.Widgets {
		if w.ID == updated.ID {
			updated.Type = w.Type // the type of a placed widget is fixed
			s.Widgets[i] = updated
			s.Dirty = true
			s.touch()
			return true
		}
	}
	return false
}

// TogglePreview flips between editing and previewing.
func (s *Session) TogglePreview() State {
	switch s.State {
	case StateEditing:
		s.State = StatePreviewing
	case StatePreviewing:
		s.State = StateEditing
	}
	s.touch()
	return s.State
}
