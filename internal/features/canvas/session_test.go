package canvas

import (
	"testing"

	"formdash/internal/features/widget"
)

func editingSession(t *testing.T, types ...widget.Type) *Session {
	t.Helper()
	s := newSession("user-1")
	s.State = StateEditing
	for _, typ := range types {
		if _, err := s.AppendFromLibrary(typ); err != nil {
			t.Fatalf("AppendFromLibrary(%s): %v", typ, err)
		}
	}
	return s
}

func ids(s *Session) []string {
	out := make([]string, len(s.Widgets))
	for i, w := range s.Widgets {
		out[i] = w.ID
	}
	return out
}

func TestAppendFromLibrary(t *testing.T) {
	s := editingSession(t, widget.TypeChart, widget.TypeGauge)

	if len(s.Widgets) != 2 {
		t.Fatalf("widget count = %d, want 2", len(s.Widgets))
	}
	if s.Widgets[0].Type != widget.TypeChart || s.Widgets[1].Type != widget.TypeGauge {
		t.Errorf("click-to-add should append in order, got %v then %v", s.Widgets[0].Type, s.Widgets[1].Type)
	}
	if !s.Dirty {
		t.Error("adding a widget should mark the session dirty")
	}
}

func TestAppendUnknownTypeRejected(t *testing.T) {
	s := editingSession(t)
	if _, err := s.AppendFromLibrary("sparkline"); err != ErrUnknownWidget {
		t.Errorf("err = %v, want ErrUnknownWidget", err)
	}
	if len(s.Widgets) != 0 {
		t.Errorf("canvas should be unchanged, has %d widgets", len(s.Widgets))
	}
}

func TestReorderPreservesIdentity(t *testing.T) {
	s := editingSession(t, widget.TypeChart, widget.TypeGauge, widget.TypeList)
	before := ids(s)

	if !s.Reorder(1, 0) {
		t.Fatal("Reorder(1, 0) should report a change")
	}
	after := ids(s)
	want := []string{before[1], before[0], before[2]}
	for i := range want {
		if after[i] != want[i] {
			t.Fatalf("order after move = %v, want %v", after, want)
		}
	}
}

func TestReorderOutOfRange(t *testing.T) {
	s := editingSession(t, widget.TypeChart, widget.TypeGauge)
	before := ids(s)

	for _, move := range [][2]int{{-1, 0}, {0, 5}, {5, 0}, {1, 1}} {
		if s.Reorder(move[0], move[1]) {
			t.Errorf("Reorder(%d, %d) should be a no-op", move[0], move[1])
		}
	}
	after := ids(s)
	for i := range before {
		if after[i] != before[i] {
			t.Fatal("no-op reorder changed the canvas")
		}
	}
}

func TestHandleDrop(t *testing.T) {
	tests := []struct {
		name        string
		drop        Drop
		wantChanged bool
		wantCount   int
	}{
		{
			name: "library to canvas inserts",
			drop: Drop{
				Source:      DroppableLibrary,
				Destination: DroppableCanvas, DestinationIndex: 0,
				WidgetType: widget.TypeTable,
			},
			wantChanged: true,
			wantCount:   3,
		},
		{
			name: "no destination is a no-op",
			drop: Drop{
				Source: DroppableCanvas, SourceIndex: 0,
			},
			wantChanged: false,
			wantCount:   2,
		},
		{
			name: "drop onto the library is a no-op",
			drop: Drop{
				Source: DroppableCanvas, SourceIndex: 0,
				Destination: DroppableLibrary,
			},
			wantChanged: false,
			wantCount:   2,
		},
		{
			name: "canvas to canvas reorders",
			drop: Drop{
				Source: DroppableCanvas, SourceIndex: 1,
				Destination: DroppableCanvas, DestinationIndex: 0,
			},
			wantChanged: true,
			wantCount:   2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := editingSession(t, widget.TypeChart, widget.TypeGauge)
			changed, err := s.HandleDrop(tt.drop)
			if err != nil {
				t.Fatalf("HandleDrop: %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if len(s.Widgets) != tt.wantCount {
				t.Errorf("widget count = %d, want %d", len(s.Widgets), tt.wantCount)
			}
		})
	}
}

func TestDropReorderMovesIdentity(t *testing.T) {
	s := editingSession(t, widget.TypeChart, widget.TypeGauge, widget.TypeList)
	before := ids(s)

	if _, err := s.HandleDrop(Drop{
		Source: DroppableCanvas, SourceIndex: 1,
		Destination: DroppableCanvas, DestinationIndex: 0,
	}); err != nil {
		t.Fatal(err)
	}

	after := ids(s)
	want := []string{before[1], before[0], before[2]}
	for i := range want {
		if after[i] != want[i] {
			t.Fatalf("order = %v, want %v", after, want)
		}
	}
}

func TestRemoveWidget(t *testing.T) {
	s := editingSession(t, widget.TypeChart, widget.TypeGauge)
	victim := s.Widgets[0].ID

	if !s.RemoveWidget(victim) {
		t.Fatal("RemoveWidget should report success")
	}
	if len(s.Widgets) != 1 {
		t.Fatalf("widget count = %d, want 1", len(s.Widgets))
	}

	if s.RemoveWidget("widget-missing") {
		t.Error("removing an absent widget should be a no-op")
	}
	if len(s.Widgets) != 1 {
		t.Error("no-op removal changed the canvas")
	}
}

func TestUpdateWidgetKeepsType(t *testing.T) {
	s := editingSession(t, widget.TypeChart)
	updated := s.Widgets[0]
	updated.Title = "Revenue"
	updated.Type = widget.TypeGauge

	if !s.UpdateWidget(updated) {
		t.Fatal("UpdateWidget should report success")
	}
	if s.Widgets[0].Title != "Revenue" {
		t.Errorf("title = %q, want Revenue", s.Widgets[0].Title)
	}
	if s.Widgets[0].Type != widget.TypeChart {
		t.Errorf("type changed to %s; placed widgets keep their type", s.Widgets[0].Type)
	}
}

func TestPreviewBlocksEdits(t *testing.T) {
	s := editingSession(t, widget.TypeChart)

	if got := s.TogglePreview(); got != StatePreviewing {
		t.Fatalf("state = %s, want previewing", got)
	}
	if _, err := s.AppendFromLibrary(widget.TypeGauge); err != ErrNotEditing {
		t.Errorf("append while previewing: err = %v, want ErrNotEditing", err)
	}
	if changed, _ := s.HandleDrop(Drop{Source: DroppableLibrary, Destination: DroppableCanvas, WidgetType: widget.TypeGauge}); changed {
		t.Error("drop while previewing should not change the canvas")
	}
	if s.RemoveWidget(s.Widgets[0].ID) {
		t.Error("remove while previewing should be a no-op")
	}

	if got := s.TogglePreview(); got != StateEditing {
		t.Fatalf("state = %s, want editing after second toggle", got)
	}
	if _, err := s.AppendFromLibrary(widget.TypeGauge); err != nil {
		t.Errorf("append after returning to editing: %v", err)
	}
}

func TestInsertAtIndex(t *testing.T) {
	s := editingSession(t, widget.TypeChart, widget.TypeGauge)

	w, err := s.InsertFromLibrary(widget.TypeTable, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.Widgets[1].ID != w.ID {
		t.Errorf("inserted widget not at index 1: %v", ids(s))
	}
	if s.Widgets[0].Type != widget.TypeChart || s.Widgets[2].Type != widget.TypeGauge {
		t.Error("neighbors shifted incorrectly")
	}
}
