package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestBindings_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	binding := &Binding{
		ID:      uuid.NewString(),
		Gesture: "swipe_left",
		Command: "prev_tab",
		Enabled: true,
	}

	if err := s.Bindings().Create(binding); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Bindings().GetByID(binding.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Gesture != "swipe_left" {
		t.Errorf("expected gesture 'swipe_left', got %q", got.Gesture)
	}
	if got.Command != "prev_tab" {
		t.Errorf("expected command 'prev_tab', got %q", got.Command)
	}
	if !got.Enabled {
		t.Error("expected binding to be enabled")
	}
}

func TestBindings_CreateInvalidGesture(t *testing.T) {
	s := newTestStore(t)

	binding := &Binding{
		ID:      uuid.NewString(),
		Gesture: "wave",
		Command: "hello",
		Enabled: true,
	}

	// The gesture column has a CHECK constraint on the four known types
	if err := s.Bindings().Create(binding); err == nil {
		t.Error("expected an error for an unknown gesture type")
	}
}

func TestBindings_List(t *testing.T) {
	s := newTestStore(t)

	gestures := []string{"swipe_left", "swipe_right", "pinch"}
	for _, g := range gestures {
		binding := &Binding{
			ID:      uuid.NewString(),
			Gesture: g,
			Command: "cmd-" + g,
			Enabled: true,
		}
		if err := s.Bindings().Create(binding); err != nil {
			t.Fatalf("Create(%s) error = %v", g, err)
		}
	}

	bindings, err := s.Bindings().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(bindings) != 3 {
		t.Errorf("expected 3 bindings, got %d", len(bindings))
	}
}

func TestBindings_Update(t *testing.T) {
	s := newTestStore(t)

	binding := &Binding{
		ID:      uuid.NewString(),
		Gesture: "pinch",
		Command: "zoom",
		Enabled: true,
	}
	if err := s.Bindings().Create(binding); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	binding.Command = "zoom_in"
	binding.Enabled = false
	if err := s.Bindings().Update(binding); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Bindings().GetByID(binding.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Command != "zoom_in" {
		t.Errorf("expected command 'zoom_in', got %q", got.Command)
	}
	if got.Enabled {
		t.Error("expected binding to be disabled after update")
	}
}

func TestBindings_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Bindings().GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}

	if err := s.Bindings().Update(&Binding{ID: "missing", Gesture: "pinch", Command: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}

	if err := s.Bindings().Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestBindings_Delete(t *testing.T) {
	s := newTestStore(t)

	binding := &Binding{
		ID:      uuid.NewString(),
		Gesture: "closed_fist",
		Command: "mute",
		Enabled: true,
	}
	if err := s.Bindings().Create(binding); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Bindings().Delete(binding.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.Bindings().GetByID(binding.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
