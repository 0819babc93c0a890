package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsAsThroughWrapping(t *testing.T) {
	base := errors.New("disk full")
	err := fmt.Errorf("record view: %w", &PersistenceError{Op: "recents", Err: base})

	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatal("expected PersistenceError")
	}
	if pe.Op != "recents" {
		t.Errorf("Op = %q, want recents", pe.Op)
	}
	if !errors.Is(err, base) {
		t.Error("expected wrapped cause to be reachable")
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ValidationError{Field: "text", Reason: "empty"}, "invalid text: empty"},
		{&ValidationError{Reason: "bad"}, "invalid input: bad"},
		{&BackendError{}, "chat backend failed"},
		{&BackendError{Err: errors.New("502")}, "chat backend failed: 502"},
		{&ConfigurationError{Feature: "quiz", Reason: "no questions"}, "quiz unavailable: no questions"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
