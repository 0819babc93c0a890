// Package screens holds what every TUI screen needs from the running
// application. Individual screens live in subpackages.
package screens

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/progress"
	"github.com/abhisek/cfdroid/internal/store"
)

// Deps is shared by all screens for one app run.
type Deps struct {
	Catalog  *catalog.Catalog
	Tracker  *progress.Tracker
	Metadata store.MetadataStore
	Events   store.EventRepo

	// RotateSession persists a new install session id. Nil keeps ids in
	// memory only.
	RotateSession func(ctx context.Context) (string, error)

	// ChatBackend is nil when no LLM provider is configured; ChatHint
	// then explains how to enable chat.
	ChatBackend chat.Backend
	ChatHint    string

	FeedbackDelay time.Duration
	Logger        *slog.Logger
}

// SessionID is the session progress and chat currently write to.
func (d *Deps) SessionID() string {
	return d.Tracker.SessionID()
}

// NextSession switches the app to a new session after a chat clear. The
// tracker follows so progress lands under the same id as the chat.
func (d *Deps) NextSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if d.RotateSession != nil {
		var err error
		if id, err = d.RotateSession(ctx); err != nil {
			return "", err
		}
	}
	d.Tracker.Rebind(id)
	return id, nil
}

// ChatAvailable reports whether the assistant can be used.
func (d *Deps) ChatAvailable() bool {
	return d.ChatBackend != nil && d.Metadata != nil
}

// Log returns the configured logger or a discard-safe default.
func (d *Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
