// Package ports defines the interfaces between the application core
// and its adapters.
package ports

import (
	"context"
	"time"

	"github.com/dkrenn/tempus/internal/domain"
)

// Notifier delivers completion signals to the desktop. Implementations
// may block; the engine always calls them from a background goroutine
// and collects the outcome as a bus event.
type Notifier interface {
	// Notify shows a desktop notification.
	Notify(title, message string) error
	// Beep plays the completion sound.
	Beep() error
}

// StateStore persists the application state between runs.
type StateStore interface {
	// Load reads the persisted snapshot, falling back to the given
	// defaults when the file is missing or malformed.
	Load(defaults domain.Defaults, now time.Time) (*domain.AppState, error)
	// Save writes a snapshot atomically.
	Save(state *domain.AppState) error
	// Reset discards the persisted snapshot.
	Reset() error
}

// SessionRecord is one completed timed interval.
type SessionRecord struct {
	ID          string
	Mode        string
	Label       string
	Duration    domain.Duration
	Branch      string
	Commit      string
	CompletedAt time.Time
}

// HistoryStore keeps a log of completed sessions.
type HistoryStore interface {
	Record(ctx context.Context, rec SessionRecord) error
	List(ctx context.Context, limit int) ([]SessionRecord, error)
	Clear(ctx context.Context) error
	Close() error
}

// RepoContext is the git context a session was completed in.
type RepoContext struct {
	Branch string
	Commit string
}

// ContextDetector resolves the git context of the working directory.
type ContextDetector interface {
	Detect(dir string) (RepoContext, bool)
}
