package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded validation run.
type Run struct {
	// ID is a random UUID assigned when the run starts.
	ID string

	StartedAt  time.Time
	FinishedAt time.Time

	// Files is the number of files validated.
	Files int

	// Failures is the number of files that failed (syntax errors, I/O
	// errors, or warnings in strict mode).
	Failures int

	// Warnings is the number of lint warnings across all files.
	Warnings int

	// Details lists the failing files. List leaves it empty; Get fills it.
	Details []Failure
}

// Failure is one failing file of a run.
type Failure struct {
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

// NewRun starts a run with a fresh ID.
func NewRun(started time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: started,
	}
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// OK reports whether every file passed.
func (r *Run) OK() bool {
	return r.Failures == 0
}

// Store persists validation runs.
type Store interface {
	// Record stores a finished run and its failures.
	Record(ctx context.Context, run *Run) error

	// List returns the most recent runs first, at most limit of them
	// (all when limit <= 0). Details are not loaded.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Get returns one run with its failures, or ErrRunNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// Prune deletes runs that started before cutoff and returns how many
	// were deleted.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping checks the store is usable.
	Ping(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
