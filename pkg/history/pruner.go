package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Pruner deletes runs older than a retention period.
type Pruner struct {
	store     Store
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewPruner creates a pruner. A retention of 0 keeps runs forever.
func NewPruner(store Store, retention time.Duration) *Pruner {
	return &Pruner{
		store:     store,
		retention: retention,
		now:       time.Now,
		logger:    slog.Default().With("component", "history.pruner"),
	}
}

// Retention returns the configured retention period.
func (p *Pruner) Retention() time.Duration {
	return p.retention
}

// Prune deletes runs that started more than the retention period ago and
// returns how many were deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.retention <= 0 {
		p.logger.Debug("retention disabled, skipping pruning")
		return 0, nil
	}

	cutoff := p.now().Add(-p.retention)
	deleted, err := p.store.Prune(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune runs before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	if deleted > 0 {
		p.logger.Info("pruned run history",
			"deleted_count", deleted,
			"cutoff", cutoff,
		)
	}
	return deleted, nil
}
