// Package followups polls persisted follow-up sequences and fires the stages
// that came due, so the schedule survives restarts.
package followups

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"reactivation/internal/domain"
)

// StageRunner fires every due follow-up stage.
type StageRunner interface {
	RunDueStages(ctx context.Context) (domain.DispatchResult, error)
}

// Run polls every pollInterval until ctx is done. A pass that finds the
// campaign busy is skipped; the next tick picks the stages up.
func Run(ctx context.Context, stages StageRunner, clock clockwork.Clock, pollInterval time.Duration, log *zap.Logger) error {
	if pollInterval <= 0 {
		return nil
	}
	ticker := clock.NewTicker(pollInterval)
	defer ticker.Stop()
	log.Info("follow-up worker started", zap.Duration("poll_interval", pollInterval))
	for {
		select {
		case <-ctx.Done():
			log.Info("follow-up worker stopped")
			return nil
		case <-ticker.Chan():
			RunOnce(ctx, stages, log)
		}
	}
}

// RunOnce performs a single pass and reports how many stages fired.
func RunOnce(ctx context.Context, stages StageRunner, log *zap.Logger) int {
	res, err := stages.RunDueStages(ctx)
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		log.Debug("follow-up pass skipped, campaign busy")
	case errors.Is(err, context.Canceled):
	case err != nil:
		log.Error("follow-up pass failed", zap.Error(err))
	}
	if res.Failed > 0 {
		log.Warn("follow-up stages failed", zap.Int("failed", res.Failed), zap.Int("sent", res.Sent))
	}
	return res.Total
}
