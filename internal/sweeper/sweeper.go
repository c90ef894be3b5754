package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/SergeyKozhin/jtx-board/internal/business/recurrence"
	"github.com/SergeyKozhin/jtx-board/internal/database"
	"github.com/SergeyKozhin/jtx-board/internal/model"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// Sweeper reconciles every origin on a fixed interval. Origins written by
// another process (a sync adapter, a restored backup) get their instances
// this way.
type Sweeper struct {
	db         database.DB
	logger     *zap.SugaredLogger
	objects    objectsRepository
	recurrence recurrenceService
	locker     recurrence.OriginLocker
	interval   time.Duration
}

type objectsRepository interface {
	GetOriginIDs(ctx context.Context, q database.Queryable) ([]int64, error)
}

type recurrenceService interface {
	Reconcile(ctx context.Context, originID int64) (*recurrence.ReconcileResult, error)
}

func New(
	db database.DB,
	logger *zap.SugaredLogger,
	objects objectsRepository,
	recurrenceService recurrenceService,
	locker recurrence.OriginLocker,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		db:         db,
		logger:     logger,
		objects:    objects,
		recurrence: recurrenceService,
		locker:     locker,
		interval:   interval,
	}
}

// Start sweeps once right away and then every interval until ctx is done
// or the process closes.
func (s *Sweeper) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	closer.Bind(cancel)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

type Stats struct {
	Origins int
	Changed int
	Failed  int
}

// Sweep reconciles all origins once. A failing origin is logged and skipped.
func (s *Sweeper) Sweep(ctx context.Context) Stats {
	var stats Stats

	ids, err := s.objects.GetOriginIDs(ctx, s.db)
	if err != nil {
		s.logger.Errorw("failed to get origins", "err", err)
		return stats
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		stats.Origins++

		changed, err := s.reconcile(ctx, id)
		switch {
		case errors.Is(err, model.ErrNoRecord):
			// deleted since the listing
		case err != nil:
			stats.Failed++
			s.logger.Errorw("failed to reconcile origin", "origin_id", id, "err", err)
		case changed:
			stats.Changed++
		}
	}

	s.logger.Debugw("sweep done", "origins", stats.Origins, "changed", stats.Changed, "failed", stats.Failed)

	return stats
}

func (s *Sweeper) reconcile(ctx context.Context, id int64) (bool, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return false, err
	}
	defer unlock()

	res, err := s.recurrence.Reconcile(ctx, id)
	if err != nil {
		return false, err
	}

	return res.Writes() != 0, nil
}
