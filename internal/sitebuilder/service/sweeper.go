package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/repository"
)

const DefaultSweepSchedule = "0 */15 * * * *"

// Sweeper pauses projects nobody has touched for a while.
type Sweeper struct {
	store      ProjectStore
	locker     repository.Locker
	staleAfter time.Duration
	now        func() time.Time
}

func NewSweeper(store ProjectStore, locker repository.Locker, staleAfter time.Duration) *Sweeper {
	return &Sweeper{
		store:      store,
		locker:     locker,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// RunOnce pauses every stale draft or in-progress project and returns how many it paused.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	log := logging.FromContext(ctx)

	ids, err := s.store.StaleProjectIDs(ctx, s.now().Add(-s.staleAfter))
	if err != nil {
		return 0, err
	}

	paused := 0
	for _, id := range ids {
		ok, err := s.pause(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return paused, ctx.Err()
			}
			log.Warn("sweeper skipped project", zap.String("project_id", id), zap.Error(err))
			continue
		}
		if ok {
			paused++
		}
	}

	log.Info("stale project sweep finished", zap.Int("candidates", len(ids)), zap.Int("paused", paused))
	return paused, nil
}

func (s *Sweeper) pause(ctx context.Context, id string) (bool, error) {
	lockCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	unlock, err := s.locker.Lock(lockCtx, id)
	cancel()
	if err != nil {
		return false, err
	}
	defer unlock()

	p, conv, _, err := s.store.Load(ctx, id)
	if errors.Is(err, domain.ErrProjectNotFound) {
		// expired; drop the dangling index entry
		return false, s.store.Forget(ctx, id)
	}
	if err != nil {
		return false, err
	}
	if p.Status != domain.StatusDraft && p.Status != domain.StatusInProgress {
		// nothing to pause; the next saved turn re-indexes it
		return false, s.store.Forget(ctx, id)
	}

	p.Status = domain.StatusPaused
	if err := s.store.SaveTurn(ctx, p, conv, nil); err != nil {
		return false, fmt.Errorf("failed to pause project: %w", err)
	}
	return true, nil
}

// Start runs the sweep on schedule (cron with seconds) until ctx is done.
func (s *Sweeper) Start(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	log := logging.L()

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			log.Error("stale project sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sweeper: %w", err)
	}

	log.Info("sweeper scheduled", zap.String("schedule", schedule), zap.Duration("stale_after", s.staleAfter))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
