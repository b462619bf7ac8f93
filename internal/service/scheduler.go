package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"alertaVecino/internal/domain"

	"github.com/google/uuid"
)

// Scheduler drives the evaluator. Manual triggers and the periodic loop share
// one in-progress set, so at most one evaluation runs per user at a time; a
// concurrent trigger for the same user coalesces into a no-op instead of
// queueing. Different users run concurrently.
type Scheduler struct {
	evaluator EvaluatorRunner
	prefs     PreferencesRepository
	logger    *slog.Logger

	cadence     time.Duration
	evalTimeout time.Duration
	jobs        chan uuid.UUID
	poolSize    int

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

func NewScheduler(
	evaluator EvaluatorRunner,
	prefs PreferencesRepository,
	logger *slog.Logger,
	cadenceHours int,
	evalTimeout time.Duration,
	poolSize int,
) *Scheduler {
	if cadenceHours < 1 {
		cadenceHours = 1
	}
	if cadenceHours > 24 {
		cadenceHours = 24
	}
	if poolSize < 1 {
		poolSize = 1
	}
	return &Scheduler{
		evaluator:   evaluator,
		prefs:       prefs,
		logger:      logger,
		cadence:     time.Duration(cadenceHours) * time.Hour,
		evalTimeout: evalTimeout,
		jobs:        make(chan uuid.UUID, 100),
		poolSize:    poolSize,
		inflight:    make(map[uuid.UUID]struct{}),
	}
}

// TriggerNow runs one evaluation for the user, synchronously from the caller's
// view. If an evaluation for the same user is already in flight the call is a
// no-op and the result comes back with Skipped set.
func (s *Scheduler) TriggerNow(ctx context.Context, userID uuid.UUID) (domain.EvaluationResult, error) {
	if !s.tryAcquire(userID) {
		s.logger.Debug("evaluation already in flight, coalescing",
			slog.String("user_id", userID.String()))
		return domain.EvaluationResult{Skipped: true}, nil
	}
	defer s.release(userID)

	if s.evalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.evalTimeout)
		defer cancel()
	}

	return s.evaluator.RunOnce(ctx, userID)
}

func (s *Scheduler) tryAcquire(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[userID]; busy {
		return false
	}
	s.inflight[userID] = struct{}{}
	return true
}

func (s *Scheduler) release(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.inflight, userID)
	s.mu.Unlock()
}

// Run starts the periodic loop and the worker pool. Blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < s.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.producer(ctx)
	}()

	wg.Wait()
}

func (s *Scheduler) producer(ctx context.Context) {
	ticker := time.NewTicker(s.cadence)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			userIDs, err := s.prefs.ListEnabled(ctx)
			if err != nil {
				s.logger.Error("listing enabled users failed", slog.Any("error", err))
				continue
			}
			s.logger.Info("periodic evaluation tick", slog.Int("users", len(userIDs)))
			for _, id := range userIDs {
				select {
				case s.jobs <- id:
				case <-ctx.Done():
					return
				default:
					// pool is saturated; the user is picked up next tick
					s.logger.Warn("job queue full, dropping tick",
						slog.String("user_id", id.String()))
				}
			}
		}
	}
}

func (s *Scheduler) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case userID := <-s.jobs:
			result, err := s.TriggerNow(ctx, userID)
			if err != nil {
				s.logger.Warn("periodic evaluation failed",
					slog.String("user_id", userID.String()),
					slog.Any("error", err))
				continue
			}
			if result.Skipped {
				continue
			}
			s.logger.Debug("periodic evaluation finished",
				slog.String("user_id", userID.String()),
				slog.Int("created", result.NotificationsCreated))
		}
	}
}
