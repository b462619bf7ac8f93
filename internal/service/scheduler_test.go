package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"alertaVecino/internal/domain"
	"alertaVecino/internal/service"
	mock_service "alertaVecino/internal/service/mocks"
)

func newScheduler(eval service.EvaluatorRunner) *service.Scheduler {
	return service.NewScheduler(eval, nil, testLogger(), 1, 0, 2)
}

func TestScheduler_TriggerNow_RunsEvaluation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eval := mock_service.NewMockEvaluatorRunner(ctrl)
	userID := uuid.New()

	want := domain.EvaluationResult{CandidatesSeen: 3, NotificationsCreated: 1}
	eval.EXPECT().RunOnce(gomock.Any(), userID).Return(want, nil).Times(1)

	s := newScheduler(eval)

	got, err := s.TriggerNow(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.NotificationsCreated != 1 || got.Skipped {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestScheduler_TriggerNow_SingleFlightPerUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eval := mock_service.NewMockEvaluatorRunner(ctrl)
	userID := uuid.New()

	started := make(chan struct{})
	release := make(chan struct{})

	eval.EXPECT().
		RunOnce(gomock.Any(), userID).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) (domain.EvaluationResult, error) {
			close(started)
			<-release
			return domain.EvaluationResult{NotificationsCreated: 1}, nil
		}).
		Times(1)

	s := newScheduler(eval)

	var wg sync.WaitGroup
	var first domain.EvaluationResult
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, _ = s.TriggerNow(context.Background(), userID)
	}()

	<-started

	// second trigger while the first is in flight: coalesced no-op
	second, err := s.TriggerNow(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !second.Skipped {
		t.Fatalf("expected coalesced no-op, got %+v", second)
	}

	close(release)
	wg.Wait()

	if first.NotificationsCreated != 1 {
		t.Fatalf("first run lost its result: %+v", first)
	}
	// total created equals that of a single run
	if total := first.NotificationsCreated + second.NotificationsCreated; total != 1 {
		t.Fatalf("expected single-run total, got %d", total)
	}
}

func TestScheduler_TriggerNow_DifferentUsersRunConcurrently(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eval := mock_service.NewMockEvaluatorRunner(ctrl)
	userA := uuid.New()
	userB := uuid.New()

	aStarted := make(chan struct{})
	aRelease := make(chan struct{})

	eval.EXPECT().
		RunOnce(gomock.Any(), userA).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) (domain.EvaluationResult, error) {
			close(aStarted)
			<-aRelease
			return domain.EvaluationResult{}, nil
		}).
		Times(1)
	eval.EXPECT().RunOnce(gomock.Any(), userB).Return(domain.EvaluationResult{}, nil).Times(1)

	s := newScheduler(eval)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.TriggerNow(context.Background(), userA)
	}()

	<-aStarted

	// userB is not blocked by userA's in-flight run
	result, err := s.TriggerNow(context.Background(), userB)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Skipped {
		t.Fatalf("different user must not coalesce, got %+v", result)
	}

	close(aRelease)
	wg.Wait()
}

func TestScheduler_TriggerNow_ReleasedAfterCompletion(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eval := mock_service.NewMockEvaluatorRunner(ctrl)
	userID := uuid.New()

	eval.EXPECT().RunOnce(gomock.Any(), userID).
		Return(domain.EvaluationResult{}, nil).Times(2)

	s := newScheduler(eval)

	for i := 0; i < 2; i++ {
		result, err := s.TriggerNow(context.Background(), userID)
		if err != nil {
			t.Fatalf("run %d: unexpected err: %v", i, err)
		}
		if result.Skipped {
			t.Fatalf("run %d: sequential trigger must not coalesce", i)
		}
	}
}

func TestScheduler_TriggerNow_AppliesEvalTimeout(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eval := mock_service.NewMockEvaluatorRunner(ctrl)
	userID := uuid.New()

	eval.EXPECT().
		RunOnce(gomock.Any(), userID).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID) (domain.EvaluationResult, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the evaluation context")
			}
			return domain.EvaluationResult{}, nil
		}).
		Times(1)

	s := service.NewScheduler(eval, nil, testLogger(), 1, 30*time.Second, 1)

	if _, err := s.TriggerNow(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
