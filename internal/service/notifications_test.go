package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"alertaVecino/internal/domain"
	"alertaVecino/internal/service"
	mock_service "alertaVecino/internal/service/mocks"
	"alertaVecino/pkg/e"
)

func TestNotifications_List_PassesFilter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockNotificationStore(ctrl)
	userID := uuid.New()

	kind := domain.KindIncident
	filter := domain.NotificationFilter{Kind: &kind, UnreadOnly: true}

	want := []*domain.NotificationRecord{
		{ID: uuid.New(), UserID: userID, Kind: domain.KindIncident, CreatedAt: time.Now().UTC()},
	}

	store.EXPECT().ListForUser(gomock.Any(), userID, filter).Return(want, nil).Times(1)

	svc := service.NewNotificationService(store, testLogger())

	got, err := svc.ListNotifications(context.Background(), userID, filter)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != want[0].ID {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestNotifications_Delete_DelegatesToStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockNotificationStore(ctrl)
	id := uuid.New()

	// the store deletes the record and clears the dedup entry transactionally
	store.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

	svc := service.NewNotificationService(store, testLogger())

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestNotifications_MarkAllRead_ReturnsCount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockNotificationStore(ctrl)
	userID := uuid.New()

	store.EXPECT().MarkAllRead(gomock.Any(), userID).Return(int64(3), nil).Times(1)

	svc := service.NewNotificationService(store, testLogger())

	n, err := svc.MarkAllRead(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestNotifications_InvalidIDsRejected(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockNotificationStore(ctrl)
	svc := service.NewNotificationService(store, testLogger())

	if _, err := svc.ListNotifications(context.Background(), uuid.Nil, domain.NotificationFilter{}); !errors.Is(err, e.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), uuid.Nil); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.Nil); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
