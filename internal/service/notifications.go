package service

import (
	"context"
	"fmt"
	"log/slog"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/google/uuid"
)

type notificationService struct {
	store  NotificationStore
	logger *slog.Logger
}

func NewNotificationService(store NotificationStore, logger *slog.Logger) NotificationService {
	return &notificationService{store: store, logger: logger}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]*domain.NotificationRecord, error) {
	const op = "service.Notifications.List"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}
	return s.store.ListForUser(ctx, userID, filter)
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	const op = "service.Notifications.MarkRead"

	if id == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	return s.store.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "service.Notifications.MarkAllRead"

	if userID == uuid.Nil {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}
	n, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int64("count", n))
	return n, nil
}

// Delete removes the record and its dedup entry in one transaction, so a
// still-eligible entity can fire again on a later run.
func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.Notifications.Delete"

	if id == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("notification deleted, dedup re-armed", slog.String("id", id.String()))
	return nil
}
