package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewNotifications(pool *pgxpool.Pool, logger *slog.Logger) *NotificationRepo {
	return &NotificationRepo{pool: pool, logger: logger}
}

// Insert writes the notification record and its dedup entry in one
// transaction, so a crash cannot leave the pair able to fire twice.
func (p *NotificationRepo) Insert(ctx context.Context, rec *domain.NotificationRecord) error {
	const op = "postgres.Notification.Insert"

	if rec == nil || rec.UserID == uuid.Nil || rec.EntityID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("tx begin failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	const insertQuery = `
		INSERT INTO notifications (id, user_id, kind, entity_id, distance_km, message, created_at, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
	`

	_, err = tx.Exec(ctx, insertQuery,
		rec.ID,
		rec.UserID,
		rec.Kind,
		rec.EntityID,
		rec.DistanceKM,
		rec.Message,
		rec.CreatedAt,
	)
	if err != nil {
		wrapped := e.WrapError(ctx, op, err)
		if errors.Is(wrapped, e.ErrUniqueViolation) {
			return fmt.Errorf("%s: %w", op, e.ErrDuplicateNotification)
		}
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return wrapped
	}

	const markQuery = `
		INSERT INTO alert_dedup (user_id, entity_id, first_notified_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, entity_id) DO NOTHING
	`

	if _, err := tx.Exec(ctx, markQuery, rec.UserID, rec.EntityID, rec.CreatedAt); err != nil {
		p.logger.Error("dedup mark failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("tx commit failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *NotificationRepo) ListForUser(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]*domain.NotificationRecord, error) {
	const op = "postgres.Notification.ListForUser"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}

	query := `
		SELECT id, user_id, kind, entity_id, distance_km, message, created_at, read
		FROM notifications
		WHERE user_id = $1
	`
	args := []any{userID}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.UnreadOnly {
		query += " AND read = FALSE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	records := make([]*domain.NotificationRecord, 0, 16)
	for rows.Next() {
		var rec domain.NotificationRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Kind,
			&rec.EntityID,
			&rec.DistanceKM,
			&rec.Message,
			&rec.CreatedAt,
			&rec.Read,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return records, nil
}

func (p *NotificationRepo) Get(ctx context.Context, id uuid.UUID) (*domain.NotificationRecord, error) {
	const op = "postgres.Notification.Get"

	const query = `
		SELECT id, user_id, kind, entity_id, distance_km, message, created_at, read
		FROM notifications
		WHERE id = $1
	`

	var rec domain.NotificationRecord
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Kind,
		&rec.EntityID,
		&rec.DistanceKM,
		&rec.Message,
		&rec.CreatedAt,
		&rec.Read,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &rec, nil
}

// MarkRead is one-directional: an already-read record stays read.
func (p *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Notification.MarkRead"

	const query = `UPDATE notifications SET read = TRUE WHERE id = $1`

	cmd, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (p *NotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "postgres.Notification.MarkAllRead"

	if userID == uuid.Nil {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}

	const query = `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`

	cmd, err := p.pool.Exec(ctx, query, userID)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return cmd.RowsAffected(), nil
}

// Delete removes the record and clears the dedup entry in one transaction,
// re-arming future alerts for the (user, entity) pair.
func (p *NotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Notification.Delete"

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("tx begin failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	const deleteQuery = `
		DELETE FROM notifications
		WHERE id = $1
		RETURNING user_id, entity_id
	`

	var userID, entityID uuid.UUID
	if err := tx.QueryRow(ctx, deleteQuery, id).Scan(&userID, &entityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db delete failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}

	const clearQuery = `DELETE FROM alert_dedup WHERE user_id = $1 AND entity_id = $2`

	if _, err := tx.Exec(ctx, clearQuery, userID, entityID); err != nil {
		p.logger.Error("dedup clear failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("tx commit failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}
