package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"alertaVecino/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DedupRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDedup(pool *pgxpool.Pool, logger *slog.Logger) *DedupRepo {
	return &DedupRepo{pool: pool, logger: logger}
}

func (p *DedupRepo) HasNotified(ctx context.Context, userID, entityID uuid.UUID) (bool, error) {
	const op = "postgres.Dedup.HasNotified"

	if userID == uuid.Nil || entityID == uuid.Nil {
		return false, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM alert_dedup WHERE user_id = $1 AND entity_id = $2
		)
	`

	var exists bool
	if err := p.pool.QueryRow(ctx, query, userID, entityID).Scan(&exists); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}

	return exists, nil
}

// MarkNotified is idempotent: a second mark for the same pair is a no-op and
// keeps the original first_notified_at.
func (p *DedupRepo) MarkNotified(ctx context.Context, userID, entityID uuid.UUID, at time.Time) error {
	const op = "postgres.Dedup.MarkNotified"

	if userID == uuid.Nil || entityID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	const query = `
		INSERT INTO alert_dedup (user_id, entity_id, first_notified_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, entity_id) DO NOTHING
	`

	if _, err := p.pool.Exec(ctx, query, userID, entityID, at); err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// Clear is idempotent: clearing an absent pair is a no-op.
func (p *DedupRepo) Clear(ctx context.Context, userID, entityID uuid.UUID) error {
	const op = "postgres.Dedup.Clear"

	if userID == uuid.Nil || entityID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `DELETE FROM alert_dedup WHERE user_id = $1 AND entity_id = $2`

	if _, err := p.pool.Exec(ctx, query, userID, entityID); err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}
