package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (p *StatsRepo) CountNotifications(ctx context.Context, minutes int) (int64, error) {
	const op = "postgres.Stats.CountNotifications"

	if minutes <= 0 || minutes > 1440 {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
		SELECT COUNT(*)
		FROM notifications
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 minute')
	`

	var cnt int64
	if err := p.pool.QueryRow(ctx, query, minutes).Scan(&cnt); err != nil {
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.Int("minutes", minutes))
		return 0, e.WrapError(ctx, op, err)
	}

	return cnt, nil
}

func (p *StatsRepo) CountUnread(ctx context.Context) (int64, error) {
	const op = "postgres.Stats.CountUnread"

	const query = `SELECT COUNT(*) FROM notifications WHERE read = FALSE`

	var cnt int64
	if err := p.pool.QueryRow(ctx, query).Scan(&cnt); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return cnt, nil
}

func (p *StatsRepo) CountActiveCandidates(ctx context.Context, kind domain.Kind) (int64, error) {
	const op = "postgres.Stats.CountActiveCandidates"

	if !kind.Valid() {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
		SELECT COUNT(*)
		FROM candidates
		WHERE kind = $1
		  AND (
			(kind = 'incident' AND status <> 'archived')
			OR
			(kind = 'event' AND status = 'approved')
		  )
	`

	var cnt int64
	if err := p.pool.QueryRow(ctx, query, kind).Scan(&cnt); err != nil {
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("kind", string(kind)))
		return 0, e.WrapError(ctx, op, err)
	}

	return cnt, nil
}
