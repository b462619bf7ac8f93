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

type PreferencesRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPreferences(pool *pgxpool.Pool, logger *slog.Logger) *PreferencesRepo {
	return &PreferencesRepo{pool: pool, logger: logger}
}

func (p *PreferencesRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.AlertPreferences, error) {
	const op = "postgres.Preferences.Get"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}

	const query = `
		SELECT user_id, enabled, radius_km, notify_incidents, notify_events, updated_at
		FROM alert_preferences
		WHERE user_id = $1
	`

	var prefs domain.AlertPreferences
	err := p.pool.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.Enabled,
		&prefs.RadiusKM,
		&prefs.NotifyIncidents,
		&prefs.NotifyEvents,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("user_id", userID.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &prefs, nil
}

func (p *PreferencesRepo) Upsert(ctx context.Context, prefs *domain.AlertPreferences) error {
	const op = "postgres.Preferences.Upsert"

	if prefs == nil || prefs.UserID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if prefs.UpdatedAt.IsZero() {
		prefs.UpdatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO alert_preferences (user_id, enabled, radius_km, notify_incidents, notify_events, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET enabled          = EXCLUDED.enabled,
			radius_km        = EXCLUDED.radius_km,
			notify_incidents = EXCLUDED.notify_incidents,
			notify_events    = EXCLUDED.notify_events,
			updated_at       = EXCLUDED.updated_at
	`

	_, err := p.pool.Exec(ctx, query,
		prefs.UserID,
		prefs.Enabled,
		prefs.RadiusKM,
		prefs.NotifyIncidents,
		prefs.NotifyEvents,
		prefs.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("user_id", prefs.UserID.String()))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *PreferencesRepo) ListEnabled(ctx context.Context) ([]uuid.UUID, error) {
	const op = "postgres.Preferences.ListEnabled"

	const query = `SELECT user_id FROM alert_preferences WHERE enabled = TRUE`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, 16)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return ids, nil
}
