package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/google/uuid"
)

type preferencesService struct {
	repo   PreferencesRepository
	logger *slog.Logger
}

func NewPreferencesService(repo PreferencesRepository, logger *slog.Logger) PreferencesService {
	return &preferencesService{repo: repo, logger: logger}
}

// GetPreferences returns stored preferences, or the defaults (disabled, 5 km,
// both kinds on) for a user that never configured alerts.
func (s *preferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.AlertPreferences, error) {
	const op = "service.Preferences.Get"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}

	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return domain.DefaultPreferences(userID), nil
		}
		return nil, e.Wrap(op, err)
	}
	return prefs, nil
}

func (s *preferencesService) SetPreferences(ctx context.Context, userID uuid.UUID, req domain.SetPreferencesRequest) (*domain.AlertPreferences, error) {
	const op = "service.Preferences.Set"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}

	prefs := &domain.AlertPreferences{
		UserID:          userID,
		Enabled:         req.Enabled,
		RadiusKM:        req.RadiusKM,
		NotifyIncidents: req.NotifyIncidents,
		NotifyEvents:    req.NotifyEvents,
		UpdatedAt:       time.Now().UTC(),
	}
	if !prefs.ValidRadius() {
		return nil, fmt.Errorf("%s: radius_km out of [1,50]: %w", op, e.ErrInvalidInput)
	}

	if err := s.repo.Upsert(ctx, prefs); err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Info("preferences updated",
		slog.String("user_id", userID.String()),
		slog.Bool("enabled", prefs.Enabled),
		slog.Float64("radius_km", prefs.RadiusKM),
		slog.Bool("notify_incidents", prefs.NotifyIncidents),
		slog.Bool("notify_events", prefs.NotifyEvents),
	)

	return prefs, nil
}
