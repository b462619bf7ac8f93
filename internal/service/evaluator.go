package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/google/uuid"
)

// Evaluator runs one proximity evaluation pass per call: it pulls the user's
// preferences, location and the active candidate set, then turns every
// eligible, in-radius, not-yet-notified candidate into a persisted
// notification record.
type Evaluator struct {
	prefs         PreferencesRepository
	location      LocationProvider
	source        CandidateSource
	dedup         DedupStore
	notifications NotificationStore
	queue         DispatchQueue
	logger        *slog.Logger
}

func NewEvaluator(
	prefs PreferencesRepository,
	location LocationProvider,
	source CandidateSource,
	dedup DedupStore,
	notifications NotificationStore,
	queue DispatchQueue,
	logger *slog.Logger,
) *Evaluator {
	return &Evaluator{
		prefs:         prefs,
		location:      location,
		source:        source,
		dedup:         dedup,
		notifications: notifications,
		queue:         queue,
		logger:        logger,
	}
}

type scoredCandidate struct {
	candidate  domain.Candidate
	distanceKm float64
}

func (ev *Evaluator) RunOnce(ctx context.Context, userID uuid.UUID) (domain.EvaluationResult, error) {
	const op = "service.Evaluator.RunOnce"

	var result domain.EvaluationResult

	if userID == uuid.Nil {
		return result, fmt.Errorf("%s: %w", op, e.ErrInvalidUserID)
	}

	prefs, err := ev.prefs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			// never configured: defaults are disabled
			prefs = domain.DefaultPreferences(userID)
		} else {
			return result, e.Wrap(op, err)
		}
	}

	if !prefs.Enabled {
		ev.logger.Debug("alerts disabled, skipping evaluation",
			slog.String("user_id", userID.String()))
		return result, nil
	}

	userLoc, err := ev.location.CurrentLocation(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrPermissionDenied) {
			return result, fmt.Errorf("%s: %w", op, e.ErrPermissionDenied)
		}
		ev.logger.Warn("no location fix",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return result, fmt.Errorf("%s: %w", op, e.ErrLocationUnavailable)
	}

	candidates, err := ev.source.ListActive(ctx, prefs.KindFilter())
	if err != nil {
		ev.logger.Error("candidate fetch failed",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return result, fmt.Errorf("%s: %w", op, e.ErrSourceUnavailable)
	}

	result.CandidatesSeen = len(candidates)

	// Nearest first: if the run is cut short, the closest alerts are the ones
	// most likely to have been persisted already.
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Location.Valid() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("candidate %s: %s", c.ID, e.ErrInvalidCoordinates))
			continue
		}
		scored = append(scored, scoredCandidate{
			candidate:  c,
			distanceKm: domain.DistanceKm(userLoc, c.Location),
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].distanceKm < scored[j].distanceKm
	})

	for _, sc := range scored {
		if ctx.Err() != nil {
			// cancellation keeps already-committed records intact
			ev.logger.Info("evaluation cancelled",
				slog.String("user_id", userID.String()),
				slog.Int("created_so_far", result.NotificationsCreated))
			return result, e.WrapError(ctx, op, ctx.Err())
		}

		if sc.distanceKm > prefs.RadiusKM {
			continue
		}
		if !IsEligible(sc.candidate, prefs) {
			continue
		}

		notified, err := ev.dedup.HasNotified(ctx, userID, sc.candidate.ID)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("candidate %s: dedup check: %s", sc.candidate.ID, err))
			continue
		}
		if notified {
			continue
		}

		rec := &domain.NotificationRecord{
			ID:         uuid.New(),
			UserID:     userID,
			Kind:       sc.candidate.Kind,
			EntityID:   sc.candidate.ID,
			DistanceKM: sc.distanceKm,
			Message:    domain.NotificationMessage(sc.candidate.Kind, sc.distanceKm),
			CreatedAt:  time.Now().UTC(),
		}

		// Insert writes the dedup entry in the same transaction.
		if err := ev.notifications.Insert(ctx, rec); err != nil {
			if errors.Is(err, e.ErrDuplicateNotification) || errors.Is(err, e.ErrUniqueViolation) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("candidate %s: %s", sc.candidate.ID, e.ErrDuplicateNotification))
				continue
			}
			result.Errors = append(result.Errors,
				fmt.Sprintf("candidate %s: insert: %s", sc.candidate.ID, err))
			continue
		}

		result.NotificationsCreated++

		if ev.queue != nil {
			event := domain.DispatchEvent{
				NotificationID: rec.ID,
				UserID:         rec.UserID,
				Kind:           rec.Kind,
				EntityID:       rec.EntityID,
				DistanceKM:     rec.DistanceKM,
				Message:        rec.Message,
				CreatedAt:      rec.CreatedAt,
			}
			if err := ev.queue.Enqueue(ctx, event); err != nil {
				ev.logger.Error("dispatch enqueue failed",
					slog.String("notification_id", rec.ID.String()),
					slog.Any("error", err))
			}
		}
	}

	ev.logger.Info("evaluation done",
		slog.String("user_id", userID.String()),
		slog.Int("candidates_seen", result.CandidatesSeen),
		slog.Int("notifications_created", result.NotificationsCreated),
		slog.Int("errors", len(result.Errors)),
	)

	return result, nil
}
