package service

import (
	"context"
	"time"

	"alertaVecino/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// PreferencesRepository persists per-user alert configuration.
type PreferencesRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.AlertPreferences, error)
	Upsert(ctx context.Context, prefs *domain.AlertPreferences) error
	ListEnabled(ctx context.Context) ([]uuid.UUID, error)
}

// LocationProvider yields a user's current fix.
// Returns e.ErrLocationUnavailable when no fresh fix exists and
// e.ErrPermissionDenied when the client reported denied location access.
type LocationProvider interface {
	CurrentLocation(ctx context.Context, userID uuid.UUID) (domain.GeoPoint, error)
}

// CandidateSource lists active geo-tagged entities, scoped by kind where the
// backing store supports it. Eligibility is re-checked by the evaluator
// regardless, so the scoping is an optimization only.
type CandidateSource interface {
	ListActive(ctx context.Context, kinds domain.KindFilter) ([]domain.Candidate, error)
}

// DedupStore records which (user, entity) pairs have already produced a
// notification. All operations are idempotent.
type DedupStore interface {
	HasNotified(ctx context.Context, userID, entityID uuid.UUID) (bool, error)
	MarkNotified(ctx context.Context, userID, entityID uuid.UUID, at time.Time) error
	Clear(ctx context.Context, userID, entityID uuid.UUID) error
}

// NotificationStore holds durable notification records. Insert also writes the
// dedup entry in the same transaction; Delete clears it the same way.
type NotificationStore interface {
	Insert(ctx context.Context, rec *domain.NotificationRecord) error
	ListForUser(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]*domain.NotificationRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.NotificationRecord, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DispatchQueue hands created notifications off to external delivery.
type DispatchQueue interface {
	Enqueue(ctx context.Context, event domain.DispatchEvent) error
}

// CandidateRepository is the administrative store behind the candidate source.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	Update(ctx context.Context, candidate *domain.Candidate) error
	Archive(ctx context.Context, id uuid.UUID) error
}

// StatsRepository backs the admin stats surface.
type StatsRepository interface {
	CountNotifications(ctx context.Context, minutes int) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
	CountActiveCandidates(ctx context.Context, kind domain.Kind) (int64, error)
}

// EvaluatorRunner is what the scheduler drives.
type EvaluatorRunner interface {
	RunOnce(ctx context.Context, userID uuid.UUID) (domain.EvaluationResult, error)
}

type PreferencesService interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.AlertPreferences, error)
	SetPreferences(ctx context.Context, userID uuid.UUID, req domain.SetPreferencesRequest) (*domain.AlertPreferences, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter) ([]*domain.NotificationRecord, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CandidateAdminService interface {
	Create(ctx context.Context, req domain.CreateCandidateRequest) (uuid.UUID, error)
	List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateCandidateRequest) error
	Archive(ctx context.Context, id uuid.UUID) error
}

type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error)
}

// Service aggregates the use-cases the API layer consumes.
type Service struct {
	Preferences   PreferencesService
	Notifications NotificationService
	Scheduler     *Scheduler
	Admin         CandidateAdminService
	Stats         StatsService
}

func NewService(
	preferences PreferencesService,
	notifications NotificationService,
	scheduler *Scheduler,
	admin CandidateAdminService,
	stats StatsService,
) *Service {
	return &Service{
		Preferences:   preferences,
		Notifications: notifications,
		Scheduler:     scheduler,
		Admin:         admin,
		Stats:         stats,
	}
}
