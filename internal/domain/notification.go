package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationRecord is created at most once per (user, entity) pair while the
// dedup entry for that pair is live. Read transitions one way: unread -> read.
type NotificationRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Kind       Kind      `json:"kind"`
	EntityID   uuid.UUID `json:"entity_id"`
	DistanceKM float64   `json:"distance_km"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	Read       bool      `json:"read"`
}

// NotificationMessage renders the user-facing alert text.
func NotificationMessage(kind Kind, distanceKm float64) string {
	label := "Incidente"
	if kind == KindEvent {
		label = "Evento"
	}
	return fmt.Sprintf("%s a %.1f km", label, distanceKm)
}

// NotificationFilter narrows a per-user listing.
type NotificationFilter struct {
	Kind       *Kind
	UnreadOnly bool
}

// DedupEntry records that a (user, entity) pair has already produced a
// notification. Never updated; removed only when the user deletes the
// corresponding notification.
type DedupEntry struct {
	UserID          uuid.UUID `json:"user_id"`
	EntityID        uuid.UUID `json:"entity_id"`
	FirstNotifiedAt time.Time `json:"first_notified_at"`
}

// EvaluationResult summarizes one evaluation pass for one user.
type EvaluationResult struct {
	CandidatesSeen       int      `json:"candidates_seen"`
	NotificationsCreated int      `json:"notifications_created"`
	Skipped              bool     `json:"skipped,omitempty"`
	Errors               []string `json:"errors,omitempty"`
}

// DispatchEvent is the hand-off payload enqueued for external delivery
// collaborators when a notification is created.
type DispatchEvent struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Kind           Kind      `json:"kind"`
	EntityID       uuid.UUID `json:"entity_id"`
	DistanceKM     float64   `json:"distance_km"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
