package domain

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindIncident Kind = "incident"
	KindEvent    Kind = "event"
)

func (k Kind) Valid() bool {
	return k == KindIncident || k == KindEvent
}

type CandidateStatus string

// Incident statuses. Only "archived" is terminal.
const (
	IncidentActive   CandidateStatus = "active"
	IncidentResolved CandidateStatus = "resolved"
	IncidentArchived CandidateStatus = "archived"
)

// Event statuses. Events are publicly visible only while approved.
const (
	EventPending   CandidateStatus = "pending"
	EventApproved  CandidateStatus = "approved"
	EventCancelled CandidateStatus = "cancelled"
)

// Candidate is a geo-tagged entity considered for alerting.
type Candidate struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	Title     string          `json:"title"`
	Location  GeoPoint        `json:"location"`
	Status    CandidateStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// PubliclyVisible reports whether the candidate's status admits it for alerting.
func (c Candidate) PubliclyVisible() bool {
	switch c.Kind {
	case KindIncident:
		return c.Status != IncidentArchived
	case KindEvent:
		return c.Status == EventApproved
	default:
		return false
	}
}

func ValidStatus(kind Kind, status CandidateStatus) bool {
	switch kind {
	case KindIncident:
		return status == IncidentActive || status == IncidentResolved || status == IncidentArchived
	case KindEvent:
		return status == EventPending || status == EventApproved || status == EventCancelled
	default:
		return false
	}
}

// KindFilter scopes a candidate fetch server-side. Zero value fetches nothing.
type KindFilter struct {
	Incidents bool
	Events    bool
}

func (f KindFilter) Empty() bool {
	return !f.Incidents && !f.Events
}

func (f KindFilter) Allows(k Kind) bool {
	switch k {
	case KindIncident:
		return f.Incidents
	case KindEvent:
		return f.Events
	default:
		return false
	}
}
