package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRadiusKM     = 1.0
	MaxRadiusKM     = 50.0
	DefaultRadiusKM = 5.0
)

// AlertPreferences is the per-user alerting configuration.
type AlertPreferences struct {
	UserID          uuid.UUID `json:"user_id"`
	Enabled         bool      `json:"enabled"`
	RadiusKM        float64   `json:"radius_km" validate:"radius_km"`
	NotifyIncidents bool      `json:"notify_incidents"`
	NotifyEvents    bool      `json:"notify_events"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultPreferences is what a user gets before the first explicit configuration.
func DefaultPreferences(userID uuid.UUID) *AlertPreferences {
	return &AlertPreferences{
		UserID:          userID,
		Enabled:         false,
		RadiusKM:        DefaultRadiusKM,
		NotifyIncidents: true,
		NotifyEvents:    true,
	}
}

func (p *AlertPreferences) KindFilter() KindFilter {
	return KindFilter{Incidents: p.NotifyIncidents, Events: p.NotifyEvents}
}

func (p *AlertPreferences) ValidRadius() bool {
	return p.RadiusKM >= MinRadiusKM && p.RadiusKM <= MaxRadiusKM
}
