package service

import (
	"alertaVecino/internal/domain"
)

// IsEligible decides whether a candidate is alert-worthy for the given
// preferences: the kind toggle must be on and the candidate's status must be
// publicly visible for its kind. Pure, no I/O.
func IsEligible(c domain.Candidate, prefs *domain.AlertPreferences) bool {
	switch c.Kind {
	case domain.KindIncident:
		if !prefs.NotifyIncidents {
			return false
		}
	case domain.KindEvent:
		if !prefs.NotifyEvents {
			return false
		}
	default:
		return false
	}
	return c.PubliclyVisible()
}
