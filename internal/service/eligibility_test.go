package service_test

import (
	"testing"

	"alertaVecino/internal/domain"
	"alertaVecino/internal/service"

	"github.com/google/uuid"
)

func TestIsEligible(t *testing.T) {
	t.Parallel()

	both := &domain.AlertPreferences{NotifyIncidents: true, NotifyEvents: true}
	noIncidents := &domain.AlertPreferences{NotifyIncidents: false, NotifyEvents: true}
	noEvents := &domain.AlertPreferences{NotifyIncidents: true, NotifyEvents: false}

	cases := []struct {
		name   string
		kind   domain.Kind
		status domain.CandidateStatus
		prefs  *domain.AlertPreferences
		want   bool
	}{
		{"active incident, both on", domain.KindIncident, domain.IncidentActive, both, true},
		{"resolved incident still visible", domain.KindIncident, domain.IncidentResolved, both, true},
		{"archived incident rejected", domain.KindIncident, domain.IncidentArchived, both, false},
		{"incident toggle off", domain.KindIncident, domain.IncidentActive, noIncidents, false},
		{"approved event, both on", domain.KindEvent, domain.EventApproved, both, true},
		{"pending event rejected", domain.KindEvent, domain.EventPending, both, false},
		{"cancelled event rejected", domain.KindEvent, domain.EventCancelled, both, false},
		{"event toggle off", domain.KindEvent, domain.EventApproved, noEvents, false},
		{"unknown kind rejected", domain.Kind("rumor"), domain.IncidentActive, both, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := domain.Candidate{ID: uuid.New(), Kind: tc.kind, Status: tc.status}
			if got := service.IsEligible(c, tc.prefs); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}
