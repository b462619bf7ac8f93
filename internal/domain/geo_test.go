package domain_test

import (
	"errors"
	"math"
	"testing"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"
)

func TestDistanceKm_OneDegreeLongitudeAtEquator(t *testing.T) {
	t.Parallel()

	a := domain.GeoPoint{Lat: 0, Lng: 0}
	b := domain.GeoPoint{Lat: 0, Lng: 1}

	got := domain.DistanceKm(a, b)
	if math.Abs(got-111.19) > 0.5 {
		t.Fatalf("expected ~111.19 km, got %f", got)
	}
}

func TestDistanceKm_ZeroAtIdentity(t *testing.T) {
	t.Parallel()

	points := []domain.GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: -12.0464, Lng: -77.0428},
		{Lat: 89.9, Lng: 179.9},
		{Lat: -89.9, Lng: -179.9},
	}
	for _, p := range points {
		if d := domain.DistanceKm(p, p); d != 0 {
			t.Fatalf("distance(p,p) != 0 for %+v: got %f", p, d)
		}
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	t.Parallel()

	a := domain.GeoPoint{Lat: -12.0464, Lng: -77.0428}
	b := domain.GeoPoint{Lat: -12.20, Lng: -77.10}

	ab := domain.DistanceKm(a, b)
	ba := domain.DistanceKm(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistanceKm_LimaScenario(t *testing.T) {
	t.Parallel()

	user := domain.GeoPoint{Lat: -12.0464, Lng: -77.0428}

	near := domain.GeoPoint{Lat: -12.05, Lng: -77.04}
	if d := domain.DistanceKm(user, near); math.Abs(d-0.6) > 0.3 {
		t.Fatalf("expected ~0.6 km, got %f", d)
	}

	far := domain.GeoPoint{Lat: -12.20, Lng: -77.10}
	if d := domain.DistanceKm(user, far); math.Abs(d-17) > 2 {
		t.Fatalf("expected ~17 km, got %f", d)
	}
}

func TestNewGeoPoint_RangeValidation(t *testing.T) {
	t.Parallel()

	if _, err := domain.NewGeoPoint(-12.0464, -77.0428); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	bad := [][2]float64{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	for _, c := range bad {
		if _, err := domain.NewGeoPoint(c[0], c[1]); !errors.Is(err, e.ErrInvalidCoordinates) {
			t.Fatalf("expected ErrInvalidCoordinates for (%f,%f), got %v", c[0], c[1], err)
		}
	}
}

func TestCandidate_PubliclyVisible(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind   domain.Kind
		status domain.CandidateStatus
		want   bool
	}{
		{domain.KindIncident, domain.IncidentActive, true},
		{domain.KindIncident, domain.IncidentResolved, true},
		{domain.KindIncident, domain.IncidentArchived, false},
		{domain.KindEvent, domain.EventApproved, true},
		{domain.KindEvent, domain.EventPending, false},
		{domain.KindEvent, domain.EventCancelled, false},
	}

	for _, tc := range cases {
		c := domain.Candidate{Kind: tc.kind, Status: tc.status}
		if got := c.PubliclyVisible(); got != tc.want {
			t.Fatalf("kind=%s status=%s: got %v want %v", tc.kind, tc.status, got, tc.want)
		}
	}
}

func TestNotificationMessage(t *testing.T) {
	t.Parallel()

	if got := domain.NotificationMessage(domain.KindIncident, 1.23); got != "Incidente a 1.2 km" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := domain.NotificationMessage(domain.KindEvent, 0.61); got != "Evento a 0.6 km" {
		t.Fatalf("unexpected message: %q", got)
	}
}
