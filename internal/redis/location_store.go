package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// deniedMarker is stored in place of a fix when the client reported that
// location permission was revoked.
const deniedMarker = "denied"

// LocationStore keeps the last client-reported fix per user, expiring after
// the configured TTL so evaluations never run against stale positions.
type LocationStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewLocationStore(r *Redis, ttl time.Duration) *LocationStore {
	return &LocationStore{client: r.Client, ttl: ttl}
}

func locationKey(userID uuid.UUID) string {
	return fmt.Sprintf("location:%s", userID)
}

func (s *LocationStore) ReportFix(ctx context.Context, userID uuid.UUID, point domain.GeoPoint) error {
	b, err := json.Marshal(point)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, locationKey(userID), b, s.ttl).Err()
}

func (s *LocationStore) ReportDenied(ctx context.Context, userID uuid.UUID) error {
	return s.client.Set(ctx, locationKey(userID), deniedMarker, s.ttl).Err()
}

func (s *LocationStore) CurrentLocation(ctx context.Context, userID uuid.UUID) (domain.GeoPoint, error) {
	data, err := s.client.Get(ctx, locationKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.GeoPoint{}, e.ErrLocationUnavailable
		}
		return domain.GeoPoint{}, err
	}

	if string(data) == deniedMarker {
		return domain.GeoPoint{}, e.ErrPermissionDenied
	}

	var point domain.GeoPoint
	if err := json.Unmarshal(data, &point); err != nil {
		return domain.GeoPoint{}, e.ErrLocationUnavailable
	}
	if !point.Valid() {
		return domain.GeoPoint{}, e.ErrLocationUnavailable
	}
	return point, nil
}
