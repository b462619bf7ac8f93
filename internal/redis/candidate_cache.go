package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"alertaVecino/internal/domain"
	"alertaVecino/internal/service"

	goredis "github.com/redis/go-redis/v9"
)

const candidateCacheKey = "candidates:active"

// CachedCandidateSource fronts the candidate store with a short-lived Redis
// snapshot of the full visible set. Kind scoping happens in memory so every
// filter combination shares the same cache entry.
type CachedCandidateSource struct {
	client *goredis.Client
	source service.CandidateSource
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedCandidateSource(r *Redis, source service.CandidateSource, ttl time.Duration, logger *slog.Logger) *CachedCandidateSource {
	return &CachedCandidateSource{
		client: r.Client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedCandidateSource) ListActive(ctx context.Context, kinds domain.KindFilter) ([]domain.Candidate, error) {
	if kinds.Empty() {
		return nil, nil
	}

	all, ok := c.getCached(ctx)
	if !ok {
		var err error
		all, err = c.source.ListActive(ctx, domain.KindFilter{Incidents: true, Events: true})
		if err != nil {
			return nil, err
		}
		c.setCached(ctx, all)
	}

	out := make([]domain.Candidate, 0, len(all))
	for _, cand := range all {
		if kinds.Allows(cand.Kind) {
			out = append(out, cand)
		}
	}
	return out, nil
}

func (c *CachedCandidateSource) getCached(ctx context.Context) ([]domain.Candidate, bool) {
	data, err := c.client.Get(ctx, candidateCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("candidate cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		c.logger.Warn("candidate cache corrupt, bypassing", slog.String("error", err.Error()))
		return nil, false
	}
	return candidates, true
}

func (c *CachedCandidateSource) setCached(ctx context.Context, candidates []domain.Candidate) {
	b, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, candidateCacheKey, b, c.ttl).Err(); err != nil {
		c.logger.Warn("candidate cache write failed", slog.String("error", err.Error()))
	}
}
