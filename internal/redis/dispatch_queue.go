package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/redis/go-redis/v9"
)

// DispatchQueue is a Redis list carrying notification hand-off events.
type DispatchQueue struct {
	client *redis.Client
	key    string
}

func NewDispatchQueue(client *redis.Client, key string) *DispatchQueue {
	return &DispatchQueue{client: client, key: key}
}

func (q *DispatchQueue) Enqueue(ctx context.Context, event domain.DispatchEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *DispatchQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.DispatchEvent, error) {
	var event domain.DispatchEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return event, e.ErrDispatchEmpty
		}
		return event, err
	}
	if len(res) < 2 {
		return event, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &event); err != nil {
		return event, err
	}
	return event, nil
}
