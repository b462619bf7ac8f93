package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"alertaVecino/internal/config"
	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"
)

// DispatchDequeuer is the blocking-pop side of the dispatch queue.
type DispatchDequeuer interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.DispatchEvent, error)
}

// Dispatcher drains the notification hand-off queue and POSTs each event to
// the configured sink. Actual push delivery (APNs/FCM and friends) is the
// sink's problem, not ours.
type Dispatcher struct {
	logger *slog.Logger
	cfg    config.DispatchConfig
	queue  DispatchDequeuer
	http   *http.Client
}

func NewDispatcher(logger *slog.Logger, cfg config.DispatchConfig, queue DispatchDequeuer) *Dispatcher {
	return &Dispatcher{
		logger: logger,
		cfg:    cfg,
		queue:  queue,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("dispatcher started", slog.String("url", d.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		event, err := d.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrDispatchEmpty) {
				continue
			}
			d.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		d.sendWithRetry(ctx, event)
	}
}

func (d *Dispatcher) sendWithRetry(ctx context.Context, event domain.DispatchEvent) {
	const maxRetries = 3

	body, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("marshal dispatch event failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			d.logger.Info("stop retries due to context cancel")
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(body))
		if err != nil {
			d.logger.Error("create dispatch request failed", slog.String("error", err.Error()))
			return
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := d.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		d.logger.Warn("dispatch failed",
			slog.Int("attempt", attempt),
			slog.String("notification_id", event.NotificationID.String()),
			slog.String("reason", reason),
		)

		select {
		case <-ctx.Done():
			d.logger.Info("stop retries due to context cancel")
			return
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
}
