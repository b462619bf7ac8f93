package service

import (
	"context"
	"time"

	"alertaVecino/internal/domain"
)

type statsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error) {
	minutes := req.Minutes
	if minutes == 0 {
		minutes = 60
	}

	created, err := s.repo.CountNotifications(ctx, minutes)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	incidents, err := s.repo.CountActiveCandidates(ctx, domain.KindIncident)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.CountActiveCandidates(ctx, domain.KindEvent)
	if err != nil {
		return nil, err
	}

	return &domain.AlertStats{
		NotificationsCreated: created,
		UnreadNotifications:  unread,
		ActiveIncidents:      incidents,
		ActiveEvents:         events,
		Minutes:              minutes,
		GeneratedAt:          time.Now().UTC(),
	}, nil
}
