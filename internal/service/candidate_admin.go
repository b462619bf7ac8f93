package service

import (
	"context"
	"fmt"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/google/uuid"
)

type candidateAdminService struct {
	repo CandidateRepository
}

func NewCandidateAdminService(repo CandidateRepository) CandidateAdminService {
	return &candidateAdminService{repo: repo}
}

func (s *candidateAdminService) Create(ctx context.Context, req domain.CreateCandidateRequest) (uuid.UUID, error) {
	const op = "service.CandidateAdmin.Create"

	if !req.Kind.Valid() {
		return uuid.Nil, fmt.Errorf("%s: unknown kind %q: %w", op, req.Kind, e.ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		switch req.Kind {
		case domain.KindIncident:
			status = domain.IncidentActive
		case domain.KindEvent:
			status = domain.EventPending
		}
	}
	if !domain.ValidStatus(req.Kind, status) {
		return uuid.Nil, fmt.Errorf("%s: status %q invalid for kind %q: %w", op, status, req.Kind, e.ErrInvalidInput)
	}

	loc, err := domain.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &domain.Candidate{
		ID:       uuid.New(),
		Kind:     req.Kind,
		Title:    req.Title,
		Location: loc,
		Status:   status,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}

func (s *candidateAdminService) List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *candidateAdminService) Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	return s.repo.Get(ctx, id)
}

func (s *candidateAdminService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateCandidateRequest) error {
	const op = "service.CandidateAdmin.Update"

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Lat != nil {
		c.Location.Lat = *req.Lat
	}
	if req.Lng != nil {
		c.Location.Lng = *req.Lng
	}
	if !c.Location.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if req.Status != nil {
		if !domain.ValidStatus(c.Kind, *req.Status) {
			return fmt.Errorf("%s: status %q invalid for kind %q: %w", op, *req.Status, c.Kind, e.ErrInvalidInput)
		}
		c.Status = *req.Status
	}
	return s.repo.Update(ctx, c)
}

func (s *candidateAdminService) Archive(ctx context.Context, id uuid.UUID) error {
	return s.repo.Archive(ctx, id)
}
