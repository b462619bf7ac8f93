package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alertaVecino/internal/domain"
	"alertaVecino/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CandidateRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCandidates(pool *pgxpool.Pool, logger *slog.Logger) *CandidateRepo {
	return &CandidateRepo{pool: pool, logger: logger}
}

const candidateColumns = `
	id,
	kind,
	title,
	ST_Y(geo_point::geometry) AS lat,
	ST_X(geo_point::geometry) AS lng,
	status,
	created_at
`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID,
		&c.Kind,
		&c.Title,
		&c.Location.Lat,
		&c.Location.Lng,
		&c.Status,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *CandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	const op = "postgres.Candidate.Create"

	if c == nil || !c.Kind.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if !c.Location.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	const query = `
		INSERT INTO candidates (id, kind, title, geo_point, status, created_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6, $7)
	`

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := p.pool.Exec(ctx, query,
		c.ID,
		c.Kind,
		c.Title,
		c.Location.Lng,
		c.Location.Lat,
		c.Status,
		c.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *CandidateRepo) List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error) {
	const op = "postgres.Candidate.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	const countQuery = `SELECT COUNT(*) FROM candidates`

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	listQuery := `SELECT ` + candidateColumns + `
		FROM candidates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.pool.Query(ctx, listQuery, limit, offset)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var candidates []*domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return candidates, total, nil
}

func (p *CandidateRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	const op = "postgres.Candidate.Get"

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	c, err := scanCandidate(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return c, nil
}

func (p *CandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	const op = "postgres.Candidate.Update"

	const query = `
		UPDATE candidates
		SET title     = $2,
			geo_point = ST_SetSRID(ST_MakePoint($3, $4), 4326),
			status    = $5
		WHERE id = $1
	`

	cmd, err := p.pool.Exec(ctx, query,
		c.ID,
		c.Title,
		c.Location.Lng,
		c.Location.Lat,
		c.Status,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", c.ID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// Archive moves an incident to its terminal state (events are cancelled).
func (p *CandidateRepo) Archive(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Candidate.Archive"

	const query = `
		UPDATE candidates
		SET status = CASE kind WHEN 'incident' THEN 'archived' ELSE 'cancelled' END
		WHERE id = $1 AND status NOT IN ('archived', 'cancelled')
	`

	cmd, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// ListActive returns publicly visible candidates scoped by kind. The status
// predicates mirror the eligibility rules; the evaluator re-checks them anyway.
func (p *CandidateRepo) ListActive(ctx context.Context, kinds domain.KindFilter) ([]domain.Candidate, error) {
	const op = "postgres.Candidate.ListActive"

	if kinds.Empty() {
		return nil, nil
	}

	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE (
			(kind = 'incident' AND $1 AND status <> 'archived')
			OR
			(kind = 'event' AND $2 AND status = 'approved')
		)
	`

	rows, err := p.pool.Query(ctx, query, kinds.Incidents, kinds.Events)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	candidates := make([]domain.Candidate, 0, 16)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return candidates, nil
}
