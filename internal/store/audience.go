package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AudienceStore struct {
	db *pgxpool.Pool
}

func NewAudienceStore(db *pgxpool.Pool) *AudienceStore {
	return &AudienceStore{db: db}
}

func (s *AudienceStore) Create(ctx context.Context, a *domain.AudienceDefinition) error {
	weights := a.Weights
	if weights == nil {
		weights = map[string]float64{}
	}
	standards := a.Standards
	if standards == nil {
		standards = map[string]string{}
	}
	assumptions := a.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO audiences (graph_id, name, assumptions, weights, standards, default_standard)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.GraphID, a.Name, assumptions, weights, standards, a.DefaultStandard,
	).Scan(&a.ID, &a.CreatedAt)
	return mapWriteError(err)
}

const audienceColumns = `id, graph_id, name, assumptions, weights, standards, default_standard, created_at`

func scanAudience(row pgx.Row) (*domain.AudienceDefinition, error) {
	a := &domain.AudienceDefinition{}
	err := row.Scan(&a.ID, &a.GraphID, &a.Name, &a.Assumptions, &a.Weights, &a.Standards, &a.DefaultStandard, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AudienceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AudienceDefinition, error) {
	a, err := scanAudience(s.db.QueryRow(ctx,
		`SELECT `+audienceColumns+` FROM audiences WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AudienceStore) ListByGraph(ctx context.Context, graphID uuid.UUID) ([]domain.AudienceDefinition, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+audienceColumns+` FROM audiences WHERE graph_id = $1 ORDER BY created_at, name`, graphID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.AudienceDefinition
	for rows.Next() {
		a, err := scanAudience(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *a)
	}
	return results, rows.Err()
}

func (s *AudienceStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM audiences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
