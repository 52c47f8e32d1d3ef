package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GraphStore struct {
	db *pgxpool.Pool
}

func NewGraphStore(db *pgxpool.Pool) *GraphStore {
	return &GraphStore{db: db}
}

func (s *GraphStore) Create(ctx context.Context, g *domain.GraphDefinition) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO argument_graphs (name) VALUES ($1)
			 RETURNING id, created_at, updated_at`,
			g.Name,
		).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, atom := range g.Statements {
			queueStatement(batch, g.ID, i, atom)
		}
		for i, arg := range g.Arguments {
			queueArgument(batch, g.ID, i, arg)
		}
		return mapWriteError(tx.SendBatch(ctx, batch).Close())
	})
}

func queueStatement(b *pgx.Batch, graphID uuid.UUID, position int, atom string) {
	b.Queue(
		`INSERT INTO graph_statements (graph_id, position, atom) VALUES ($1, $2, $3)`,
		graphID, position, atom,
	)
}

func queueArgument(b *pgx.Batch, graphID uuid.UUID, position int, arg domain.ArgumentDefinition) {
	dir := arg.Direction
	if dir == "" {
		dir = domain.DirectionPro
	}
	weight := domain.DefaultWeight
	if arg.Weight != nil {
		weight = *arg.Weight
	}
	b.Queue(
		`INSERT INTO graph_arguments (graph_id, position, argument_id, conclusion, direction, weight)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		graphID, position, arg.ID, arg.Conclusion, string(dir), weight,
	)
	for i, p := range arg.Premises {
		b.Queue(
			`INSERT INTO argument_premises (graph_id, argument_id, position, statement, is_exception)
			 VALUES ($1, $2, $3, $4, $5)`,
			graphID, arg.ID, i, p.Statement, p.Exception,
		)
	}
}

func (s *GraphStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GraphDefinition, error) {
	g := &domain.GraphDefinition{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM argument_graphs WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT atom FROM graph_statements WHERE graph_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	g.Statements, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	rows, err = s.db.Query(ctx,
		`SELECT argument_id, conclusion, direction, weight
		 FROM graph_arguments WHERE graph_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	index := make(map[string]int)
	for rows.Next() {
		var (
			arg    domain.ArgumentDefinition
			dir    string
			weight float64
		)
		if err := rows.Scan(&arg.ID, &arg.Conclusion, &dir, &weight); err != nil {
			return nil, err
		}
		arg.Direction = domain.Direction(dir)
		arg.Weight = &weight
		index[arg.ID] = len(g.Arguments)
		g.Arguments = append(g.Arguments, arg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	premRows, err := s.db.Query(ctx,
		`SELECT argument_id, statement, is_exception
		 FROM argument_premises WHERE graph_id = $1 ORDER BY argument_id, position`, id)
	if err != nil {
		return nil, err
	}
	defer premRows.Close()
	for premRows.Next() {
		var (
			argID string
			p     domain.PremiseDefinition
		)
		if err := premRows.Scan(&argID, &p.Statement, &p.Exception); err != nil {
			return nil, err
		}
		if i, ok := index[argID]; ok {
			g.Arguments[i].Premises = append(g.Arguments[i].Premises, p)
		}
	}
	return g, premRows.Err()
}

func (s *GraphStore) List(ctx context.Context) ([]domain.GraphDefinition, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM argument_graphs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.GraphDefinition
	for rows.Next() {
		var g domain.GraphDefinition
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}

func (s *GraphStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM argument_graphs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GraphStore) AppendStatements(ctx context.Context, graphID uuid.UUID, atoms []string) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		next, err := lockNextPosition(ctx, tx, graphID, "graph_statements")
		if err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for i, atom := range atoms {
			batch.Queue(
				`INSERT INTO graph_statements (graph_id, position, atom) VALUES ($1, $2, $3)
				 ON CONFLICT (graph_id, atom) DO NOTHING`,
				graphID, next+i, atom,
			)
		}
		return mapWriteError(tx.SendBatch(ctx, batch).Close())
	})
}

func (s *GraphStore) AppendArgument(ctx context.Context, graphID uuid.UUID, arg domain.ArgumentDefinition) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		next, err := lockNextPosition(ctx, tx, graphID, "graph_arguments")
		if err != nil {
			return err
		}
		batch := &pgx.Batch{}
		queueArgument(batch, graphID, next, arg)
		return mapWriteError(tx.SendBatch(ctx, batch).Close())
	})
}

// lockNextPosition locks the graph row and returns the next free position
// in table. table is always one of the package's own table names.
func lockNextPosition(ctx context.Context, tx pgx.Tx, graphID uuid.UUID, table string) (int, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx,
		`UPDATE argument_graphs SET updated_at = now() WHERE id = $1 RETURNING id`, graphID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	var next int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM `+table+` WHERE graph_id = $1`, graphID,
	).Scan(&next)
	return next, err
}

func (s *GraphStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}
