package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrGraphNotFound = errors.New("argument graph not found")
	ErrGraphName     = errors.New("graph name is required")
)

type GraphService struct {
	store  domain.GraphStore
	logger *zap.Logger
}

func NewGraphService(s domain.GraphStore, logger *zap.Logger) *GraphService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphService{store: s, logger: logger}
}

// Create validates def by building it and stores it. Nothing is stored when
// the graph does not build.
func (s *GraphService) Create(ctx context.Context, def *domain.GraphDefinition) error {
	if def.Name == "" {
		return ErrGraphName
	}
	if _, err := def.Build(); err != nil {
		return err
	}
	normalizeStatements(def)
	if err := s.store.Create(ctx, def); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("%w: duplicate statement or argument", domain.ErrDuplicateArgument)
		}
		return err
	}
	s.logger.Info("argument graph created",
		zap.String("graph_id", def.ID.String()),
		zap.String("name", def.Name),
		zap.Int("statements", len(def.Statements)),
		zap.Int("arguments", len(def.Arguments)),
	)
	return nil
}

// normalizeStatements stores atoms only, once each, in first-seen order;
// definitions may list "-x" to declare x.
func normalizeStatements(def *domain.GraphDefinition) {
	seen := make(map[string]bool, len(def.Statements))
	atoms := make([]string, 0, len(def.Statements))
	for _, id := range def.Statements {
		atom, _, err := domain.ParseStatementID(id)
		if err != nil || seen[atom] {
			continue
		}
		seen[atom] = true
		atoms = append(atoms, atom)
	}
	def.Statements = atoms
}

func (s *GraphService) Get(ctx context.Context, id uuid.UUID) (*domain.GraphDefinition, error) {
	def, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGraphNotFound
		}
		return nil, err
	}
	return def, nil
}

// Load returns the stored definition together with the graph built from it.
func (s *GraphService) Load(ctx context.Context, id uuid.UUID) (*domain.GraphDefinition, *domain.ArgumentGraph, error) {
	def, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	g, err := def.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build graph %s: %w", id, err)
	}
	return def, g, nil
}

func (s *GraphService) List(ctx context.Context) ([]domain.GraphDefinition, error) {
	return s.store.List(ctx)
}

func (s *GraphService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGraphNotFound
		}
		return err
	}
	s.logger.Info("argument graph deleted", zap.String("graph_id", id.String()))
	return nil
}

// AddStatements declares further statements. Known ones are ignored.
func (s *GraphService) AddStatements(ctx context.Context, id uuid.UUID, ids []string) (*domain.GraphDefinition, error) {
	def, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	added := &domain.GraphDefinition{Statements: ids}
	if _, err := added.Build(); err != nil {
		return nil, err
	}
	normalizeStatements(added)

	if err := s.store.AppendStatements(ctx, id, added.Statements); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGraphNotFound
		}
		return nil, err
	}
	def.Statements = appendNew(def.Statements, added.Statements)
	return def, nil
}

func appendNew(existing, atoms []string) []string {
	known := make(map[string]bool, len(existing))
	for _, a := range existing {
		known[a] = true
	}
	for _, a := range atoms {
		if !known[a] {
			known[a] = true
			existing = append(existing, a)
		}
	}
	return existing
}

// AddArgument appends arg after checking it against the current graph:
// duplicate identifiers and unknown statements are rejected before
// anything is written.
func (s *GraphService) AddArgument(ctx context.Context, id uuid.UUID, arg domain.ArgumentDefinition) (*domain.GraphDefinition, error) {
	def, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	def.Arguments = append(def.Arguments, arg)
	if _, err := def.Build(); err != nil {
		return nil, err
	}
	if err := s.store.AppendArgument(ctx, id, arg); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrGraphNotFound
		case errors.Is(err, store.ErrConflict):
			return nil, &domain.DuplicateArgumentError{ID: arg.ID}
		}
		return nil, err
	}
	s.logger.Info("argument added",
		zap.String("graph_id", id.String()),
		zap.String("argument_id", arg.ID),
	)
	return def, nil
}

// Cycles reports the dependency cycles of the stored graph.
func (s *GraphService) Cycles(ctx context.Context, id uuid.UUID) ([][]string, error) {
	_, g, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Cycles(), nil
}
