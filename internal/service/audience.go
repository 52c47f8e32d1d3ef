package service

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrAudienceNotFound = errors.New("audience not found")
	ErrAudienceConflict = errors.New("audience with this name already exists for the graph")
	ErrAudienceName     = errors.New("audience name is required")
)

type AudienceService struct {
	store    domain.AudienceStore
	graphs   domain.GraphStore
	registry *domain.StandardRegistry
	logger   *zap.Logger
}

func NewAudienceService(s domain.AudienceStore, graphs domain.GraphStore, registry *domain.StandardRegistry, logger *zap.Logger) *AudienceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudienceService{store: s, graphs: graphs, registry: registry, logger: logger}
}

// Create stores an audience for an existing graph. The audience is checked
// on its own (standards, weights, consistent assumptions); references into
// the graph are checked when it is used for evaluation.
func (s *AudienceService) Create(ctx context.Context, def *domain.AudienceDefinition) error {
	if err := s.Check(def); err != nil {
		return err
	}
	if _, err := s.graphs.GetByID(ctx, def.GraphID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGraphNotFound
		}
		return err
	}
	if err := s.store.Create(ctx, def); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrAudienceConflict
		}
		return err
	}
	s.logger.Info("audience created",
		zap.String("audience_id", def.ID.String()),
		zap.String("graph_id", def.GraphID.String()),
		zap.String("name", def.Name),
	)
	return nil
}

// Check reports whether def builds against the registry, without storing it.
func (s *AudienceService) Check(def *domain.AudienceDefinition) error {
	if def.Name == "" {
		return ErrAudienceName
	}
	_, err := def.Build(s.registry)
	return err
}

func (s *AudienceService) Get(ctx context.Context, id uuid.UUID) (*domain.AudienceDefinition, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAudienceNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AudienceService) ListByGraph(ctx context.Context, graphID uuid.UUID) ([]domain.AudienceDefinition, error) {
	if _, err := s.graphs.GetByID(ctx, graphID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGraphNotFound
		}
		return nil, err
	}
	return s.store.ListByGraph(ctx, graphID)
}

func (s *AudienceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAudienceNotFound
		}
		return err
	}
	return nil
}
