package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoTargets             = errors.New("at least one target statement is required")
	ErrNoAudience            = errors.New("either audience_id or audience is required")
	ErrAudienceGraphMismatch = errors.New("audience belongs to a different graph")
)

const DefaultParallelism = 4

// EvaluationRequest names the audience, stored or inline, and the
// statements to evaluate.
type EvaluationRequest struct {
	AudienceID *uuid.UUID                 `json:"audience_id,omitempty"`
	Audience   *domain.AudienceDefinition `json:"audience,omitempty"`
	Targets    []string                   `json:"targets"`
}

type EvaluationReport struct {
	GraphID     uuid.UUID     `json:"graph_id"`
	Audience    string        `json:"audience"`
	Evaluations []*Evaluation `json:"evaluations"`
}

type LabelReport struct {
	GraphID  uuid.UUID        `json:"graph_id"`
	Audience string           `json:"audience"`
	Labels   []StatementLabel `json:"labels"`
}

type EvaluationService struct {
	graphs      *GraphService
	audiences   *AudienceService
	registry    *domain.StandardRegistry
	parallelism int
	logger      *zap.Logger
}

func NewEvaluationService(graphs *GraphService, audiences *AudienceService, registry *domain.StandardRegistry, parallelism int, logger *zap.Logger) *EvaluationService {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{
		graphs:      graphs,
		audiences:   audiences,
		registry:    registry,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Evaluate decides every target independently. Targets run concurrently,
// each with its own cycle guard, over the same read-only graph; results
// keep the order of req.Targets. Evaluation stops with ctx.Err() once ctx
// is done.
func (s *EvaluationService) Evaluate(ctx context.Context, graphID uuid.UUID, req EvaluationRequest) (*EvaluationReport, error) {
	if len(req.Targets) == 0 {
		return nil, ErrNoTargets
	}
	evaluator, audience, name, err := s.prepare(ctx, graphID, req)
	if err != nil {
		return nil, err
	}

	results := make([]*Evaluation, len(req.Targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, target := range req.Targets {
		i, target := i, target
		g.Go(func() error {
			ev, err := evaluator.EvaluateID(gctx, target, audience)
			if err != nil {
				return err
			}
			results[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("graph evaluated",
		zap.String("graph_id", graphID.String()),
		zap.String("audience", name),
		zap.Int("targets", len(req.Targets)),
	)
	return &EvaluationReport{GraphID: graphID, Audience: name, Evaluations: results}, nil
}

// Label labels every issue of the graph for the requested audience.
func (s *EvaluationService) Label(ctx context.Context, graphID uuid.UUID, req EvaluationRequest) (*LabelReport, error) {
	evaluator, audience, name, err := s.prepare(ctx, graphID, req)
	if err != nil {
		return nil, err
	}
	labels, err := evaluator.Label(ctx, audience)
	if err != nil {
		return nil, err
	}
	return &LabelReport{GraphID: graphID, Audience: name, Labels: labels}, nil
}

func (s *EvaluationService) prepare(ctx context.Context, graphID uuid.UUID, req EvaluationRequest) (*Evaluator, *domain.Audience, string, error) {
	_, g, err := s.graphs.Load(ctx, graphID)
	if err != nil {
		return nil, nil, "", err
	}

	var def *domain.AudienceDefinition
	switch {
	case req.AudienceID != nil:
		def, err = s.audiences.Get(ctx, *req.AudienceID)
		if err != nil {
			return nil, nil, "", err
		}
		if def.GraphID != graphID {
			return nil, nil, "", ErrAudienceGraphMismatch
		}
	case req.Audience != nil:
		def = req.Audience
	default:
		return nil, nil, "", ErrNoAudience
	}

	audience, err := def.Build(s.registry)
	if err != nil {
		return nil, nil, "", fmt.Errorf("audience %q: %w", def.Name, err)
	}
	return NewEvaluator(g, s.logger), audience, def.Name, nil
}
