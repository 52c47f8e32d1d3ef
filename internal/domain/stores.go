package domain

import (
	"context"

	"github.com/google/uuid"
)

type GraphStore interface {
	Create(ctx context.Context, g *GraphDefinition) error
	GetByID(ctx context.Context, id uuid.UUID) (*GraphDefinition, error)
	// List returns graph headers (no statements or arguments), oldest first.
	List(ctx context.Context) ([]GraphDefinition, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AppendStatements(ctx context.Context, graphID uuid.UUID, atoms []string) error
	AppendArgument(ctx context.Context, graphID uuid.UUID, arg ArgumentDefinition) error
	Ping(ctx context.Context) error
}

type AudienceStore interface {
	Create(ctx context.Context, a *AudienceDefinition) error
	GetByID(ctx context.Context, id uuid.UUID) (*AudienceDefinition, error)
	ListByGraph(ctx context.Context, graphID uuid.UUID) ([]AudienceDefinition, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
