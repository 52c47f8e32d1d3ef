package store

import (
	"context"
	"sync"
	"time"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/google/uuid"
)

// MemoryGraphStore keeps graphs in process memory. It backs the server when
// no database is configured and serves as a test double.
type MemoryGraphStore struct {
	mu     sync.RWMutex
	graphs map[uuid.UUID]*domain.GraphDefinition
	order  []uuid.UUID
	// audiences is notified on graph deletion so dependent rows go too.
	audiences *MemoryAudienceStore
}

func NewMemoryGraphStore() *MemoryGraphStore {
	return &MemoryGraphStore{graphs: make(map[uuid.UUID]*domain.GraphDefinition)}
}

// NewMemoryStores returns a graph store and an audience store that cascade
// deletes like the Postgres schema does.
func NewMemoryStores() (*MemoryGraphStore, *MemoryAudienceStore) {
	graphs := NewMemoryGraphStore()
	audiences := NewMemoryAudienceStore()
	graphs.audiences = audiences
	return graphs, audiences
}

func (s *MemoryGraphStore) Create(ctx context.Context, g *domain.GraphDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seenStmt := make(map[string]bool, len(g.Statements))
	for _, atom := range g.Statements {
		if seenStmt[atom] {
			return ErrConflict
		}
		seenStmt[atom] = true
	}
	seenArg := make(map[string]bool, len(g.Arguments))
	for _, a := range g.Arguments {
		if seenArg[a.ID] {
			return ErrConflict
		}
		seenArg[a.ID] = true
	}

	now := time.Now().UTC()
	g.ID = uuid.New()
	g.CreatedAt = now
	g.UpdatedAt = now
	s.graphs[g.ID] = cloneGraph(g)
	s.order = append(s.order, g.ID)
	return nil
}

func (s *MemoryGraphStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GraphDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneGraph(g), nil
}

func (s *MemoryGraphStore) List(ctx context.Context) ([]domain.GraphDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]domain.GraphDefinition, 0, len(s.order))
	for _, id := range s.order {
		g := s.graphs[id]
		results = append(results, domain.GraphDefinition{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt})
	}
	return results, nil
}

func (s *MemoryGraphStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[id]; !ok {
		return ErrNotFound
	}
	delete(s.graphs, id)
	for i, gid := range s.order {
		if gid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.audiences != nil {
		s.audiences.deleteByGraph(id)
	}
	return nil
}

func (s *MemoryGraphStore) AppendStatements(ctx context.Context, graphID uuid.UUID, atoms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[graphID]
	if !ok {
		return ErrNotFound
	}
	known := make(map[string]bool, len(g.Statements))
	for _, atom := range g.Statements {
		known[atom] = true
	}
	for _, atom := range atoms {
		if !known[atom] {
			known[atom] = true
			g.Statements = append(g.Statements, atom)
		}
	}
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryGraphStore) AppendArgument(ctx context.Context, graphID uuid.UUID, arg domain.ArgumentDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[graphID]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range g.Arguments {
		if existing.ID == arg.ID {
			return ErrConflict
		}
	}
	g.Arguments = append(g.Arguments, cloneArgument(arg))
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryGraphStore) Ping(ctx context.Context) error {
	return nil
}

type MemoryAudienceStore struct {
	mu        sync.RWMutex
	audiences map[uuid.UUID]*domain.AudienceDefinition
	order     []uuid.UUID
}

func NewMemoryAudienceStore() *MemoryAudienceStore {
	return &MemoryAudienceStore{audiences: make(map[uuid.UUID]*domain.AudienceDefinition)}
}

func (s *MemoryAudienceStore) Create(ctx context.Context, a *domain.AudienceDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.audiences {
		if existing.GraphID == a.GraphID && existing.Name == a.Name {
			return ErrConflict
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	s.audiences[a.ID] = cloneAudience(a)
	s.order = append(s.order, a.ID)
	return nil
}

func (s *MemoryAudienceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AudienceDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.audiences[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneAudience(a), nil
}

func (s *MemoryAudienceStore) ListByGraph(ctx context.Context, graphID uuid.UUID) ([]domain.AudienceDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []domain.AudienceDefinition
	for _, id := range s.order {
		if a := s.audiences[id]; a.GraphID == graphID {
			results = append(results, *cloneAudience(a))
		}
	}
	return results, nil
}

func (s *MemoryAudienceStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.audiences[id]; !ok {
		return ErrNotFound
	}
	s.remove(id)
	return nil
}

func (s *MemoryAudienceStore) deleteByGraph(graphID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range append([]uuid.UUID(nil), s.order...) {
		if s.audiences[id].GraphID == graphID {
			s.remove(id)
		}
	}
}

func (s *MemoryAudienceStore) remove(id uuid.UUID) {
	delete(s.audiences, id)
	for i, aid := range s.order {
		if aid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func cloneGraph(g *domain.GraphDefinition) *domain.GraphDefinition {
	c := *g
	c.Statements = append([]string(nil), g.Statements...)
	c.Arguments = make([]domain.ArgumentDefinition, len(g.Arguments))
	for i, a := range g.Arguments {
		c.Arguments[i] = cloneArgument(a)
	}
	return &c
}

func cloneArgument(a domain.ArgumentDefinition) domain.ArgumentDefinition {
	c := a
	if a.Weight != nil {
		w := *a.Weight
		c.Weight = &w
	}
	c.Premises = append([]domain.PremiseDefinition(nil), a.Premises...)
	return c
}

func cloneAudience(a *domain.AudienceDefinition) *domain.AudienceDefinition {
	c := *a
	c.Assumptions = append([]string(nil), a.Assumptions...)
	if a.Weights != nil {
		c.Weights = make(map[string]float64, len(a.Weights))
		for k, v := range a.Weights {
			c.Weights[k] = v
		}
	}
	if a.Standards != nil {
		c.Standards = make(map[string]string, len(a.Standards))
		for k, v := range a.Standards {
			c.Standards[k] = v
		}
	}
	return &c
}
