package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GraphDefinition is the serializable form of an ArgumentGraph. Build and
// DefinitionOf convert between the two without loss.
type GraphDefinition struct {
	ID         uuid.UUID            `json:"id" yaml:"-"`
	Name       string               `json:"name" yaml:"name"`
	Statements []string             `json:"statements" yaml:"statements"`
	Arguments  []ArgumentDefinition `json:"arguments" yaml:"arguments"`
	CreatedAt  time.Time            `json:"created_at" yaml:"-"`
	UpdatedAt  time.Time            `json:"updated_at" yaml:"-"`
}

type ArgumentDefinition struct {
	ID         string              `json:"id" yaml:"id"`
	Conclusion string              `json:"conclusion" yaml:"conclusion"`
	Direction  Direction           `json:"direction,omitempty" yaml:"direction,omitempty"`
	Weight     *float64            `json:"weight,omitempty" yaml:"weight,omitempty"`
	Premises   []PremiseDefinition `json:"premises,omitempty" yaml:"premises,omitempty"`
}

type PremiseDefinition struct {
	Statement string `json:"statement" yaml:"statement"`
	Exception bool   `json:"exception,omitempty" yaml:"exception,omitempty"`
}

// Build constructs the graph. Statements are registered first, then
// arguments in order; the first failure is returned.
func (d *GraphDefinition) Build() (*ArgumentGraph, error) {
	g := NewArgumentGraph()
	for _, id := range d.Statements {
		if _, err := g.AddStatement(id); err != nil {
			return nil, err
		}
	}
	for _, ad := range d.Arguments {
		arg, err := ad.resolve(g)
		if err != nil {
			return nil, err
		}
		if err := g.AddArgument(arg); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (d *ArgumentDefinition) resolve(g *ArgumentGraph) (*Argument, error) {
	context := fmt.Sprintf("argument %q", d.ID)
	conclusion, err := g.Statement(d.Conclusion)
	if err != nil {
		return nil, &UnknownStatementError{ID: d.Conclusion, Context: context}
	}
	dir := d.Direction
	if dir == "" {
		dir = DirectionPro
	}
	weight := DefaultWeight
	if d.Weight != nil {
		weight = *d.Weight
	}
	premises := make([]Premise, len(d.Premises))
	for i, pd := range d.Premises {
		s, err := g.Statement(pd.Statement)
		if err != nil {
			return nil, &UnknownStatementError{ID: pd.Statement, Context: context}
		}
		premises[i] = Premise{Statement: s, Exception: pd.Exception}
	}
	return &Argument{
		ID:         d.ID,
		Premises:   premises,
		Conclusion: conclusion,
		Direction:  dir,
		Weight:     weight,
	}, nil
}

// DefinitionOf serializes g. Weights and directions are always written out.
func DefinitionOf(name string, g *ArgumentGraph) GraphDefinition {
	d := GraphDefinition{Name: name}
	for _, s := range g.Statements() {
		d.Statements = append(d.Statements, s.ID())
	}
	for _, a := range g.Arguments() {
		d.Arguments = append(d.Arguments, ArgumentDefinitionOf(a))
	}
	return d
}

func ArgumentDefinitionOf(a *Argument) ArgumentDefinition {
	w := a.Weight
	ad := ArgumentDefinition{
		ID:         a.ID,
		Conclusion: a.Conclusion.ID(),
		Direction:  a.Direction,
		Weight:     &w,
	}
	for _, p := range a.Premises {
		ad.Premises = append(ad.Premises, PremiseDefinition{Statement: p.Statement.ID(), Exception: p.Exception})
	}
	return ad
}

// AudienceDefinition is the serializable form of an Audience. Standards are
// referenced by registry name.
type AudienceDefinition struct {
	ID              uuid.UUID          `json:"id" yaml:"-"`
	GraphID         uuid.UUID          `json:"graph_id" yaml:"-"`
	Name            string             `json:"name" yaml:"name"`
	Assumptions     []string           `json:"assumptions" yaml:"assumptions,omitempty"`
	Weights         map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	Standards       map[string]string  `json:"standards,omitempty" yaml:"standards,omitempty"`
	DefaultStandard string             `json:"default_standard,omitempty" yaml:"default_standard,omitempty"`
	CreatedAt       time.Time          `json:"created_at" yaml:"-"`
}

func (d *AudienceDefinition) Build(registry *StandardRegistry) (*Audience, error) {
	opts := []AudienceOption{AssumeIDs(d.Assumptions...), WithDefaultStandard(registry.Default())}
	if d.DefaultStandard != "" {
		std, err := registry.Lookup(d.DefaultStandard)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDefaultStandard(std))
	}
	for _, id := range sortedKeys(d.Standards) {
		std, err := registry.Lookup(d.Standards[id])
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStandard(id, std))
	}
	for _, id := range sortedKeys(d.Weights) {
		opts = append(opts, WithArgumentWeight(id, d.Weights[id]))
	}
	return NewAudience(opts...)
}
