package domain

import (
	"fmt"
	"sort"
)

// Audience is the point of view an argument graph is evaluated from: the
// statements it accepts without argument, the weights it gives arguments,
// and the proof standard it applies to each statement. An audience is
// immutable once built and does not refer to any particular graph.
type Audience struct {
	assumptions     map[string]struct{}
	weights         map[string]float64
	standards       map[string]ProofStandard
	defaultStandard ProofStandard
}

type AudienceOption func(*Audience)

func Assume(stmts ...*Statement) AudienceOption {
	return func(a *Audience) {
		for _, s := range stmts {
			a.assumptions[s.ID()] = struct{}{}
		}
	}
}

func AssumeIDs(ids ...string) AudienceOption {
	return func(a *Audience) {
		for _, id := range ids {
			a.assumptions[id] = struct{}{}
		}
	}
}

// WithArgumentWeight overrides the weight of the argument with the given ID.
func WithArgumentWeight(argumentID string, w float64) AudienceOption {
	return func(a *Audience) { a.weights[argumentID] = w }
}

// WithStandard assigns std to the statement with the given ID.
func WithStandard(statementID string, std ProofStandard) AudienceOption {
	return func(a *Audience) { a.standards[statementID] = std }
}

func WithDefaultStandard(std ProofStandard) AudienceOption {
	return func(a *Audience) { a.defaultStandard = std }
}

func NewAudience(opts ...AudienceOption) (*Audience, error) {
	a := &Audience{
		assumptions:     make(map[string]struct{}),
		weights:         make(map[string]float64),
		standards:       make(map[string]ProofStandard),
		defaultStandard: Scintilla{},
	}
	for _, opt := range opts {
		opt(a)
	}

	for id := range a.assumptions {
		atom, positive, err := ParseStatementID(id)
		if err != nil {
			return nil, err
		}
		if positive {
			if _, both := a.assumptions[NegateID(id)]; both {
				return nil, &InconsistentAssumptionsError{Atom: atom}
			}
		}
	}
	for id, w := range a.weights {
		if !validWeight(w) {
			return nil, &InvalidWeightError{Argument: id, Weight: w}
		}
	}
	for id, std := range a.standards {
		if std == nil {
			return nil, fmt.Errorf("%w: nil standard for %q", ErrUnknownProofStandard, id)
		}
	}
	if a.defaultStandard == nil {
		return nil, fmt.Errorf("%w: nil default standard", ErrUnknownProofStandard)
	}
	return a, nil
}

func (a *Audience) IsAssumed(s *Statement) bool {
	_, ok := a.assumptions[s.ID()]
	return ok
}

// WeightOf returns the audience's weight for arg, falling back to the
// argument's own weight.
func (a *Audience) WeightOf(arg *Argument) float64 {
	if w, ok := a.weights[arg.ID]; ok {
		return w
	}
	return arg.Weight
}

// StandardFor returns the standard assigned to s. A standard assigned to
// only one literal governs the whole issue, so the negation inherits it.
func (a *Audience) StandardFor(s *Statement) ProofStandard {
	if std, ok := a.standards[s.ID()]; ok {
		return std
	}
	if std, ok := a.standards[s.Negation().ID()]; ok {
		return std
	}
	return a.defaultStandard
}

func (a *Audience) DefaultStandard() ProofStandard {
	return a.defaultStandard
}

// Assumptions returns the assumed statement IDs in sorted order.
func (a *Audience) Assumptions() []string {
	out := make([]string, 0, len(a.assumptions))
	for id := range a.assumptions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Validate checks every statement and argument the audience mentions
// against g.
func (a *Audience) Validate(g *ArgumentGraph) error {
	for _, id := range a.Assumptions() {
		if !g.HasStatement(id) {
			return &UnknownStatementError{ID: id, Context: "audience assumptions"}
		}
	}
	for _, id := range sortedKeys(a.standards) {
		if !g.HasStatement(id) {
			return &UnknownStatementError{ID: id, Context: "audience proof standards"}
		}
	}
	for _, id := range sortedKeys(a.weights) {
		if _, err := g.Argument(id); err != nil {
			return &UnknownArgumentError{ID: id, Context: "audience weights"}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
