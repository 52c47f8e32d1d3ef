package domain

import "fmt"

// ArgumentGraph indexes statements and the arguments concluding or
// depending on them. It is built once and then only read, so concurrent
// evaluations may share it without locking.
type ArgumentGraph struct {
	statements map[string]*Statement // both polarities, keyed by ID
	atoms      []string

	arguments map[string]*Argument
	order     []*Argument

	// supports holds, per statement ID, the arguments arguing for that
	// statement: pro arguments concluding it and con arguments concluding
	// its negation.
	supports map[string][]*Argument
	// dependents holds, per atom, the arguments using either polarity as a premise.
	dependents map[string][]*Argument
}

func NewArgumentGraph() *ArgumentGraph {
	return &ArgumentGraph{
		statements: make(map[string]*Statement),
		arguments:  make(map[string]*Argument),
		supports:   make(map[string][]*Argument),
		dependents: make(map[string][]*Argument),
	}
}

// AddStatement interns the statement named by id (either polarity) and
// returns the graph's canonical object for it. Adding a known statement
// returns the existing object.
func (g *ArgumentGraph) AddStatement(id string) (*Statement, error) {
	atom, positive, err := ParseStatementID(id)
	if err != nil {
		return nil, err
	}
	s, ok := g.statements[atom]
	if !ok {
		s = newStatementPair(atom)
		g.statements[s.ID()] = s
		g.statements[s.Negation().ID()] = s.Negation()
		g.atoms = append(g.atoms, atom)
	}
	if positive {
		return s, nil
	}
	return s.Negation(), nil
}

// MustAddStatement is AddStatement for statically known identifiers.
func (g *ArgumentGraph) MustAddStatement(id string) *Statement {
	s, err := g.AddStatement(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Statement looks up a statement of either polarity.
func (g *ArgumentGraph) Statement(id string) (*Statement, error) {
	s, ok := g.statements[id]
	if !ok {
		return nil, &UnknownStatementError{ID: id}
	}
	return s, nil
}

func (g *ArgumentGraph) HasStatement(id string) bool {
	_, ok := g.statements[id]
	return ok
}

// Statements returns the positive literal of every atom in insertion order.
func (g *ArgumentGraph) Statements() []*Statement {
	out := make([]*Statement, len(g.atoms))
	for i, atom := range g.atoms {
		out[i] = g.statements[atom]
	}
	return out
}

// AddArgument registers a. Every check runs before the graph is touched, so
// a failed call leaves the graph unchanged. Statement references are
// resolved by ID and replaced with the graph's canonical objects.
func (g *ArgumentGraph) AddArgument(a *Argument) error {
	if a == nil {
		return fmt.Errorf("%w: nil argument", ErrInvalidArgument)
	}
	if err := a.validate(); err != nil {
		return err
	}
	if _, exists := g.arguments[a.ID]; exists {
		return &DuplicateArgumentError{ID: a.ID}
	}

	context := fmt.Sprintf("argument %q", a.ID)
	conclusion, ok := g.statements[a.Conclusion.ID()]
	if !ok {
		return &UnknownStatementError{ID: a.Conclusion.ID(), Context: context}
	}
	premises := make([]Premise, len(a.Premises))
	for i, p := range a.Premises {
		s, ok := g.statements[p.Statement.ID()]
		if !ok {
			return &UnknownStatementError{ID: p.Statement.ID(), Context: context}
		}
		premises[i] = Premise{Statement: s, Exception: p.Exception}
	}

	stored := &Argument{
		ID:         a.ID,
		Premises:   premises,
		Conclusion: conclusion,
		Direction:  a.Direction,
		Weight:     a.Weight,
	}
	g.arguments[stored.ID] = stored
	g.order = append(g.order, stored)

	supported := stored.Supports().ID()
	g.supports[supported] = append(g.supports[supported], stored)

	seen := make(map[string]bool, len(premises))
	for _, p := range premises {
		atom := p.Statement.Atom()
		if seen[atom] {
			continue
		}
		seen[atom] = true
		g.dependents[atom] = append(g.dependents[atom], stored)
	}
	return nil
}

// Argument looks up an argument by identifier.
func (g *ArgumentGraph) Argument(id string) (*Argument, error) {
	a, ok := g.arguments[id]
	if !ok {
		return nil, &UnknownArgumentError{ID: id}
	}
	return a, nil
}

// Arguments returns every argument in insertion order.
func (g *ArgumentGraph) Arguments() []*Argument {
	out := make([]*Argument, len(g.order))
	copy(out, g.order)
	return out
}

// ArgumentsFor returns, in insertion order, the arguments supporting s.
func (g *ArgumentGraph) ArgumentsFor(s *Statement) []*Argument {
	return g.supports[s.ID()]
}

// ArgumentsAgainst returns, in insertion order, the arguments attacking s.
func (g *ArgumentGraph) ArgumentsAgainst(s *Statement) []*Argument {
	return g.supports[s.Negation().ID()]
}

// Dependents returns the arguments that use s, in either polarity, as a premise.
func (g *ArgumentGraph) Dependents(s *Statement) []*Argument {
	return g.dependents[s.Atom()]
}

// Visiting is the set of statements on the current evaluation stack. A
// statement and its negation are the same issue and are tracked together.
type Visiting map[string]struct{}

func (v Visiting) Enter(s *Statement) {
	v[s.ID()] = struct{}{}
	v[s.Negation().ID()] = struct{}{}
}

func (v Visiting) Leave(s *Statement) {
	delete(v, s.ID())
	delete(v, s.Negation().ID())
}

// HasCycleThrough reports whether evaluating s now would re-enter an issue
// that is already being evaluated further up the stack.
func (g *ArgumentGraph) HasCycleThrough(s *Statement, visiting Visiting) bool {
	_, ok := visiting[s.ID()]
	return ok
}
