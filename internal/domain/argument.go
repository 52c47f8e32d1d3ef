package domain

import (
	"fmt"
	"strings"
)

// Direction says whether an argument supports or attacks its conclusion.
type Direction string

const (
	DirectionPro Direction = "pro"
	DirectionCon Direction = "con"
)

func ValidDirection(d string) bool {
	switch Direction(d) {
	case DirectionPro, DirectionCon:
		return true
	}
	return false
}

// DefaultWeight is used for arguments created without an explicit weight.
const DefaultWeight = 1.0

// Premise is a statement used as input to an argument. Exception premises
// must not be acceptable for the argument to apply.
type Premise struct {
	Statement *Statement
	Exception bool
}

func Ordinary(s *Statement) Premise  { return Premise{Statement: s} }
func Exception(s *Statement) Premise { return Premise{Statement: s, Exception: true} }

// Argument is a named inference step from premises to a conclusion.
// Arguments are never modified once added to a graph.
type Argument struct {
	ID         string
	Premises   []Premise
	Conclusion *Statement
	Direction  Direction
	Weight     float64
}

type ArgumentOption func(*Argument)

// WithPremises appends ordinary premises.
func WithPremises(stmts ...*Statement) ArgumentOption {
	return func(a *Argument) {
		for _, s := range stmts {
			a.Premises = append(a.Premises, Ordinary(s))
		}
	}
}

// WithExceptions appends exception premises.
func WithExceptions(stmts ...*Statement) ArgumentOption {
	return func(a *Argument) {
		for _, s := range stmts {
			a.Premises = append(a.Premises, Exception(s))
		}
	}
}

func WithWeight(w float64) ArgumentOption {
	return func(a *Argument) { a.Weight = w }
}

// Against makes the argument a con argument for its conclusion.
func Against() ArgumentOption {
	return func(a *Argument) { a.Direction = DirectionCon }
}

func NewArgument(id string, conclusion *Statement, opts ...ArgumentOption) *Argument {
	a := &Argument{
		ID:         id,
		Conclusion: conclusion,
		Direction:  DirectionPro,
		Weight:     DefaultWeight,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Supports returns the statement this argument argues for: the conclusion
// for pro arguments and its negation for con arguments.
func (a *Argument) Supports() *Statement {
	if a.Direction == DirectionCon {
		return a.Conclusion.Negation()
	}
	return a.Conclusion
}

func (a *Argument) OrdinaryPremises() []*Statement {
	return a.premisesWhere(false)
}

func (a *Argument) ExceptionPremises() []*Statement {
	return a.premisesWhere(true)
}

func (a *Argument) premisesWhere(exception bool) []*Statement {
	var out []*Statement
	for _, p := range a.Premises {
		if p.Exception == exception {
			out = append(out, p.Statement)
		}
	}
	return out
}

func (a *Argument) validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidArgument)
	}
	if a.Conclusion == nil {
		return fmt.Errorf("%w: argument %q has no conclusion", ErrInvalidArgument, a.ID)
	}
	if !ValidDirection(string(a.Direction)) {
		return fmt.Errorf("%w: argument %q has direction %q", ErrInvalidArgument, a.ID, a.Direction)
	}
	if !validWeight(a.Weight) {
		return &InvalidWeightError{Argument: a.ID, Weight: a.Weight}
	}
	for i, p := range a.Premises {
		if p.Statement == nil {
			return fmt.Errorf("%w: argument %q premise %d is nil", ErrInvalidArgument, a.ID, i)
		}
	}
	return nil
}

// String renders the argument in the usual CAES notation:
// "[premises], ~[exceptions] => conclusion, weight".
func (a *Argument) String() string {
	conclusion := a.Conclusion.ID()
	if a.Direction == DirectionCon {
		conclusion = "~" + conclusion
	}
	return fmt.Sprintf("[%s], ~[%s] => %s, %v",
		joinIDs(a.OrdinaryPremises()), joinIDs(a.ExceptionPremises()), conclusion, a.Weight)
}

func joinIDs(stmts []*Statement) string {
	ids := make([]string, len(stmts))
	for i, s := range stmts {
		ids[i] = s.ID()
	}
	return strings.Join(ids, ", ")
}

func validWeight(w float64) bool {
	return w >= 0 && w <= 1
}
