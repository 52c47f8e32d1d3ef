package domain

import (
	"encoding/json"
	"strings"
)

const negationPrefix = "-"

// Statement is a proposition literal: an atom with a polarity. A statement is
// always created together with its complement so negation never allocates.
type Statement struct {
	atom     string
	positive bool
	negation *Statement
}

// NewStatement returns the positive literal for atom. The negative literal is
// reachable through Negation.
func NewStatement(atom string) (*Statement, error) {
	if reason := atomProblem(atom); reason != "" {
		return nil, &InvalidStatementError{ID: atom, Reason: reason}
	}
	return newStatementPair(atom), nil
}

func newStatementPair(atom string) *Statement {
	pos := &Statement{atom: atom, positive: true}
	neg := &Statement{atom: atom, positive: false}
	pos.negation = neg
	neg.negation = pos
	return pos
}

// ID is the atom for positive literals and "-atom" for negative ones.
func (s *Statement) ID() string {
	if s.positive {
		return s.atom
	}
	return negationPrefix + s.atom
}

func (s *Statement) Atom() string   { return s.atom }
func (s *Statement) Positive() bool { return s.positive }

// Negation returns the complementary literal. Negating twice yields s itself.
func (s *Statement) Negation() *Statement {
	return s.negation
}

// Equal compares by identifier.
func (s *Statement) Equal(other *Statement) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID() == other.ID()
}

func (s *Statement) String() string {
	return s.ID()
}

func (s *Statement) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ID())
}

func (s *Statement) MarshalYAML() (any, error) {
	return s.ID(), nil
}

// ParseStatementID splits a statement identifier into its atom and polarity.
func ParseStatementID(id string) (atom string, positive bool, err error) {
	atom, positive = id, true
	if strings.HasPrefix(id, negationPrefix) {
		atom, positive = strings.TrimPrefix(id, negationPrefix), false
	}
	if reason := atomProblem(atom); reason != "" {
		return "", false, &InvalidStatementError{ID: id, Reason: reason}
	}
	return atom, positive, nil
}

// NegateID flips the polarity of a statement identifier without a graph.
func NegateID(id string) string {
	if strings.HasPrefix(id, negationPrefix) {
		return strings.TrimPrefix(id, negationPrefix)
	}
	return negationPrefix + id
}

func atomProblem(atom string) string {
	switch {
	case atom == "":
		return "empty atom"
	case strings.HasPrefix(atom, negationPrefix):
		return "atom must not start with " + negationPrefix
	case strings.ContainsAny(atom, " \t\r\n"):
		return "atom must not contain whitespace"
	}
	return ""
}
