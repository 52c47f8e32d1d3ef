package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateArgument       = errors.New("duplicate argument")
	ErrUnknownStatement        = errors.New("unknown statement")
	ErrUnknownArgument         = errors.New("unknown argument")
	ErrUnknownProofStandard    = errors.New("unknown proof standard")
	ErrDuplicateProofStandard  = errors.New("proof standard already registered")
	ErrInvalidStatement        = errors.New("invalid statement")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrInvalidWeight           = errors.New("weight must be within [0, 1]")
	ErrInconsistentAssumptions = errors.New("audience assumes a statement and its negation")
)

// DuplicateArgumentError is returned when an argument identifier is already
// registered in a graph.
type DuplicateArgumentError struct {
	ID string
}

func (e *DuplicateArgumentError) Error() string {
	return fmt.Sprintf("argument %q already exists", e.ID)
}

func (e *DuplicateArgumentError) Is(target error) bool { return target == ErrDuplicateArgument }

// UnknownStatementError reports a reference to a statement that is not part
// of the graph. Context names the referencing object, if any.
type UnknownStatementError struct {
	ID      string
	Context string
}

func (e *UnknownStatementError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("unknown statement %q", e.ID)
	}
	return fmt.Sprintf("unknown statement %q referenced by %s", e.ID, e.Context)
}

func (e *UnknownStatementError) Is(target error) bool { return target == ErrUnknownStatement }

type UnknownArgumentError struct {
	ID      string
	Context string
}

func (e *UnknownArgumentError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("unknown argument %q", e.ID)
	}
	return fmt.Sprintf("unknown argument %q referenced by %s", e.ID, e.Context)
}

func (e *UnknownArgumentError) Is(target error) bool { return target == ErrUnknownArgument }

type UnknownProofStandardError struct {
	Name string
}

func (e *UnknownProofStandardError) Error() string {
	return fmt.Sprintf("%q is not a valid proof standard", e.Name)
}

func (e *UnknownProofStandardError) Is(target error) bool { return target == ErrUnknownProofStandard }

type InvalidStatementError struct {
	ID     string
	Reason string
}

func (e *InvalidStatementError) Error() string {
	return fmt.Sprintf("invalid statement %q: %s", e.ID, e.Reason)
}

func (e *InvalidStatementError) Is(target error) bool { return target == ErrInvalidStatement }

type InvalidWeightError struct {
	Argument string
	Weight   float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("argument %q: weight %v must be within [0, 1]", e.Argument, e.Weight)
}

func (e *InvalidWeightError) Is(target error) bool { return target == ErrInvalidWeight }

type InconsistentAssumptionsError struct {
	Atom string
}

func (e *InconsistentAssumptionsError) Error() string {
	return fmt.Sprintf("audience assumes both %q and %q", e.Atom, negationPrefix+e.Atom)
}

func (e *InconsistentAssumptionsError) Is(target error) bool {
	return target == ErrInconsistentAssumptions
}
