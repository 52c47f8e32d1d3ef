package domain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// WeightedArgument is an applicable argument annotated with the weight the
// audience assigns to it.
type WeightedArgument struct {
	ID       string    `json:"id"`
	Weight   float64   `json:"weight"`
	Argument *Argument `json:"-"`
}

// ProofStandard decides whether a statement is acceptable from its
// applicable pro and con arguments. Implementations hold no mutable state.
type ProofStandard interface {
	Name() string
	Decide(pro, con []WeightedArgument) bool
}

const (
	StandardScintilla             = "scintilla"
	StandardBestArgument          = "best_argument"
	StandardDialecticalValidity   = "dialectical_validity"
	StandardPreponderance         = "preponderance"
	StandardClearAndConvincing    = "clear_and_convincing"
	StandardBeyondReasonableDoubt = "beyond_reasonable_doubt"
)

// Thresholds calibrates the two threshold-based standards.
type Thresholds struct {
	ClearAndConvincingAlpha float64 `json:"clear_and_convincing_alpha"`
	ClearAndConvincingBeta  float64 `json:"clear_and_convincing_beta"`
	ReasonableDoubtAlpha    float64 `json:"beyond_reasonable_doubt_alpha"`
	ReasonableDoubtBeta     float64 `json:"beyond_reasonable_doubt_beta"`
	ReasonableDoubtGamma    float64 `json:"beyond_reasonable_doubt_gamma"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ClearAndConvincingAlpha: 0.5,
		ClearAndConvincingBeta:  0.3,
		ReasonableDoubtAlpha:    0.7,
		ReasonableDoubtBeta:     0.5,
		ReasonableDoubtGamma:    0.2,
	}
}

// Scintilla accepts on any applicable pro argument.
type Scintilla struct{}

func (Scintilla) Name() string { return StandardScintilla }

func (Scintilla) Decide(pro, _ []WeightedArgument) bool {
	return len(pro) > 0
}

// BestArgument accepts when the strongest pro argument outweighs the
// strongest con argument. Ties reject.
type BestArgument struct{}

func (BestArgument) Name() string { return StandardBestArgument }

func (BestArgument) Decide(pro, con []WeightedArgument) bool {
	if len(pro) == 0 {
		return false
	}
	if len(con) == 0 {
		return true
	}
	return maxWeight(pro) > maxWeight(con)
}

// DialecticalValidity accepts when something speaks for the statement and
// nothing speaks against it.
type DialecticalValidity struct{}

func (DialecticalValidity) Name() string { return StandardDialecticalValidity }

func (DialecticalValidity) Decide(pro, con []WeightedArgument) bool {
	return len(pro) > 0 && len(con) == 0
}

// Preponderance accepts when the summed pro weight exceeds the summed con weight.
type Preponderance struct{}

func (Preponderance) Name() string { return StandardPreponderance }

func (Preponderance) Decide(pro, con []WeightedArgument) bool {
	return sumWeight(pro) > sumWeight(con)
}

// ClearAndConvincing is preponderance plus a minimum strength for the best
// pro argument (Alpha) and a minimum margin over the best con argument (Beta).
type ClearAndConvincing struct {
	Alpha float64
	Beta  float64
}

func (ClearAndConvincing) Name() string { return StandardClearAndConvincing }

func (c ClearAndConvincing) Decide(pro, con []WeightedArgument) bool {
	if !(Preponderance{}).Decide(pro, con) {
		return false
	}
	best := maxWeight(pro)
	return best > c.Alpha && best-maxWeight(con) > c.Beta
}

// BeyondReasonableDoubt is ClearAndConvincing with its own thresholds and
// an upper bound (Gamma) on the strongest con argument.
type BeyondReasonableDoubt struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

func (BeyondReasonableDoubt) Name() string { return StandardBeyondReasonableDoubt }

func (b BeyondReasonableDoubt) Decide(pro, con []WeightedArgument) bool {
	if !(ClearAndConvincing{Alpha: b.Alpha, Beta: b.Beta}).Decide(pro, con) {
		return false
	}
	return maxWeight(con) < b.Gamma
}

// StandardFunc adapts a decision function into a named ProofStandard.
func StandardFunc(name string, decide func(pro, con []WeightedArgument) bool) ProofStandard {
	return funcStandard{name: name, decide: decide}
}

type funcStandard struct {
	name   string
	decide func(pro, con []WeightedArgument) bool
}

func (f funcStandard) Name() string                            { return f.name }
func (f funcStandard) Decide(pro, con []WeightedArgument) bool { return f.decide(pro, con) }

func weights(args []WeightedArgument) []float64 {
	w := make([]float64, len(args))
	for i, a := range args {
		w[i] = a.Weight
	}
	return w
}

// maxWeight is 0 for an empty set, the weakest possible weight.
func maxWeight(args []WeightedArgument) float64 {
	if len(args) == 0 {
		return 0
	}
	return floats.Max(weights(args))
}

func sumWeight(args []WeightedArgument) float64 {
	return floats.Sum(weights(args))
}

// StandardRegistry resolves proof standards by name. It is populated at
// startup and read concurrently afterwards.
type StandardRegistry struct {
	standards  map[string]ProofStandard
	names      []string
	thresholds Thresholds
	fallback   ProofStandard
}

// NewStandardRegistry returns a registry holding the built-in standards
// calibrated with th.
func NewStandardRegistry(th Thresholds) *StandardRegistry {
	r := &StandardRegistry{
		standards:  make(map[string]ProofStandard),
		thresholds: th,
		fallback:   Scintilla{},
	}
	for _, std := range []ProofStandard{
		Scintilla{},
		BestArgument{},
		DialecticalValidity{},
		Preponderance{},
		ClearAndConvincing{Alpha: th.ClearAndConvincingAlpha, Beta: th.ClearAndConvincingBeta},
		BeyondReasonableDoubt{Alpha: th.ReasonableDoubtAlpha, Beta: th.ReasonableDoubtBeta, Gamma: th.ReasonableDoubtGamma},
	} {
		_ = r.Register(std)
	}
	return r
}

func (r *StandardRegistry) Register(std ProofStandard) error {
	name := std.Name()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownProofStandard)
	}
	if _, exists := r.standards[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProofStandard, name)
	}
	r.standards[name] = std
	r.names = append(r.names, name)
	return nil
}

func (r *StandardRegistry) Lookup(name string) (ProofStandard, error) {
	std, ok := r.standards[name]
	if !ok {
		return nil, &UnknownProofStandardError{Name: name}
	}
	return std, nil
}

// Names lists the registered standards in registration order.
func (r *StandardRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *StandardRegistry) Thresholds() Thresholds { return r.thresholds }

// SetDefault makes the named standard the one audiences fall back to when
// they name no default of their own.
func (r *StandardRegistry) SetDefault(name string) error {
	std, err := r.Lookup(name)
	if err != nil {
		return err
	}
	r.fallback = std
	return nil
}

func (r *StandardRegistry) Default() ProofStandard { return r.fallback }
