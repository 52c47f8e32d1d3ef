package service

import (
	"context"

	"github.com/Harshitk-cp/caes/internal/domain"
	"go.uber.org/zap"
)

// Evaluation is the outcome for one statement, together with the applicable
// arguments the proof standard was given.
type Evaluation struct {
	Statement       string                    `json:"statement"`
	Accepted        bool                      `json:"accepted"`
	Assumed         bool                      `json:"assumed,omitempty"`
	NegationAssumed bool                      `json:"negation_assumed,omitempty"`
	Standard        string                    `json:"standard"`
	Pro             []domain.WeightedArgument `json:"pro"`
	Con             []domain.WeightedArgument `json:"con"`
}

type Label string

const (
	LabelIn        Label = "in"
	LabelOut       Label = "out"
	LabelUndecided Label = "undecided"
)

// StatementLabel labels an issue: in when the atom is acceptable, out when
// its negation is, undecided otherwise.
type StatementLabel struct {
	Atom  string `json:"atom"`
	Label Label  `json:"label"`
}

// Evaluator computes acceptability over a fixed graph. It keeps no state
// between calls and may be used from several goroutines at once. The graph
// must not change after the Evaluator is created.
type Evaluator struct {
	graph  *domain.ArgumentGraph
	logger *zap.Logger
	// acyclic holds the atoms whose results may be reused within one call.
	acyclic map[string]bool
}

func NewEvaluator(graph *domain.ArgumentGraph, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{graph: graph, logger: logger, acyclic: graph.AcyclicIssues()}
}

// Acceptable reports whether s is acceptable to audience.
func (e *Evaluator) Acceptable(ctx context.Context, s *domain.Statement, audience *domain.Audience) (bool, error) {
	ev, err := e.Evaluate(ctx, s, audience)
	if err != nil {
		return false, err
	}
	return ev.Accepted, nil
}

// Evaluate decides s for audience and reports the applicable arguments used.
// It stops with ctx.Err() once ctx is done.
func (e *Evaluator) Evaluate(ctx context.Context, s *domain.Statement, audience *domain.Audience) (*Evaluation, error) {
	target, err := e.graph.Statement(s.ID())
	if err != nil {
		return nil, err
	}
	if err := audience.Validate(e.graph); err != nil {
		return nil, err
	}
	return e.evaluate(ctx, target, audience)
}

// EvaluateID is Evaluate for a statement identifier.
func (e *Evaluator) EvaluateID(ctx context.Context, id string, audience *domain.Audience) (*Evaluation, error) {
	s, err := e.graph.Statement(id)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, s, audience)
}

// Label evaluates every issue of the graph in insertion order.
func (e *Evaluator) Label(ctx context.Context, audience *domain.Audience) ([]StatementLabel, error) {
	if err := audience.Validate(e.graph); err != nil {
		return nil, err
	}
	stmts := e.graph.Statements()
	labels := make([]StatementLabel, 0, len(stmts))
	for _, s := range stmts {
		in, err := e.evaluate(ctx, s, audience)
		if err != nil {
			return nil, err
		}
		label := LabelUndecided
		if in.Accepted {
			label = LabelIn
		} else {
			out, err := e.evaluate(ctx, s.Negation(), audience)
			if err != nil {
				return nil, err
			}
			if out.Accepted {
				label = LabelOut
			}
		}
		labels = append(labels, StatementLabel{Atom: s.Atom(), Label: label})
	}
	return labels, nil
}

func (e *Evaluator) evaluate(ctx context.Context, s *domain.Statement, audience *domain.Audience) (*Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	run := &evaluation{
		ctx:      ctx,
		graph:    e.graph,
		audience: audience,
		visiting: domain.Visiting{},
		acyclic:  e.acyclic,
		memo:     make(map[string]bool),
	}
	ev := &Evaluation{
		Statement: s.ID(),
		Standard:  audience.StandardFor(s).Name(),
		Pro:       []domain.WeightedArgument{},
		Con:       []domain.WeightedArgument{},
	}
	switch {
	case audience.IsAssumed(s):
		ev.Accepted, ev.Assumed = true, true
	case audience.IsAssumed(s.Negation()):
		ev.NegationAssumed = true
	default:
		accepted, pro, con, err := run.weigh(s)
		if err != nil {
			return nil, err
		}
		ev.Accepted, ev.Pro, ev.Con = accepted, pro, con
	}
	e.logger.Debug("statement evaluated",
		zap.String("statement", ev.Statement),
		zap.Bool("accepted", ev.Accepted),
		zap.String("standard", ev.Standard),
		zap.Int("pro", len(ev.Pro)),
		zap.Int("con", len(ev.Con)),
		zap.Int("cycle_cuts", run.cycleCuts),
		zap.Int("memoized", len(run.memo)),
	)
	return ev, nil
}

// evaluation carries the state of one top-level request. visiting and memo
// are never shared between requests. memo only holds statements of acyclic
// issues, whose results are the same on every path.
type evaluation struct {
	ctx       context.Context
	graph     *domain.ArgumentGraph
	audience  *domain.Audience
	visiting  domain.Visiting
	acyclic   map[string]bool
	memo      map[string]bool
	cycleCuts int
}

func (r *evaluation) acceptable(s *domain.Statement) (bool, error) {
	if err := r.ctx.Err(); err != nil {
		return false, err
	}
	if r.graph.HasCycleThrough(s, r.visiting) {
		r.cycleCuts++
		return false, nil
	}
	if r.audience.IsAssumed(s) {
		return true, nil
	}
	if r.audience.IsAssumed(s.Negation()) {
		return false, nil
	}
	reuse := r.acyclic[s.Atom()]
	if reuse {
		if accepted, ok := r.memo[s.ID()]; ok {
			return accepted, nil
		}
	}
	accepted, _, _, err := r.weigh(s)
	if err != nil {
		return false, err
	}
	if reuse {
		r.memo[s.ID()] = accepted
	}
	return accepted, nil
}

// weigh collects the applicable arguments for and against s and lets the
// proof standards decide. s is accepted only when its own standard accepts
// it and the standard of its negation, given the mirrored sets, does not
// accept the negation.
func (r *evaluation) weigh(s *domain.Statement) (bool, []domain.WeightedArgument, []domain.WeightedArgument, error) {
	r.visiting.Enter(s)
	defer r.visiting.Leave(s)

	pro, err := r.applicableSet(r.graph.ArgumentsFor(s))
	if err != nil {
		return false, nil, nil, err
	}
	con, err := r.applicableSet(r.graph.ArgumentsAgainst(s))
	if err != nil {
		return false, nil, nil, err
	}

	accepted := r.audience.StandardFor(s).Decide(pro, con) &&
		!r.audience.StandardFor(s.Negation()).Decide(con, pro)
	return accepted, pro, con, nil
}

func (r *evaluation) applicableSet(args []*domain.Argument) ([]domain.WeightedArgument, error) {
	out := []domain.WeightedArgument{}
	for _, a := range args {
		ok, err := r.applicable(a)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, domain.WeightedArgument{ID: a.ID, Weight: r.audience.WeightOf(a), Argument: a})
		}
	}
	return out, nil
}

// applicable holds when every ordinary premise is acceptable and no
// exception premise is.
func (r *evaluation) applicable(a *domain.Argument) (bool, error) {
	for _, p := range a.Premises {
		s, err := r.graph.Statement(p.Statement.ID())
		if err != nil {
			return false, &domain.UnknownStatementError{ID: p.Statement.ID(), Context: "argument " + a.ID}
		}
		ok, err := r.acceptable(s)
		if err != nil {
			return false, err
		}
		if ok == p.Exception {
			return false, nil
		}
	}
	return true, nil
}
