package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func argumentIDs(args []*Argument) []string {
	ids := make([]string, len(args))
	for i, a := range args {
		ids[i] = a.ID
	}
	return ids
}

func TestAddStatement_Interns(t *testing.T) {
	g := NewArgumentGraph()
	neg := g.MustAddStatement("-a")
	pos := g.MustAddStatement("a")

	if neg.Negation() != pos {
		t.Fatal("adding both polarities should yield one pair")
	}
	again, err := g.AddStatement("a")
	if err != nil || again != pos {
		t.Fatalf("re-adding returned %p, %v; want %p", again, err, pos)
	}
	if diff := cmp.Diff([]string{"a"}, statementIDs(g.Statements())); diff != "" {
		t.Errorf("Statements() mismatch (-want +got):\n%s", diff)
	}
	if !g.HasStatement("-a") || g.HasStatement("b") {
		t.Error("HasStatement is wrong")
	}
}

func statementIDs(stmts []*Statement) []string {
	ids := make([]string, len(stmts))
	for i, s := range stmts {
		ids[i] = s.ID()
	}
	return ids
}

func TestAddArgument_Duplicate(t *testing.T) {
	g := NewArgumentGraph()
	a := g.MustAddStatement("a")
	if err := g.AddArgument(NewArgument("arg1", a)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := g.AddArgument(NewArgument("arg1", a, WithWeight(0.2)))
	var dup *DuplicateArgumentError
	if !errors.As(err, &dup) || dup.ID != "arg1" {
		t.Fatalf("got %v, want DuplicateArgumentError for arg1", err)
	}
	if !errors.Is(err, ErrDuplicateArgument) {
		t.Error("error should match ErrDuplicateArgument")
	}
	if len(g.Arguments()) != 1 {
		t.Errorf("graph has %d arguments, want 1", len(g.Arguments()))
	}
}

func TestAddArgument_UnknownStatementLeavesGraphUnchanged(t *testing.T) {
	g := NewArgumentGraph()
	a := g.MustAddStatement("a")
	stranger, _ := NewStatement("b")

	err := g.AddArgument(NewArgument("arg1", a, WithPremises(stranger)))
	var unknown *UnknownStatementError
	if !errors.As(err, &unknown) || unknown.ID != "b" {
		t.Fatalf("got %v, want UnknownStatementError for b", err)
	}
	if len(g.Arguments()) != 0 || len(g.ArgumentsFor(a)) != 0 {
		t.Error("failed AddArgument must not register anything")
	}
	if _, err := g.Argument("arg1"); !errors.Is(err, ErrUnknownArgument) {
		t.Errorf("Argument(arg1) error = %v, want ErrUnknownArgument", err)
	}

	// the identifier is still free after the failure
	if err := g.AddArgument(NewArgument("arg1", a)); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestAddArgument_Invalid(t *testing.T) {
	g := NewArgumentGraph()
	a := g.MustAddStatement("a")
	tests := []struct {
		name string
		arg  *Argument
		want error
	}{
		{"nil", nil, ErrInvalidArgument},
		{"empty id", NewArgument("", a), ErrInvalidArgument},
		{"no conclusion", NewArgument("x", nil), ErrInvalidArgument},
		{"weight above one", NewArgument("x", a, WithWeight(1.5)), ErrInvalidWeight},
		{"negative weight", NewArgument("x", a, WithWeight(-0.1)), ErrInvalidWeight},
		{"bad direction", &Argument{ID: "x", Conclusion: a, Direction: "sideways", Weight: 1}, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddArgument(tt.arg); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddArgument_CanonicalStatements(t *testing.T) {
	g := NewArgumentGraph()
	g.MustAddStatement("a")
	g.MustAddStatement("b")

	// statements built outside the graph are replaced by the graph's own
	outsideA, _ := NewStatement("a")
	outsideB, _ := NewStatement("b")
	if err := g.AddArgument(NewArgument("arg1", outsideA, WithPremises(outsideB))); err != nil {
		t.Fatal(err)
	}
	arg, _ := g.Argument("arg1")
	inA, _ := g.Statement("a")
	inB, _ := g.Statement("b")
	if arg.Conclusion != inA || arg.Premises[0].Statement != inB {
		t.Error("stored argument should reference canonical statements")
	}
}

func TestArgumentsForAndAgainst(t *testing.T) {
	g := NewArgumentGraph()
	a := g.MustAddStatement("a")
	p := g.MustAddStatement("p")

	mustAdd(t, g, NewArgument("pro1", a, WithPremises(p)))
	mustAdd(t, g, NewArgument("con1", a, Against()))
	mustAdd(t, g, NewArgument("negpro", a.Negation()))
	mustAdd(t, g, NewArgument("pro2", a, WithWeight(0.4)))
	mustAdd(t, g, NewArgument("negcon", a.Negation(), Against()))

	if diff := cmp.Diff([]string{"pro1", "pro2", "negcon"}, argumentIDs(g.ArgumentsFor(a))); diff != "" {
		t.Errorf("ArgumentsFor(a) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"con1", "negpro"}, argumentIDs(g.ArgumentsAgainst(a))); diff != "" {
		t.Errorf("ArgumentsAgainst(a) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(argumentIDs(g.ArgumentsAgainst(a)), argumentIDs(g.ArgumentsFor(a.Negation()))); diff != "" {
		t.Errorf("against a should equal for -a (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pro1"}, argumentIDs(g.Dependents(p.Negation()))); diff != "" {
		t.Errorf("Dependents(-p) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pro1", "con1", "negpro", "pro2", "negcon"}, argumentIDs(g.Arguments())); diff != "" {
		t.Errorf("Arguments() mismatch (-want +got):\n%s", diff)
	}
}

func TestVisiting(t *testing.T) {
	g := NewArgumentGraph()
	a := g.MustAddStatement("a")
	v := Visiting{}

	if g.HasCycleThrough(a, v) {
		t.Fatal("empty set has no cycle")
	}
	v.Enter(a)
	if !g.HasCycleThrough(a, v) || !g.HasCycleThrough(a.Negation(), v) {
		t.Fatal("entering a should guard both a and -a")
	}
	v.Leave(a.Negation())
	if g.HasCycleThrough(a, v) {
		t.Fatal("leaving -a should release a as well")
	}
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *ArgumentGraph)
		want  [][]string
	}{
		{
			name: "acyclic",
			build: func(g *ArgumentGraph) {
				a, b := g.MustAddStatement("a"), g.MustAddStatement("b")
				g.MustAddStatement("c")
				_ = g.AddArgument(NewArgument("1", a, WithPremises(b)))
			},
			want: nil,
		},
		{
			name: "two-cycle",
			build: func(g *ArgumentGraph) {
				a, b := g.MustAddStatement("a"), g.MustAddStatement("b")
				_ = g.AddArgument(NewArgument("1", a, WithPremises(b)))
				_ = g.AddArgument(NewArgument("2", b, WithPremises(a)))
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "self loop through negation",
			build: func(g *ArgumentGraph) {
				a := g.MustAddStatement("a")
				_ = g.AddArgument(NewArgument("1", a.Negation(), WithExceptions(a)))
			},
			want: [][]string{{"a"}},
		},
		{
			name: "three-cycle via con argument",
			build: func(g *ArgumentGraph) {
				a, b, c := g.MustAddStatement("a"), g.MustAddStatement("b"), g.MustAddStatement("c")
				_ = g.AddArgument(NewArgument("1", a, WithPremises(b)))
				_ = g.AddArgument(NewArgument("2", b, Against(), WithPremises(c)))
				_ = g.AddArgument(NewArgument("3", c, WithPremises(a.Negation())))
			},
			want: [][]string{{"a", "b", "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewArgumentGraph()
			tt.build(g)
			if diff := cmp.Diff(tt.want, g.Cycles()); diff != "" {
				t.Errorf("Cycles() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArgumentString(t *testing.T) {
	g := NewArgumentGraph()
	murder, kill, intent, unreliable := g.MustAddStatement("murder"), g.MustAddStatement("kill"), g.MustAddStatement("intent"), g.MustAddStatement("unreliable")

	pro := NewArgument("arg1", murder, WithPremises(kill, intent), WithExceptions(unreliable), WithWeight(0.8))
	if got, want := pro.String(), "[kill, intent], ~[unreliable] => murder, 0.8"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	con := NewArgument("arg2", murder, Against())
	if got, want := con.String(), "[], ~[] => ~murder, 1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func mustAdd(t *testing.T, g *ArgumentGraph, a *Argument) {
	t.Helper()
	if err := g.AddArgument(a); err != nil {
		t.Fatalf("AddArgument(%s): %v", a.ID, err)
	}
}

func TestAcyclicIssues(t *testing.T) {
	g := NewArgumentGraph()
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "liar"} {
		g.MustAddStatement(id)
	}
	st := func(id string) *Statement { return g.MustAddStatement(id) }
	// a depends on the b/c cycle; f depends on a; d depends only on e.
	mustAdd(t, g, NewArgument("1", st("a"), WithPremises(st("b"))))
	mustAdd(t, g, NewArgument("2", st("b"), WithPremises(st("c"))))
	mustAdd(t, g, NewArgument("3", st("-c"), WithExceptions(st("b"))))
	mustAdd(t, g, NewArgument("4", st("f"), Against(), WithPremises(st("-a"))))
	mustAdd(t, g, NewArgument("5", st("d"), WithPremises(st("e"))))
	mustAdd(t, g, NewArgument("6", st("liar"), WithExceptions(st("liar"))))

	want := map[string]bool{"d": true, "e": true}
	if diff := cmp.Diff(want, g.AcyclicIssues()); diff != "" {
		t.Errorf("AcyclicIssues() mismatch (-want +got):\n%s", diff)
	}
}

func TestAcyclicIssues_SharedPremises(t *testing.T) {
	g := NewArgumentGraph()
	// Diamond: top depends on l and r, both depend on bottom.
	top, l, r, bottom := g.MustAddStatement("top"), g.MustAddStatement("l"), g.MustAddStatement("r"), g.MustAddStatement("bottom")
	mustAdd(t, g, NewArgument("1", top, WithPremises(l, r)))
	mustAdd(t, g, NewArgument("2", l, WithPremises(bottom)))
	mustAdd(t, g, NewArgument("3", r, WithExceptions(bottom)))

	got := g.AcyclicIssues()
	for _, atom := range []string{"top", "l", "r", "bottom"} {
		if !got[atom] {
			t.Errorf("AcyclicIssues()[%q] = false, want true", atom)
		}
	}
	if len(g.Cycles()) != 0 {
		t.Errorf("Cycles() = %v, want none", g.Cycles())
	}
}
