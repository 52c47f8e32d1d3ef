package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAudience_Defaults(t *testing.T) {
	aud, err := NewAudience()
	if err != nil {
		t.Fatal(err)
	}
	g := NewArgumentGraph()
	a := g.MustAddStatement("a")
	if aud.IsAssumed(a) {
		t.Error("empty audience assumes nothing")
	}
	if aud.StandardFor(a).Name() != StandardScintilla {
		t.Errorf("default standard = %s", aud.StandardFor(a).Name())
	}
	arg := NewArgument("x", a, WithWeight(0.4))
	if aud.WeightOf(arg) != 0.4 {
		t.Errorf("WeightOf = %v, want argument weight 0.4", aud.WeightOf(arg))
	}
	if aud.WeightOf(NewArgument("y", a)) != DefaultWeight {
		t.Error("unweighted argument should weigh 1.0")
	}
}

func TestNewAudience_Options(t *testing.T) {
	g := NewArgumentGraph()
	a, b := g.MustAddStatement("a"), g.MustAddStatement("b")

	aud, err := NewAudience(
		Assume(a),
		AssumeIDs("-b"),
		WithArgumentWeight("x", 0.25),
		WithStandard("a", Preponderance{}),
		WithDefaultStandard(BestArgument{}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !aud.IsAssumed(a) || !aud.IsAssumed(b.Negation()) || aud.IsAssumed(b) {
		t.Error("assumptions are wrong")
	}
	if got := aud.WeightOf(NewArgument("x", a, WithWeight(0.9))); got != 0.25 {
		t.Errorf("WeightOf(x) = %v, want override 0.25", got)
	}
	if aud.StandardFor(a).Name() != StandardPreponderance {
		t.Error("a should use preponderance")
	}
	if aud.StandardFor(a.Negation()).Name() != StandardPreponderance {
		t.Error("-a should inherit the standard of its issue")
	}
	if aud.StandardFor(b).Name() != StandardBestArgument {
		t.Error("b should use the default standard")
	}
	if diff := cmp.Diff([]string{"-b", "a"}, aud.Assumptions()); diff != "" {
		t.Errorf("Assumptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewAudience_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []AudienceOption
		want error
	}{
		{"inconsistent", []AudienceOption{AssumeIDs("a", "-a")}, ErrInconsistentAssumptions},
		{"malformed assumption", []AudienceOption{AssumeIDs("--a")}, ErrInvalidStatement},
		{"weight out of range", []AudienceOption{WithArgumentWeight("x", 2)}, ErrInvalidWeight},
		{"nil standard", []AudienceOption{WithStandard("a", nil)}, ErrUnknownProofStandard},
		{"nil default", []AudienceOption{WithDefaultStandard(nil)}, ErrUnknownProofStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAudience(tt.opts...); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAudience_Validate(t *testing.T) {
	g := NewArgumentGraph()
	a := g.MustAddStatement("a")
	mustAdd(t, g, NewArgument("arg1", a))

	ok, _ := NewAudience(AssumeIDs("-a"), WithStandard("a", Scintilla{}), WithArgumentWeight("arg1", 0.5))
	if err := ok.Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		name string
		opts []AudienceOption
		want error
	}{
		{"unknown assumption", []AudienceOption{AssumeIDs("ghost")}, ErrUnknownStatement},
		{"unknown standard target", []AudienceOption{WithStandard("ghost", Scintilla{})}, ErrUnknownStatement},
		{"unknown weighted argument", []AudienceOption{WithArgumentWeight("arg9", 0.5)}, ErrUnknownArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// building never consults a graph
			aud, err := NewAudience(tt.opts...)
			if err != nil {
				t.Fatalf("NewAudience: %v", err)
			}
			if err := aud.Validate(g); !errors.Is(err, tt.want) {
				t.Errorf("Validate error = %v, want %v", err, tt.want)
			}
		})
	}
}
