package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/service"
	"github.com/spf13/cobra"
)

type evalFlags struct {
	file     string
	audience string
	targets  []string
	json     bool
}

func newEvalCmd(c *cli) *cobra.Command {
	var flags evalFlags
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Decide statements for an audience",
		Long: "Evaluate target statements of a document for one of its audiences.\n" +
			"Without -t every statement of the graph is evaluated.",
		Example: "  caes eval -f examples/murder.yaml -t murder -t -murder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runEval(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "Argument document (YAML or JSON, required)")
	f.StringVarP(&flags.audience, "audience", "a", "", "Audience name (default: first audience)")
	f.StringSliceVarP(&flags.targets, "target", "t", nil, "Statement to evaluate, e.g. murder or -murder (repeatable)")
	f.BoolVar(&flags.json, "json", false, "Print JSON instead of a table")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) runEval(ctx context.Context, out io.Writer, flags evalFlags) error {
	doc, g, err := c.load(flags.file)
	if err != nil {
		return err
	}
	aud, name, err := c.audience(doc, g, flags.audience)
	if err != nil {
		return err
	}

	targets := flags.targets
	if len(targets) == 0 {
		for _, s := range g.Statements() {
			targets = append(targets, s.ID())
		}
	}

	evaluator := service.NewEvaluator(g, c.logger)
	results := make([]*service.Evaluation, 0, len(targets))
	for _, t := range targets {
		ev, err := evaluator.EvaluateID(ctx, t, aud)
		if err != nil {
			return err
		}
		results = append(results, ev)
	}

	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(service.EvaluationReport{Audience: name, Evaluations: results})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STATEMENT\tACCEPTED\tSTANDARD\tPRO\tCON\n")
	for _, ev := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ev.Statement, acceptedCell(ev), ev.Standard, argumentIDs(ev.Pro), argumentIDs(ev.Con))
	}
	return tw.Flush()
}

func acceptedCell(ev *service.Evaluation) string {
	switch {
	case ev.Assumed:
		return "yes (assumed)"
	case ev.NegationAssumed:
		return "no (negation assumed)"
	case ev.Accepted:
		return "yes"
	}
	return "no"
}

func argumentIDs(args []domain.WeightedArgument) string {
	if len(args) == 0 {
		return "-"
	}
	ids := make([]string, len(args))
	for i, a := range args {
		ids[i] = fmt.Sprintf("%s(%g)", a.ID, a.Weight)
	}
	return strings.Join(ids, ",")
}
