package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Harshitk-cp/caes/internal/service"
	"github.com/spf13/cobra"
)

type labelFlags struct {
	file     string
	audience string
	json     bool
}

func newLabelCmd(c *cli) *cobra.Command {
	var flags labelFlags
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Label every issue in, out or undecided",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runLabel(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "Argument document (YAML or JSON, required)")
	f.StringVarP(&flags.audience, "audience", "a", "", "Audience name (default: first audience)")
	f.BoolVar(&flags.json, "json", false, "Print JSON instead of a table")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) runLabel(ctx context.Context, out io.Writer, flags labelFlags) error {
	doc, g, err := c.load(flags.file)
	if err != nil {
		return err
	}
	aud, name, err := c.audience(doc, g, flags.audience)
	if err != nil {
		return err
	}
	labels, err := service.NewEvaluator(g, c.logger).Label(ctx, aud)
	if err != nil {
		return err
	}

	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(service.LabelReport{Audience: name, Labels: labels})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "STATEMENT\tLABEL\n")
	for _, l := range labels {
		fmt.Fprintf(tw, "%s\t%s\n", l.Atom, l.Label)
	}
	return tw.Flush()
}
