package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/spf13/cobra"
)

func newStandardsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List the proof standards and their thresholds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			th := c.registry.Thresholds()
			params := map[string]string{
				domain.StandardClearAndConvincing: fmt.Sprintf("alpha=%g beta=%g",
					th.ClearAndConvincingAlpha, th.ClearAndConvincingBeta),
				domain.StandardBeyondReasonableDoubt: fmt.Sprintf("alpha=%g beta=%g gamma=%g",
					th.ReasonableDoubtAlpha, th.ReasonableDoubtBeta, th.ReasonableDoubtGamma),
			}
			def := c.registry.Default().Name()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "STANDARD\tPARAMETERS\tDEFAULT\n")
			for _, name := range c.registry.Names() {
				p := params[name]
				if p == "" {
					p = "-"
				}
				mark := ""
				if name == def {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, p, mark)
			}
			return tw.Flush()
		},
	}
}
