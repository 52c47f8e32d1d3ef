package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCyclesCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "List dependency cycles between statements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, g, err := c.load(file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			cycles := g.Cycles()
			if len(cycles) == 0 {
				fmt.Fprintln(out, "no cycles")
				return nil
			}
			for _, cycle := range cycles {
				fmt.Fprintf(out, "%s -> %s\n", strings.Join(cycle, " -> "), cycle[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Argument document (YAML or JSON, required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
