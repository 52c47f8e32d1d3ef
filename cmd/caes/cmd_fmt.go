package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Harshitk-cp/caes/internal/format"
	"github.com/spf13/cobra"
)

type fmtFlags struct {
	file   string
	to     string
	output string
}

func newFmtCmd(c *cli) *cobra.Command {
	var flags fmtFlags
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Validate a document and rewrite it in canonical form",
		Long: "fmt builds the graph and its audiences, then writes the document back\n" +
			"with defaults made explicit. --to converts between YAML and JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, g, err := c.load(flags.file)
			if err != nil {
				return err
			}
			for i := range doc.Audiences {
				if _, _, err := c.audience(doc, g, doc.Audiences[i].Name); err != nil {
					return err
				}
			}

			ext := flags.to
			if ext == "" && flags.output != "" {
				ext = filepath.Ext(flags.output)
			}
			if ext == "" {
				ext = filepath.Ext(flags.file)
			}
			canonical := format.FromGraph(doc.Name, g, doc.Audiences...)
			data, err := format.Marshal(canonical, ext)
			if err != nil {
				return err
			}
			if flags.output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(flags.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", flags.output, err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.file, "file", "f", "", "Argument document (YAML or JSON, required)")
	f.StringVar(&flags.to, "to", "", "Output format: yaml or json (default: from -o or input)")
	f.StringVarP(&flags.output, "output", "o", "", "Output path (default: stdout)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
