package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Harshitk-cp/caes/internal/buildconfig"
	"github.com/Harshitk-cp/caes/internal/config"
	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/format"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries state shared by subcommands of one invocation.
type cli struct {
	verbose  bool
	logger   *zap.Logger
	registry *domain.StandardRegistry
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "caes",
		Short: "Evaluate Carneades argument graphs",
		Long: "caes loads argument documents (YAML or JSON), evaluates statements\n" +
			"for an audience under configurable proof standards, and reports cycles.",
		Version:       buildconfig.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log evaluation steps to stderr")

	root.AddCommand(newEvalCmd(c))
	root.AddCommand(newLabelCmd(c))
	root.AddCommand(newCyclesCmd(c))
	root.AddCommand(newFmtCmd(c))
	root.AddCommand(newStandardsCmd(c))
	return root
}

func (c *cli) setup() error {
	if err := config.Load(); err != nil {
		return err
	}
	if c.verbose {
		logger, err := config.NewLogger("debug", true)
		if err != nil {
			return err
		}
		c.logger = logger
	}
	registry, err := config.StandardRegistry()
	if err != nil {
		return err
	}
	c.registry = registry
	return nil
}

// load reads a document and builds its graph.
func (c *cli) load(path string) (*format.Document, *domain.ArgumentGraph, error) {
	doc, err := format.LoadFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := doc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	c.logger.Debug("document loaded",
		zap.String("path", path),
		zap.Int("statements", len(g.Statements())),
		zap.Int("arguments", len(g.Arguments())),
		zap.Int("audiences", len(doc.Audiences)),
	)
	return doc, g, nil
}

// audience resolves the named audience of doc against the registry and
// checks its references into g.
func (c *cli) audience(doc *format.Document, g *domain.ArgumentGraph, name string) (*domain.Audience, string, error) {
	def, err := doc.Audience(name)
	if err != nil {
		return nil, "", err
	}
	aud, err := def.Build(c.registry)
	if err != nil {
		return nil, "", fmt.Errorf("audience %q: %w", def.Name, err)
	}
	if err := aud.Validate(g); err != nil {
		return nil, "", fmt.Errorf("audience %q: %w", def.Name, err)
	}
	return aud, def.Name, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
