package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/bpmnlayout/pkg/io"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
)

// layoutCommand creates the layout command for computing render records.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  cacheFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute render records for a BPMN graph",
		Long: `Compute render records for a BPMN graph.

The layout command reads a graph JSON file ({"nodes": [...], "edges": [...]}),
ranks every node by its longest path from a source, places ranks left to right
and scales the result onto the canvas. The output is a JSON array of node and
edge records that a diagram client can draw directly.

Results are cached locally (or in Redis with --redis) for faster reruns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GraphPath = args[0]
			opts.ConfigPath = envDefault(opts.ConfigPath, envConfig)
			return c.runLayout(cmd.Context(), opts, output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.records.json)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "layout config file, .toml or .yaml (env "+envConfig+")")
	cmd.Flags().Float64Var(&opts.Config.Canvas.Width, "width", 0, "canvas width (default 600)")
	cmd.Flags().Float64Var(&opts.Config.Canvas.Height, "height", 0, "canvas height (default 600)")
	cmd.Flags().BoolVar(&opts.Config.Uniform, "uniform", false, "scale both axes by the same factor")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	flags.register(cmd)

	return cmd
}

// runLayout lays out the graph and writes the records.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, flags cacheFlags) error {
	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "-" {
		return pkgio.WriteRecords(result.Records, os.Stdout)
	}
	if output == "" {
		output = defaultOutput(opts.GraphPath, ".records.json")
	}
	if err := pkgio.ExportRecords(result.Records, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.RankCount, result.CacheHit)
	printNewline()
	printNextStep("Preview", appName+" render --pinned "+output)

	return nil
}
