package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/dag"
	pkgio "github.com/matzehuels/bpmnlayout/pkg/io"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var showRanks bool

	cmd := &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Check that a BPMN graph can be laid out",
		Long: `Check that a BPMN graph can be laid out.

The graph must have unique node ids, edges between existing nodes and no
cycles. On success the shape of the process is printed: the number of
ranks (columns), its start and end nodes, and how many nodes split or
join the flow.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], showRanks)
		},
	}

	cmd.Flags().BoolVar(&showRanks, "ranks", false, "list the nodes of every rank")

	return cmd
}

func (c *CLI) runValidate(_ context.Context, input string, showRanks bool) error {
	prog := newProgress(c.Logger)

	g, err := pkgio.ImportGraph(input)
	if err != nil {
		return err
	}
	d, err := layout.RankGraph(g)
	if err != nil {
		return err
	}
	prog.done("validated " + input)

	s := summarize(d)

	printSuccess("Graph is valid")
	printKeyValue("nodes", strconv.Itoa(s.nodes))
	printKeyValue("edges", strconv.Itoa(s.edges))
	printKeyValue("ranks", strconv.Itoa(len(s.ranks)))
	printKeyValue("longest path", strconv.Itoa(s.longestPath))
	printKeyValue("start", strings.Join(s.starts, ", "))
	printKeyValue("end", strings.Join(s.ends, ", "))
	printKeyValue("splits", strconv.Itoa(s.splits))
	printKeyValue("joins", strconv.Itoa(s.joins))

	if showRanks {
		printNewline()
		for r, ids := range s.ranks {
			printKeyValue(fmt.Sprintf("rank %d", r), strings.Join(ids, ", "))
		}
	}
	return nil
}

// graphSummary describes the shape of a ranked process graph. Node ids
// are bpmn ID keys in input order.
type graphSummary struct {
	nodes, edges  int
	longestPath   int
	starts, ends  []string
	splits, joins int
	ranks         [][]string
}

func summarize(d *dag.DAG) graphSummary {
	s := graphSummary{
		nodes:  d.NodeCount(),
		edges:  d.EdgeCount(),
		starts: dag.NodeIDs(d.Sources()),
		ends:   dag.NodeIDs(d.Sinks()),
	}
	if s.nodes > 0 {
		s.longestPath = d.MaxRank()
	}
	for _, n := range d.Nodes() {
		if d.OutDegree(n.ID) > 1 {
			s.splits++
		}
		if d.InDegree(n.ID) > 1 {
			s.joins++
		}
	}
	for _, r := range d.RankIDs() {
		s.ranks = append(s.ranks, dag.NodeIDs(d.NodesInRank(r)))
	}
	return s
}
