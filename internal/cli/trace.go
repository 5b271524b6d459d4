package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/trace"
)

// newTraceCmd creates the trace command.
func newTraceCmd() *cobra.Command {
	var (
		op string
		to string
	)

	cmd := &cobra.Command{
		Use:   "trace <model.json> <node-id>",
		Short: "Follow dependency chains from a node",
		Long: `Trace walks the dependency graph from a starting node.

Operations:
  upstream    every node that can reach the starting node
  downstream  every node reachable from the starting node
  between     all nodes on paths from the node to --to`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.ReadFile(args[0])
			if err != nil {
				return err
			}
			from := args[1]
			if _, ok := m.Nodes[from]; !ok {
				return fmt.Errorf("unknown node: %s", from)
			}

			tracer := trace.New(m)
			var nodes map[string]bool
			switch op {
			case "upstream":
				nodes = tracer.Upstream(from)
			case "downstream":
				nodes = tracer.Downstream(from)
			case "between":
				if to == "" {
					return fmt.Errorf("--to is required for the between operation")
				}
				if _, ok := m.Nodes[to]; !ok {
					return fmt.Errorf("unknown node: %s", to)
				}
				nodes = tracer.Between(from, to)
			default:
				return fmt.Errorf("unknown trace operation: %s", op)
			}

			if len(nodes) == 0 {
				printInfo("No path found")
				return nil
			}

			ids := make([]string, 0, len(nodes))
			for id := range nodes {
				ids = append(ids, id)
			}
			slices.Sort(ids)

			fmt.Println(StyleTitle.Render(fmt.Sprintf("%s from %s", op, from)))
			for _, id := range ids {
				label := id
				if n, ok := m.Nodes[id]; ok && n.Name != "" {
					label = fmt.Sprintf("%s %s", id, StyleDim.Render("("+n.Name+")"))
				}
				printDetail("%s", label)
			}
			printStats(len(ids), len(tracer.EdgesWithin(nodes)), false)
			return nil
		},
	}

	cmd.Flags().StringVar(&op, "op", "downstream", "trace operation (upstream, downstream, between)")
	cmd.Flags().StringVar(&to, "to", "", "target node for the between operation")

	return cmd
}
