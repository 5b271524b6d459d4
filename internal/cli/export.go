package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archlens/archlens/internal/config"
	"github.com/archlens/archlens/pkg/engine"
	"github.com/archlens/archlens/pkg/layout"
	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/render"
	"github.com/archlens/archlens/pkg/transform"
)

// newExportCmd creates the export command.
func newExportCmd(cfgPath *string) *cobra.Command {
	var (
		level     string
		algorithm string
		format    string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "export <model.json>",
		Short: "Export a diagram as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			m, err := model.ReadFile(args[0])
			if err != nil {
				return err
			}

			eng := engine.New(cfg.LayoutOptions(), logger)
			result, err := eng.Transform(m, engine.Options{
				ViewLevel: transform.ViewLevel(level),
				Algorithm: layout.Algorithm(algorithm),
			})
			if err != nil {
				return err
			}

			graph := render.Graph{Nodes: result.Nodes, Edges: result.Edges}
			dot := render.ToDOT(graph)

			var data []byte
			switch strings.ToLower(format) {
			case "dot":
				data = []byte(dot)
			case "svg":
				spin := newSpinner(cmd.Context(), "Rendering SVG...")
				spin.Start()
				data, err = render.RenderSVG(cmd.Context(), dot)
				spin.Stop()
				if err != nil {
					return fmt.Errorf("rendering SVG: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s (want dot or svg)", format)
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Diagram exported")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "context", "view level")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "hierarchical", "layout algorithm")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format (dot, svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
