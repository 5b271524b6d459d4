package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archlens/archlens/internal/config"
	"github.com/archlens/archlens/pkg/engine"
	"github.com/archlens/archlens/pkg/layout"
	"github.com/archlens/archlens/pkg/model"
	"github.com/archlens/archlens/pkg/transform"
)

// transformOpts holds the command-line flags for the transform command.
type transformOpts struct {
	level          string   // view level (context, container, component, code)
	containerID    string   // selected container for drill-down
	componentID    string   // selected component for drill-down
	containerTypes []string // container type filter
	technologies   []string // technology stack filter
	preset         string   // scenario preset ID
	changesOnly    bool     // restrict to changeset elements
	algorithm      string   // layout algorithm
	positionsFile  string   // JSON file with manual positions
	output         string   // output file path (stdout if empty)
}

// engineOptions converts the flags into engine options.
func (o *transformOpts) engineOptions() (engine.Options, error) {
	opts := engine.Options{
		ViewLevel:   transform.ViewLevel(o.level),
		ContainerID: o.containerID,
		ComponentID: o.componentID,
		Filters: transform.FilterOptions{
			ContainerTypes:  o.containerTypes,
			TechnologyStack: o.technologies,
		},
		Preset:      o.preset,
		ChangesOnly: o.changesOnly,
		Algorithm:   layout.Algorithm(o.algorithm),
	}

	if o.positionsFile != "" {
		data, err := os.ReadFile(o.positionsFile)
		if err != nil {
			return opts, fmt.Errorf("reading positions file: %w", err)
		}
		if err := json.Unmarshal(data, &opts.ExistingPositions); err != nil {
			return opts, fmt.Errorf("parsing positions file: %w", err)
		}
	}
	return opts, nil
}

// newTransformCmd creates the transform command.
func newTransformCmd(cfgPath *string) *cobra.Command {
	var opts transformOpts

	cmd := &cobra.Command{
		Use:   "transform <model.json>",
		Short: "Filter and lay out a model into a render graph",
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
			engOpts, err := opts.engineOptions()
			if err != nil {
				return err
			}

			spin := newSpinner(cmd.Context(), "Computing layout...")
			spin.Start()

			prog := newProgress(logger)
			eng := engine.New(cfg.LayoutOptions(), logger)
			result, err := eng.Transform(m, engOpts)
			if err != nil {
				spin.StopWithError("Transform failed")
				return err
			}
			spin.Stop()
			prog.done(fmt.Sprintf("Transformed %d nodes", result.VisibleNodes))

			for _, w := range result.Warnings {
				printWarning("%s", w)
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			if opts.output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Render graph written")
			printFile(opts.output)
			printStats(result.VisibleNodes, result.VisibleEdges, result.CacheInfo.LayoutHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.level, "level", "l", "context", "view level (context, container, component, code)")
	cmd.Flags().StringVar(&opts.containerID, "container", "", "container ID for drill-down")
	cmd.Flags().StringVar(&opts.componentID, "component", "", "component ID for drill-down")
	cmd.Flags().StringSliceVar(&opts.containerTypes, "type", nil, "keep only these container types")
	cmd.Flags().StringSliceVar(&opts.technologies, "tech", nil, "keep only these technologies")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "scenario preset (see 'archlens presets')")
	cmd.Flags().BoolVar(&opts.changesOnly, "changes-only", false, "show only changeset elements")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "hierarchical", "layout algorithm (hierarchical, force, orthogonal, manual)")
	cmd.Flags().StringVar(&opts.positionsFile, "positions", "", "JSON file with manual node positions")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
