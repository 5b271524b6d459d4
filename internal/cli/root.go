package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization
// with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the archlens CLI with the given context and returns an
// error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		cfgPath string
	)

	root := &cobra.Command{
		Use:          "archlens",
		Short:        "ArchLens turns architecture models into positioned diagrams",
		Long:         `ArchLens is a graph transformation and layout engine: it filters a typed architecture model by view level, user filters, scenario presets, and changesets, computes node positions, and emits a styled render graph ready for display.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("archlens %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: ./archlens.toml)")

	root.AddCommand(newTransformCmd(&cfgPath))
	root.AddCommand(newTraceCmd())
	root.AddCommand(newExportCmd(&cfgPath))
	root.AddCommand(newPresetsCmd())
	root.AddCommand(newServeCmd(&cfgPath))
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
