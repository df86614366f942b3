package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the wisp CLI.
//
// Logging goes to stderr at info level, or debug with --verbose (-v). The
// logger is attached to the command context and handed to every engine the
// commands build.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "wisp",
		Short:        "wisp animates text that scatters like smoke",
		Long:         `wisp is a headless text and layer animation engine. These commands validate configuration, sample profiles, replay input scripts and preview the stock page in a terminal or a window.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("wisp %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newSampleCmd())
	root.AddCommand(newReplayCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newTermCmd())
	root.AddCommand(newPreviewCmd())
	return root
}
