package cli

import (
	"github.com/phanxgames/wisp"
	"github.com/phanxgames/wisp/display"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		flags      engineFlags
		fontSize   float64
		showLayers bool
		showStats  bool
		scriptPath string
		shotDir    string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run the stock page in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSession(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := display.DefaultOptions()
			opts.FontSize = fontSize
			opts.ShowLayers = showLayers
			opts.ShowStats = showStats
			opts.ScreenshotDir = shotDir

			var runner *wisp.Runner
			if scriptPath != "" {
				data, err := readFile(scriptPath)
				if err != nil {
					return err
				}
				if runner, err = wisp.LoadScript(data); err != nil {
					return err
				}
			}
			return display.Run(s.engine, "wisp", opts, runner)
		},
	}
	flags.register(cmd, 1280, 720)
	cmd.Flags().Float64Var(&fontSize, "font-size", 64, "glyph size in pixels")
	cmd.Flags().BoolVar(&showLayers, "show-layers", false, "outline interactive layers")
	cmd.Flags().BoolVar(&showStats, "stats", false, "draw the frame rate overlay")
	cmd.Flags().StringVar(&scriptPath, "script", "", "replay a JSON step script in the window")
	cmd.Flags().StringVar(&shotDir, "shots", "screenshots", "directory for script snapshot PNGs")
	return cmd
}
