package cli

import (
	"fmt"
	"os"

	"github.com/phanxgames/wisp"
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var (
		flags     engineFlags
		fps       int
		maxFrames int
	)

	cmd := &cobra.Command{
		Use:   "replay <script.json>",
		Short: "Replay an input script against the stock page",
		Long:  `Replay feeds a JSON step script into the stock page frame by frame and prints the page state at every snapshot step and at the end.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			data, err := readFile(args[0])
			if err != nil {
				return err
			}
			runner, err := wisp.LoadScript(data)
			if err != nil {
				return err
			}
			s, err := buildSession(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			runner.OnSnapshot = func(label string) {
				printState(out, label, s.engine)
			}
			prog := newProgress(logger)
			n := wisp.Play(s.engine, runner, 1/float32(fps), maxFrames)
			if !runner.Done() {
				logger.Warn("script did not finish", "frames", n)
			}
			printState(out, "end", s.engine)
			prog.done(fmt.Sprintf("Replayed %d frames", n))
			return nil
		},
	}
	flags.register(cmd, 1280, 720)
	cmd.Flags().IntVar(&fps, "fps", 60, "simulated frames per second")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 60*60, "stop after this many frames")
	return cmd
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
