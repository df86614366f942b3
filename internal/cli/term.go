package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/wisp/term"
	"github.com/spf13/cobra"
)

func newTermCmd() *cobra.Command {
	var (
		flags engineFlags
		fps   int
	)

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run the stock page in the terminal",
		Long:  `Term paints the stock page on a character grid. Move the mouse over the headline to scatter it, use the wheel to scroll, and press q or Esc to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()

			w, h := screen.Size()
			flags.width = float64(w) * term.DefaultCellW
			flags.height = float64(h) * term.DefaultCellH
			s, err := buildSession(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			defer s.Close()

			return term.NewRenderer(screen, s.engine).Run(cmd.Context(), fps)
		},
	}
	flags.register(cmd, 0, 0)
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	return cmd
}
