package cli

import (
	"fmt"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/phanxgames/wisp"
	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	var (
		config  string
		profile string
		count   int
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print transforms generated by a profile",
		Long:  `Sample compiles the configured profiles and prints the enter targets and stagger offsets a container of --count units would receive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config, seed)
			if err != nil {
				return err
			}
			profiles, err := cfg.CompileProfiles()
			if err != nil {
				return err
			}
			p, ok := profiles[profile]
			if !ok {
				return fmt.Errorf("unknown profile %q", profile)
			}
			if cfg.Seed == 0 {
				cfg.Seed = rand.Uint64()
			}
			rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
			offsets := wisp.StaggerOffsets(count, p.Stagger, p.Order, rng)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "unit\tdelay\tx\ty\trotation\tscale\topacity\tblur\t")
			for i := 0; i < count; i++ {
				t := wisp.Generate(p, i, rng)
				fmt.Fprintf(w, "%d\t%.3f\t%.1f\t%.1f\t%.1f\t%.2f\t%.2f\t%.1f\t\n",
					i, offsets[i], t.X, t.Y, t.Rotation, t.Scale, t.Opacity, t.Blur)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", "", "configuration file (.toml, .yaml)")
	cmd.Flags().StringVarP(&profile, "profile", "p", wisp.ProfileSmoke, "profile name")
	cmd.Flags().IntVarP(&count, "count", "n", 12, "number of units")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed (0 picks one)")
	return cmd
}
