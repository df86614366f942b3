package cli

import (
	"fmt"
	"strings"

	"github.com/phanxgames/wisp"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "catalog [title]",
		Short: "List projects or show one project's details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := wisp.DefaultCatalog()
			if file != "" {
				var err error
				if cat, err = wisp.LoadCatalog(file); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, p := range cat.Projects {
					fmt.Fprintf(out, "%-12s %s\n", p.Title, p.Tagline)
				}
				return nil
			}
			p, ok := cat.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no project titled %q", args[0])
			}
			fmt.Fprintf(out, "%s (%d)\n%s\n\n%s\n", p.Title, p.Year, p.Tagline, p.Description)
			if len(p.Tech) > 0 {
				fmt.Fprintf(out, "tech: %s\n", strings.Join(p.Tech, ", "))
			}
			if p.URL != "" {
				fmt.Fprintf(out, "url:  %s\n", p.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file")
	return cmd
}
