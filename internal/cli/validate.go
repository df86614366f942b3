package cli

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/phanxgames/wisp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newValidateCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate configuration, catalog and script files",
		Long: `Validate checks every file concurrently and reports each problem.

Files are classified by extension: .toml is configuration, .json is a
replay script, and .yaml/.yml is a catalog when its name contains
"catalog" and configuration otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			errs := make([]error, len(args))
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobLimit(jobs))
			for i, path := range args {
				g.Go(func() error {
					errs[i] = validateFile(path)
					return nil
				})
			}
			_ = g.Wait()

			failed := 0
			for i, err := range errs {
				if err != nil {
					failed++
					logger.Error("invalid", "file", args[i], "err", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok  %s\n", args[i])
			}
			prog.done(fmt.Sprintf("Validated %d files", len(args)))
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "files validated in parallel (0 or less uses every CPU)")
	return cmd
}

// jobLimit maps the --jobs flag to an errgroup limit. A limit of zero would
// block the first Go call forever.
func jobLimit(jobs int) int {
	if jobs < 1 {
		return runtime.NumCPU()
	}
	return jobs
}

func validateFile(path string) error {
	base := strings.ToLower(filepath.Base(path))
	switch filepath.Ext(base) {
	case ".json":
		data, err := readFile(path)
		if err != nil {
			return err
		}
		_, err = wisp.LoadScript(data)
		return err
	case ".yaml", ".yml":
		if strings.Contains(base, "catalog") {
			_, err := wisp.LoadCatalog(path)
			return err
		}
	}
	cfg, err := wisp.LoadConfig(path)
	if err != nil {
		return err
	}
	return cfg.Validate()
}
