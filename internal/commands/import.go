package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtnorm/internal/config"
	"github.com/cleared-dev/stmtnorm/internal/importer"
	"github.com/cleared-dev/stmtnorm/internal/runlog"
)

func newImportCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Normalize every statement waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.Load(filepath.Join(absDir, config.FileName))
			if errors.Is(err, fs.ErrNotExist) {
				cfg = config.Default()
			} else if err != nil {
				return err
			}

			logger, err := newLogger(cmd, cfg.Log.Level)
			if err != nil {
				return err
			}

			svc := importer.NewService(absDir, cfg, logger)
			entries, err := svc.ImportAll(cmd.Context())
			if err != nil {
				return err
			}

			failed := 0
			for _, e := range entries {
				if e.Status == runlog.StatusFailed {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %s\n", e.File, e.Error)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%s): %d rows, net %s\n", e.File, e.Format, e.Rows, e.Net)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d statements failed", failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")

	return cmd
}
