package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtnorm/internal/config"
	"github.com/cleared-dev/stmtnorm/internal/formats"
	"github.com/cleared-dev/stmtnorm/internal/importer"
)

func newInitCommand() *cobra.Command {
	var format string
	var header bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a statement workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if _, err := formats.ParseVersion(format); err != nil {
				return err
			}

			if err := runInit(absDir, format, header, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized statement workspace at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formats.DefaultVersion.String(), "default statement layout")
	cmd.Flags().BoolVar(&header, "header", false, "statements start with a header row")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing "+config.FileName)

	return cmd
}

func runInit(dir, format string, header, force bool) error {
	for _, d := range importer.Dirs() {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Format = format
	cfg.Header = header
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}
	return nil
}
