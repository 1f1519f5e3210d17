package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtnorm/internal/config"
	"github.com/cleared-dev/stmtnorm/internal/formats"
	"github.com/cleared-dev/stmtnorm/internal/logging"
	"github.com/cleared-dev/stmtnorm/internal/statement"
)

func newConvertCommand() *cobra.Command {
	var (
		format     string
		header     bool
		encoding   string
		sheet      string
		output     string
		configPath string
		summary    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Normalize one statement file to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			settings, err := cfg.ForFile(path)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("format") || configPath == "" {
				if settings.Version, err = formats.ParseVersion(format); err != nil {
					return err
				}
			}
			if flags.Changed("header") {
				settings.Options.SkipHeader = header
			}
			if flags.Changed("encoding") {
				settings.Options.Encoding = encoding
			}
			if flags.Changed("sheet") {
				settings.Options.Sheet = sheet
			}

			var s statement.Summary
			if output == "" {
				s, err = runConvert(cmd.OutOrStdout(), path, settings)
			} else {
				s, err = convertToFile(output, path, settings)
			}
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd, cfg.Log.Level)
			if err != nil {
				return err
			}
			logger.Debug("converted statement",
				logging.FieldFile, path,
				logging.FieldFormat, settings.Version,
				logging.FieldRows, s.Count)
			if summary {
				fmt.Fprintln(cmd.ErrOrStderr(), s.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formats.DefaultVersion.String(), "statement layout (see 'stmtnorm formats')")
	cmd.Flags().BoolVar(&header, "header", false, "skip the first row as column headers")
	cmd.Flags().StringVar(&encoding, "encoding", "", "source text encoding, e.g. windows-1252 (default UTF-8)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to read from .xlsx files (default first)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write normalized CSV here instead of stdout")
	cmd.Flags().StringVar(&configPath, "config", "", "take layout and decoding from this stmtnorm.yaml")
	cmd.Flags().BoolVar(&summary, "summary", false, "print totals to stderr")

	return cmd
}

// convertToFile writes the normalized statement next to output and renames
// it into place only once every row has converted, so a failed run leaves
// no partial file behind.
func convertToFile(output, path string, settings config.FileSettings) (statement.Summary, error) {
	tmp, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+"-*")
	if err != nil {
		return statement.Summary{}, fmt.Errorf("creating output: %w", err)
	}
	s, err := runConvert(tmp, path, settings)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), output)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return statement.Summary{}, err
	}
	return s, nil
}

// runConvert streams the normalized statement to w.
func runConvert(w io.Writer, path string, settings config.FileSettings) (statement.Summary, error) {
	var s statement.Summary

	rows, err := statement.Open(path, settings.Options)
	if err != nil {
		return s, err
	}
	p, err := formats.New(settings.Version, rows)
	if err != nil {
		return s, err
	}

	sw := statement.NewWriter(w)
	for txn, err := range formats.All(p) {
		if err != nil {
			return s, err
		}
		if err := sw.Write(txn); err != nil {
			return s, err
		}
		s.Add(txn)
	}
	return s, sw.Flush()
}
