package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cleared-dev/stmtnorm/internal/config"
	"github.com/cleared-dev/stmtnorm/internal/formats"
	"github.com/cleared-dev/stmtnorm/internal/logging"
	"github.com/cleared-dev/stmtnorm/internal/model"
	"github.com/cleared-dev/stmtnorm/internal/runlog"
	"github.com/cleared-dev/stmtnorm/internal/statement"
)

// Result is the outcome of normalizing one statement.
type Result struct {
	Transactions []model.Transaction
	Summary      statement.Summary
}

// Convert reads the statement at path and normalizes every row with the
// layout named in settings. The first bad row aborts the file.
func Convert(path string, settings config.FileSettings) (*Result, error) {
	rows, err := statement.Open(path, settings.Options)
	if err != nil {
		return nil, err
	}

	p, err := formats.New(settings.Version, rows)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for txn, err := range formats.All(p) {
		if err != nil {
			return nil, err
		}
		res.Transactions = append(res.Transactions, txn)
		res.Summary.Add(txn)
	}
	return res, nil
}

// Service converts every statement waiting in a workspace.
type Service struct {
	root   string
	cfg    *config.Config
	logger *log.Logger
	now    func() time.Time
}

// NewService creates an import Service for the workspace at root.
func NewService(root string, cfg *config.Config, logger *log.Logger) *Service {
	return &Service{root: root, cfg: cfg, logger: logger, now: time.Now}
}

// ImportAll converts each file in import/, writes normalized/<name>.csv,
// moves the source to import/processed/ and appends one run-log entry per
// file. A file that fails is left in place; the rest still run. Context
// cancellation stops the loop between files.
func (s *Service) ImportAll(ctx context.Context) ([]runlog.Entry, error) {
	files, err := Scan(s.root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		s.logger.Info("no statements to import")
		return nil, nil
	}

	runID := uuid.NewString()
	logger := s.logger.With(logging.FieldRunID, runID)

	var entries []runlog.Entry
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		entries = append(entries, s.importFile(logger, runID, f))
	}

	var errs []error
	if len(entries) > 0 {
		if err := runlog.Append(s.root, entries); err != nil {
			errs = append(errs, fmt.Errorf("writing run log: %w", err))
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return entries, errors.Join(errs...)
}

func (s *Service) importFile(logger *log.Logger, runID string, f FileInfo) runlog.Entry {
	entry := runlog.Entry{
		RunID:     runID,
		Timestamp: s.now().UTC(),
		File:      f.Name,
	}
	logger = logger.With(logging.FieldFile, f.Name)

	fail := func(err error) runlog.Entry {
		logger.Error("import failed", logging.FieldError, err)
		entry.Status = runlog.StatusFailed
		entry.Error = err.Error()
		return entry
	}

	settings, err := s.cfg.ForFile(f.Name)
	if err != nil {
		return fail(err)
	}
	entry.Format = settings.Version.String()

	res, err := Convert(f.Path, settings)
	if err != nil {
		return fail(err)
	}

	out := OutputPath(s.root, f.Name)
	if err := writeOutput(out, res.Transactions); err != nil {
		return fail(err)
	}
	if err := MarkProcessed(s.root, f.Name); err != nil {
		return fail(err)
	}

	entry.Rows = res.Summary.Count
	entry.Net = res.Summary.Net().StringFixed(2)
	entry.Status = runlog.StatusOK

	logger.Info("imported statement",
		logging.FieldFormat, entry.Format,
		logging.FieldRows, entry.Rows,
		logging.FieldNet, entry.Net,
		logging.FieldOutput, out)
	if res.Summary.UnknownPayees > 0 {
		logger.Warn("rows without a payee", logging.FieldPayees, res.Summary.UnknownPayees)
	}
	return entry
}

func writeOutput(path string, txns []model.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	// O_EXCL: never overwrite an earlier statement's output.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("output %s already exists", filepath.Base(path))
		}
		return fmt.Errorf("creating output: %w", err)
	}
	if err := statement.WriteCSV(f, txns); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}
