package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Common structured field names.
const (
	FieldFile   = "file"
	FieldFormat = "format"
	FieldRows   = "rows"
	FieldNet    = "net"
	FieldRunID  = "run_id"
	FieldError  = "err"
	FieldPayees = "unknown_payees"
	FieldOutput = "output"
)

// New returns a leveled logger writing to w. An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "stmtnorm",
		ReportTimestamp: true,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
