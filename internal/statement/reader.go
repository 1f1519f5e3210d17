// Package statement reads statement exports into raw rows and writes
// normalized transactions back out. It never decides which layout a file
// uses.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/stmtnorm/internal/model"
)

// Options controls how a statement file is decoded.
type Options struct {
	SkipHeader bool   // drop the first row
	Encoding   string // WHATWG label such as "windows-1252"; empty means UTF-8
	Comma      rune   // field delimiter; zero means ','
	Sheet      string // xlsx sheet name; empty means the first sheet
}

// Open reads the statement at path, choosing the decoder by extension.
func Open(path string, opts Options) ([]model.RawRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// ReadCSV decodes every CSV record from r. Rows may have any number of
// fields; blank lines are skipped.
func ReadCSV(r io.Reader, opts Options) ([]model.RawRow, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	return toRows(records, opts.SkipHeader), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

func toRows(records [][]string, skipHeader bool) []model.RawRow {
	if skipHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil
	}
	rows := make([]model.RawRow, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		rows = append(rows, model.RawRow(rec))
	}
	return rows
}
