package statement

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/stmtnorm/internal/model"
)

// ReadXLSX reads one sheet of an Excel export into the same rows ReadCSV
// would produce for the equivalent CSV export.
//
// Numeric cells are read as their stored value ("1234.5") rather than their
// display text ("1,234.50"), so amounts parse the same as in a CSV export.
// Every other cell, dates included, keeps the text Excel would display.
// Short rows are padded with empty fields to the sheet's widest row because
// excelize omits trailing empty cells.
func ReadXLSX(path string, opts Options) ([]model.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	width := 0
	for _, rec := range shown {
		width = max(width, len(rec))
	}
	records := make([][]string, len(shown))
	for i, rec := range shown {
		if len(rec) == 0 {
			continue
		}
		out := make([]string, width)
		for j, v := range rec {
			if i < len(raw) && j < len(raw[i]) {
				v = cellValue(raw[i][j], v)
			}
			out[j] = v
		}
		records[i] = out
	}
	return toRows(records, opts.SkipHeader), nil
}

var numberDecorations = strings.NewReplacer(
	",", "", " ", "", "\u00a0", "", "$", "", "€", "", "£", "", "¥", "", "(", "", ")", "", "%", "",
)

// cellValue picks between a cell's stored and displayed text. The stored
// value wins only when both read as numbers once thousands separators,
// currency symbols and the like are removed from the display text.
func cellValue(raw, shown string) string {
	if raw == shown {
		return shown
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return shown
	}
	if _, err := strconv.ParseFloat(numberDecorations.Replace(shown), 64); err != nil {
		return shown
	}
	return raw
}
