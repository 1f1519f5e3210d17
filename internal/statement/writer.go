package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/stmtnorm/internal/model"
)

// Header is the column layout of normalized output.
var Header = []string{"date", "ref", "payee", "customer", "amount", "memo"}

const (
	numFields   = 6
	colDate     = 0
	colRef      = 1
	colPayee    = 2
	colCustomer = 3
	colAmount   = 4
	colMemo     = 5
)

// Writer streams normalized transactions as CSV, header first.
type Writer struct {
	cw          *csv.Writer
	wroteHeader bool
	count       int
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// Write appends one transaction.
func (w *Writer) Write(txn model.Transaction) error {
	if err := w.header(); err != nil {
		return err
	}
	w.count++
	if err := w.cw.Write(MarshalTransaction(txn)); err != nil {
		return fmt.Errorf("writing row %d: %w", w.count+1, err)
	}
	return nil
}

// Flush writes the header if nothing else was written, then flushes.
func (w *Writer) Flush() error {
	if err := w.header(); err != nil {
		return err
	}
	w.cw.Flush()
	return w.cw.Error()
}

func (w *Writer) header() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	if err := w.cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// WriteCSV writes txns with a header row.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	sw := NewWriter(w)
	for _, txn := range txns {
		if err := sw.Write(txn); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// MarshalTransaction converts a Transaction to a CSV row. Absent optional
// fields become empty cells.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date
	row[colRef] = model.Value(txn.Ref)
	row[colPayee] = txn.Payee
	row[colCustomer] = model.Value(txn.Customer)
	row[colAmount] = strconv.FormatFloat(txn.Amount, 'f', -1, 64)
	row[colMemo] = model.Value(txn.Memo)
	return row
}
