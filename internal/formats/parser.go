// Package formats converts raw statement rows into normalized transactions.
// Each historical export layout has its own parser; callers pick the layout
// and then iterate every layout the same way.
package formats

import (
	"iter"
	"strings"

	"github.com/cleared-dev/stmtnorm/internal/model"
)

// Parser yields normalized transactions from a row source, one per call.
type Parser interface {
	// Next returns the next transaction. ok is false once the rows are
	// exhausted, and stays false on every later call.
	Next() (txn model.Transaction, ok bool, err error)
}

// rowSource is the row sequence plus a forward-only cursor.
type rowSource struct {
	rows   []model.RawRow
	rowptr int
}

func newRowSource(rows []model.RawRow) (rowSource, error) {
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(rows[0][0], "DATE") {
		return rowSource{}, &HeaderError{Field: rows[0][0]}
	}
	return rowSource{rows: rows}, nil
}

// advance returns the row under the cursor and moves past it.
func (s *rowSource) advance() (model.RawRow, bool) {
	if s.rowptr >= len(s.rows) {
		return nil, false
	}
	row := s.rows[s.rowptr]
	s.rowptr++
	return row, true
}

// line is the 1-based line number of the row most recently returned by advance.
func (s *rowSource) line() int { return s.rowptr }

// baseParser defines the iteration contract and extracts nothing.
type baseParser struct {
	rowSource
}

func (p *baseParser) Next() (model.Transaction, bool, error) {
	if _, ok := p.advance(); !ok {
		return model.Transaction{}, false, nil
	}
	return model.Transaction{}, true, nil
}

// All adapts p to a range-over-func sequence. Iteration ends after the
// first error.
func All(p Parser) iter.Seq2[model.Transaction, error] {
	return func(yield func(model.Transaction, error) bool) {
		for {
			txn, ok, err := p.Next()
			if err != nil {
				yield(model.Transaction{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(txn, nil) {
				return
			}
		}
	}
}

// Collect drains p and returns every transaction it yields.
func Collect(p Parser) ([]model.Transaction, error) {
	var txns []model.Transaction
	for txn, err := range All(p) {
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
