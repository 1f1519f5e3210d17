package statement

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtnorm/internal/formats"
	"github.com/cleared-dev/stmtnorm/internal/model"
)

// Summary totals a run of transactions. Amounts are summed as decimals so
// long statements do not drift.
type Summary struct {
	Count         int
	Positive      decimal.Decimal // sum of amounts > 0
	Negative      decimal.Decimal // sum of amounts < 0
	UnknownPayees int
	NonFinite     int // NaN or Inf amounts, left out of the totals
}

// Net returns Positive + Negative.
func (s Summary) Net() decimal.Decimal {
	return s.Positive.Add(s.Negative)
}

// Add folds one transaction into the totals.
func (s *Summary) Add(txn model.Transaction) {
	s.Count++
	if txn.Payee == formats.UnknownPayee {
		s.UnknownPayees++
	}
	if math.IsNaN(txn.Amount) || math.IsInf(txn.Amount, 0) {
		s.NonFinite++
		return
	}
	amt := decimal.NewFromFloat(txn.Amount)
	switch amt.Sign() {
	case 1:
		s.Positive = s.Positive.Add(amt)
	case -1:
		s.Negative = s.Negative.Add(amt)
	}
}

// Summarize totals txns.
func Summarize(txns []model.Transaction) Summary {
	var s Summary
	for _, txn := range txns {
		s.Add(txn)
	}
	return s
}

func (s Summary) String() string {
	out := fmt.Sprintf("%d transactions, in %s, out %s, net %s",
		s.Count, s.Positive.StringFixed(2), s.Negative.StringFixed(2), s.Net().StringFixed(2))
	if s.UnknownPayees > 0 {
		out += fmt.Sprintf(", %d unknown payees", s.UnknownPayees)
	}
	if s.NonFinite > 0 {
		out += fmt.Sprintf(", %d non-finite amounts skipped", s.NonFinite)
	}
	return out
}
