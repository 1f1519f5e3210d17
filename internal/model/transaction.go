package model

// RawRow is one decoded CSV line. Columns are positional and layout-specific.
type RawRow []string

// Transaction is the normalized shape every statement layout converges to.
type Transaction struct {
	Date     string  // layout-specific text, e.g. "01/29/2016" or "2021-05-01"
	Ref      *string // nil when the layout carries no reference
	Payee    string
	Customer *string // cardholder name, nil when absent
	Amount   float64 // sign convention depends on the layout
	Memo     *string // nil when absent
}

// Str returns a pointer to s, for populating optional Transaction fields.
func Str(s string) *string { return &s }

// Value returns *p, or "" when p is nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
