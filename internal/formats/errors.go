package formats

import "fmt"

// HeaderError reports that the first row looks like column headers.
type HeaderError struct {
	Field string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("the first row is likely column headers (%q); try running again with the --header option", e.Field)
}

// AmountError reports an amount cell that is not a number.
type AmountError struct {
	Value  string
	Column int // 0-based
	Line   int // 1-based
	Err    error
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("error in amount (%s) in column %d on line %d of statement", e.Value, e.Column+1, e.Line)
}

func (e *AmountError) Unwrap() error { return e.Err }

// FieldError reports a required column, or a required token inside a
// column, that is missing from a row.
type FieldError struct {
	Field  string
	Column int // 0-based
	Line   int // 1-based
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("missing %s in column %d on line %d of statement", e.Field, e.Column+1, e.Line)
}
