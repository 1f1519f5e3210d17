package formats

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cleared-dev/stmtnorm/internal/model"
)

// UnknownPayee stands in for a V4 payee cell that has no second line.
const UnknownPayee = "UNK_PAYEE"

// V0, formerly "old":
//
//	01/29/2016  Fri,,"RESTAURANT","Card Holder Name","XXXX-XXXXXX-NNNNN",,,3.27,,,,,,,,
const (
	v0ColDate     = 0
	v0ColPayee    = 2
	v0ColCustomer = 3
	v0ColMemo     = 5
	v0ColAmount   = 7
)

type v0Parser struct {
	rowSource
}

func (p *v0Parser) Next() (model.Transaction, bool, error) {
	row, ok := p.advance()
	if !ok {
		return model.Transaction{}, false, nil
	}
	line := p.line()

	date, err := firstToken(row, v0ColDate, "date", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	payee, err := field(row, v0ColPayee, "payee", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	customer, err := firstToken(row, v0ColCustomer, "customer", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	amount, err := parseAmount(row, v0ColAmount, line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	memo, err := field(row, v0ColMemo, "memo", line)
	if err != nil {
		return model.Transaction{}, false, err
	}

	return model.Transaction{
		Date:     date,
		Payee:    payee,
		Customer: model.Str(customer),
		Amount:   -amount,
		Memo:     model.Str(memo),
	}, true, nil
}

// V1, formerly "new":
//
//	2/8/20,PANASONIC- EVA AIR,JONATHAN M CAMERON,-23011,14.95
const (
	v1ColDate     = 0
	v1ColPayee    = 1
	v1ColCustomer = 2
	v1ColAmount   = 4
)

type v1Parser struct {
	rowSource
}

func (p *v1Parser) Next() (model.Transaction, bool, error) {
	row, ok := p.advance()
	if !ok {
		return model.Transaction{}, false, nil
	}
	line := p.line()

	date, err := field(row, v1ColDate, "date", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	payee, err := field(row, v1ColPayee, "payee", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	customer, err := field(row, v1ColCustomer, "customer", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	amount, err := parseAmount(row, v1ColAmount, line)
	if err != nil {
		return model.Transaction{}, false, err
	}

	return model.Transaction{
		Date:     date,
		Payee:    payee,
		Customer: model.Str(customer),
		Amount:   -amount,
	}, true, nil
}

// V2, formerly "new2":
//
//	Transaction Date,Post Date,Description,Category,Type,Amount
const (
	v2ColDate   = 0
	v2ColPayee  = 2
	v2ColAmount = 5
)

type v2Parser struct {
	rowSource
}

func (p *v2Parser) Next() (model.Transaction, bool, error) {
	row, ok := p.advance()
	if !ok {
		return model.Transaction{}, false, nil
	}
	line := p.line()

	date, err := field(row, v2ColDate, "date", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	payee, err := field(row, v2ColPayee, "payee", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	amount, err := parseAmount(row, v2ColAmount, line)
	if err != nil {
		return model.Transaction{}, false, err
	}

	return model.Transaction{
		Date:   date,
		Payee:  payee,
		Amount: amount,
	}, true, nil
}

// V3, formerly "default":
//
//	2021-05-01,CHK 12345,42.50,Acme Co,monthly fee
const (
	v3ColDate   = 0
	v3ColRef    = 1
	v3ColAmount = 2
	v3ColPayee  = 3
	v3ColMemo   = 4
)

type v3Parser struct {
	rowSource
}

func (p *v3Parser) Next() (model.Transaction, bool, error) {
	row, ok := p.advance()
	if !ok {
		return model.Transaction{}, false, nil
	}
	line := p.line()

	date, err := field(row, v3ColDate, "date", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	ref, err := nthToken(row, v3ColRef, 1, "ref", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	amount, err := parseAmount(row, v3ColAmount, line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	payee, err := field(row, v3ColPayee, "payee", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	memo, err := field(row, v3ColMemo, "memo", line)
	if err != nil {
		return model.Transaction{}, false, err
	}

	return model.Transaction{
		Date:   date,
		Ref:    model.Str(ref),
		Payee:  payee,
		Amount: amount,
		Memo:   model.Str(memo),
	}, true, nil
}

// V4, the layout of exports downloaded from May 2022 on. The payee cell
// holds several lines; the payee is the second one.
const (
	v4ColDate   = 0
	v4ColAmount = 2
	v4ColPayee  = 3
	v4ColRef    = 9
	v4ColMemo   = 10
)

type v4Parser struct {
	rowSource
}

func (p *v4Parser) Next() (model.Transaction, bool, error) {
	row, ok := p.advance()
	if !ok {
		return model.Transaction{}, false, nil
	}
	line := p.line()

	date, err := field(row, v4ColDate, "date", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	amount, err := parseAmount(row, v4ColAmount, line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	payee := UnknownPayee
	if v4ColPayee < len(row) {
		if lines := strings.Split(row[v4ColPayee], "\n"); len(lines) > 1 {
			payee = lines[1]
		}
	}
	ref, err := field(row, v4ColRef, "ref", line)
	if err != nil {
		return model.Transaction{}, false, err
	}
	memo, err := field(row, v4ColMemo, "memo", line)
	if err != nil {
		return model.Transaction{}, false, err
	}

	return model.Transaction{
		Date:   date,
		Ref:    model.Str(ref),
		Payee:  payee,
		Amount: amount,
		Memo:   model.Str(memo),
	}, true, nil
}

func field(row model.RawRow, col int, name string, line int) (string, error) {
	if col >= len(row) {
		return "", &FieldError{Field: name, Column: col, Line: line}
	}
	return row[col], nil
}

func firstToken(row model.RawRow, col int, name string, line int) (string, error) {
	return nthToken(row, col, 0, name, line)
}

// nthToken returns the n-th whitespace-separated token of a cell.
func nthToken(row model.RawRow, col, n int, name string, line int) (string, error) {
	s, err := field(row, col, name, line)
	if err != nil {
		return "", err
	}
	tokens := strings.Fields(s)
	if n >= len(tokens) {
		return "", &FieldError{Field: name, Column: col, Line: line}
	}
	return tokens[n], nil
}

// parseAmount parses an amount cell. Values too large for a float64 become
// +/-Inf rather than failing.
func parseAmount(row model.RawRow, col, line int) (float64, error) {
	s, err := field(row, col, "amount", line)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &AmountError{Value: s, Column: col, Line: line, Err: err}
	}
	return v, nil
}
