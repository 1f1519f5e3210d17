package statement

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtnorm/internal/model"
)

func TestMarshalTransaction(t *testing.T) {
	row := MarshalTransaction(model.Transaction{
		Date:   "2021-05-01",
		Ref:    model.Str("12345"),
		Payee:  "Acme Co",
		Amount: 42.5,
		Memo:   model.Str("monthly fee"),
	})
	assert.Equal(t, []string{"2021-05-01", "12345", "Acme Co", "", "42.5", "monthly fee"}, row)
}

func TestMarshalTransaction_Negative(t *testing.T) {
	row := MarshalTransaction(model.Transaction{Date: "01/29/2016", Payee: "DINER", Customer: model.Str("Jane"), Amount: -3.27})
	assert.Equal(t, "-3.27", row[colAmount])
	assert.Equal(t, "Jane", row[colCustomer])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []model.Transaction{
		{Date: "2/8/20", Payee: "EVA AIR", Customer: model.Str("JONATHAN"), Amount: -14.95},
		{Date: "2/9/20", Payee: "PAYMENT, THANK YOU", Amount: 100},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"date,ref,payee,customer,amount,memo\n"+
			"2/8/20,,EVA AIR,JONATHAN,-14.95,\n"+
			"2/9/20,,\"PAYMENT, THANK YOU\",,100,\n",
		buf.String())
}

func TestWriteCSV_EmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "date,ref,payee,customer,amount,memo\n", buf.String())
}

func TestWriter_Streaming(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(model.Transaction{Date: "d1", Payee: "p1", Amount: 1}))
	require.NoError(t, w.Write(model.Transaction{Date: "d2", Payee: "p2", Amount: 2}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "date,ref,payee,customer,amount,memo\nd1,,p1,,1,\nd2,,p2,,2,\n", buf.String())
}
