package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		RunID:     "5f0c6a3e-1d2b-4c6f-9a51-0d6f3b0f6e11",
		Timestamp: testTime,
		File:      "amex-2016-01.csv",
		Format:    "v0",
		Rows:      42,
		Net:       "-312.40",
		Status:    StatusOK,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "amex-2016-01.csv", entries[0].File)
	assert.Equal(t, 42, entries[0].Rows)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.File = "bad.csv"
	e2.Status = StatusFailed
	e2.Error = "error in amount (abc) in column 5 on line 3 of statement"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, StatusOK, entries[0].Status)
	assert.Equal(t, StatusFailed, entries[1].Status)
	assert.Equal(t, e2.Error, entries[1].Error)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "run-log.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalUnmarshal(t *testing.T) {
	e := testEntry()
	row := MarshalEntry(e)
	assert.Len(t, row, 8)
	assert.Equal(t, "2025-01-15T10:30:00Z", row[colTimestamp])
	assert.Equal(t, "42", row[colRows])

	got, err := UnmarshalEntry(row)
	require.NoError(t, err)
	assert.True(t, e.Timestamp.Equal(got.Timestamp))
	got.Timestamp = e.Timestamp
	assert.Equal(t, e, got)
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 8 fields")
}

func TestUnmarshalEntry_BadRows(t *testing.T) {
	row := MarshalEntry(testEntry())
	row[colRows] = "many"
	_, err := UnmarshalEntry(row)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing rows")
}
