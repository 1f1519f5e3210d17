package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtnorm/internal/formats"
)

func TestRoundTrip(t *testing.T) {
	header := true
	cfg := Default()
	cfg.Encoding = "windows-1252"
	cfg.Files = []FileRule{
		{Pattern: "amex-*.csv", Format: "old", Header: &header},
	}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "v3", got.Format)
	assert.False(t, got.Header)
	assert.Equal(t, "windows-1252", got.Encoding)
	assert.Equal(t, "info", got.Log.Level)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "amex-*.csv", got.Files[0].Pattern)
	require.NotNil(t, got.Files[0].Header)
	assert.True(t, *got.Files[0].Header)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "v3", cfg.Format)
	assert.False(t, cfg.Header)
	assert.Empty(t, cfg.Files)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := "format: v9\nfiles:\n  - pattern: \"[\"\n  - pattern: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v9")
	assert.Contains(t, err.Error(), "bad pattern")
	assert.Contains(t, err.Error(), "empty pattern")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "format: v3")
	assert.Contains(t, contents, "header: false")
	assert.Contains(t, contents, "level: info")
	assert.NotContains(t, contents, "files:")
}

func TestForFile(t *testing.T) {
	header := true
	noHeader := false
	cfg := &Config{
		Format:   "v1",
		Header:   true,
		Encoding: "utf-8",
		Files: []FileRule{
			{Pattern: "amex-*.csv", Format: "v0", Header: &noHeader},
			{Pattern: "*.xlsx", Format: "2022", Sheet: "Transactions"},
			{Pattern: "amex-2016*.csv", Format: "v2", Header: &header},
		},
	}

	tests := []struct {
		name       string
		version    formats.Version
		skipHeader bool
		sheet      string
	}{
		{"chase.csv", formats.V1, true, ""},
		{"amex-2016-01.csv", formats.V0, false, ""},
		{"/some/dir/amex-2016-01.csv", formats.V0, false, ""},
		{"export.xlsx", formats.V4, true, "Transactions"},
	}
	for _, tt := range tests {
		got, err := cfg.ForFile(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.version, got.Version, tt.name)
		assert.Equal(t, tt.skipHeader, got.Options.SkipHeader, tt.name)
		assert.Equal(t, tt.sheet, got.Options.Sheet, tt.name)
		assert.Equal(t, "utf-8", got.Options.Encoding, tt.name)
	}
}

func TestForFile_EmptyFormatUsesDefault(t *testing.T) {
	got, err := (&Config{}).ForFile("x.csv")
	require.NoError(t, err)
	assert.Equal(t, formats.DefaultVersion, got.Version)
}
