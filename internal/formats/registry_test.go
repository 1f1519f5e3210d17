package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name string
		want Version
	}{
		{"v0", V0}, {"0", V0}, {"old", V0}, {"legacy", V0},
		{"v1", V1}, {"1", V1}, {"new", V1},
		{"v2", V2}, {"NEW2", V2},
		{"v3", V3}, {"default", V3}, {" V3 ", V3},
		{"v4", V4}, {"2022", V4},
		{"base", Base},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.name)
		require.NoError(t, err, "ParseVersion(%q)", tt.name)
		assert.Equal(t, tt.want, got, "ParseVersion(%q)", tt.name)
	}
}

func TestParseVersion_Unknown(t *testing.T) {
	_, err := ParseVersion("v9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v9")
	assert.Contains(t, err.Error(), "v3")
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "v0", V0.String())
	assert.Equal(t, "v4", V4.String())
	assert.Equal(t, "base", Base.String())
}

func TestVersions_Ordered(t *testing.T) {
	infos := Versions()
	require.Len(t, infos, 5)
	for i, info := range infos {
		assert.Equal(t, Version(i), info.Version)
		assert.NotEmpty(t, info.Description)
	}
	assert.Equal(t, "v3", infos[DefaultVersion].Name())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := DefaultRegistry()
	assert.Panics(t, func() { r.Register(Info{Version: V0}) })
	assert.Panics(t, func() { r.Register(Info{Version: Version(9), Aliases: []string{"OLD"}}) })
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("v3")
	assert.False(t, ok)
}
