package machine

import (
	"testing"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/filesystem"
	"github.com/pathpirate/pathpirate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll("/home/operator/v2.9.2", 0755))
	require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		raw       string
		release   string
		minor     int
		supported bool
	}{
		{"v2.9.2", "v2.9.2", 9, true},
		{"v2.9.6-rc3", "v2.9.6", 9, true},
		{"v2.10.0", "v2.10.0", 10, true},
		{"v2.10.0-beta", "v2.10.0", 10, true},
		{"v2.9.1", "v2.9.1", 9, false},
		{"v2.10.1", "v2.10.1", 10, false},
		{"v2.8.4", "v2.8.4", 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := ParseVersion(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.release, v.Release())
			assert.Equal(t, tt.minor, v.Minor())
			assert.Equal(t, tt.supported, v.Supported())
			assert.Equal(t, tt.raw, v.String())
		})
	}
}

func TestParseVersionMalformed(t *testing.T) {
	for _, raw := range []string{"", "v2", "v2.x.1"} {
		_, err := ParseVersion(raw)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMetadata), "%q: got %v", raw, err)
	}
}

func TestLoadVersion(t *testing.T) {
	fs := filesystem.NewMemory()
	path := "/home/operator/v2.9.2/version.json"

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadVersion(fs, path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound), "got %v", err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("missing key", func(t *testing.T) {
		writeFile(t, fs, path, `{"build": "123"}`)
		_, err := LoadVersion(fs, path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMetadata), "got %v", err)
	})

	t.Run("invalid json", func(t *testing.T) {
		writeFile(t, fs, path, `{"version": `)
		_, err := LoadVersion(fs, path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMetadata), "got %v", err)
	})

	t.Run("valid", func(t *testing.T) {
		writeFile(t, fs, path, `{"version": "v2.9.2-1234"}`)
		v, err := LoadVersion(fs, path)
		require.NoError(t, err)
		assert.Equal(t, "v2.9.2", v.Release())
		assert.Equal(t, 9, v.Minor())
	})
}

func TestLoadIdentity(t *testing.T) {
	pp := "/home/operator/pathpilot.json"
	mj := "/home/operator/machine.json"

	t.Run("pathpilot.json", func(t *testing.T) {
		fs := filesystem.NewMemory()
		writeFile(t, fs, pp, `{"machine": {"model": "1100-3", "class": "mill", "rapidturn": false}}`)
		writeFile(t, fs, mj, `{"mdl": "770M+"}`)

		id, err := LoadIdentity(fs, pp, mj)
		require.NoError(t, err)
		assert.Equal(t, Identity{Model: "1100-3", Class: "mill", Source: pp}, id)
		assert.False(t, id.IsLathe())
	})

	t.Run("rapidturn counts as lathe", func(t *testing.T) {
		fs := filesystem.NewMemory()
		writeFile(t, fs, pp, `{"machine": {"model": "1100M+", "class": "mill", "rapidturn": true}}`)

		id, err := LoadIdentity(fs, pp, mj)
		require.NoError(t, err)
		assert.True(t, id.IsLathe())
	})

	t.Run("machine.json fallback", func(t *testing.T) {
		fs := filesystem.NewMemory()
		writeFile(t, fs, mj, `{"mdl": "1100-3"}`)

		id, err := LoadIdentity(fs, pp, mj)
		require.NoError(t, err)
		assert.Equal(t, "1100-3", id.Model)
		assert.Equal(t, ClassMill, id.Class)
		assert.Equal(t, mj, id.Source)
	})

	t.Run("both missing", func(t *testing.T) {
		fs := filesystem.NewMemory()
		_, err := LoadIdentity(fs, pp, mj)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound), "got %v", err)
	})

	t.Run("missing keys are listed", func(t *testing.T) {
		fs := filesystem.NewMemory()
		writeFile(t, fs, pp, `{"machine": {"model": "1100-3"}}`)

		_, err := LoadIdentity(fs, pp, mj)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMetadata))
		assert.Equal(t, []string{"machine.class", "machine.rapidturn"}, errors.GetErrorDetails(err)["keys"])
	})
}
