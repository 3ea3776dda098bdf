package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFollowsSymlink(t *testing.T) {
	home := t.TempDir()
	versionDir := filepath.Join(home, "v2.9.2")
	require.NoError(t, os.MkdirAll(versionDir, 0755))
	require.NoError(t, os.Symlink(versionDir, filepath.Join(home, "tmc")))

	l, err := New(filesystem.NewOS(), Options{Home: home, Bundle: "/opt/pathpirate/files"})
	require.NoError(t, err)

	assert.Equal(t, home, l.Home())
	assert.Equal(t, filepath.Join(home, "tmc"), l.TmcLink())
	assert.Equal(t, versionDir, l.VersionDir())
	assert.Equal(t, "v2.9.2", l.VersionName())
	assert.Equal(t, filepath.Join(versionDir, "configs", "tormach_mill", "tormach_mill_base.ini"), l.Path(MillINI))
	assert.Equal(t, filepath.Join(home, "pathpilot.json"), l.HomePath(PathPilotJSON))
	assert.Equal(t, "/opt/pathpirate/files/MAXVEL_100.jpg", l.BundlePath("MAXVEL_100.jpg"))
}

func TestNewRelativeSymlink(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "v2.10.0"), 0755))
	require.NoError(t, os.Symlink("v2.10.0", filepath.Join(home, "tmc")))

	l, err := New(filesystem.NewOS(), Options{Home: home})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "v2.10.0"), l.VersionDir())
}

func TestNewPlainDirectory(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "tmc"), 0755))

	l, err := New(filesystem.NewOS(), Options{Home: home})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tmc"), l.VersionDir())
}

func TestNewMissingLink(t *testing.T) {
	_, err := New(filesystem.NewOS(), Options{Home: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound), "got %v", err)
}

func TestNewCustomLinkName(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/home/operator/v2.9.6", 0755))
	require.NoError(t, fs.Symlink("/home/operator/v2.9.6", "/home/operator/pathpilot"))

	l, err := New(fs, Options{Home: "/home/operator", TmcLink: "pathpilot"})
	require.NoError(t, err)
	assert.Equal(t, "/home/operator/v2.9.6", l.VersionDir())
	assert.Equal(t, "/home/operator/v2.9.6/bin/halshow", l.Path(HalshowScript))
	assert.Equal(t, "/home/operator/v2.9.5/version.json", l.PathIn("/home/operator/v2.9.5", VersionFile))
}

func TestConfigDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/etc/pathpirate")
		assert.Equal(t, "/etc/pathpirate", ConfigDir())
		assert.Equal(t, "/etc/pathpirate/config.toml", ConfigFile())
	})

	t.Run("xdg default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		assert.Equal(t, AppDirName, filepath.Base(ConfigDir()))
	})
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", homeDir},
		{"~/files", filepath.Join(homeDir, "files")},
		{"~other/files", "~other/files"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandHome(tt.in))
		})
	}
}
