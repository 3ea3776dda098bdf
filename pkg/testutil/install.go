package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/config"
	"github.com/pathpirate/pathpirate/pkg/filesystem"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/session"
	"github.com/pathpirate/pathpirate/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// InstallOptions describes the install to build
type InstallOptions struct {
	Version   string
	Model     string
	Class     string
	RapidTurn bool
	// LegacyMachineJSON writes machine.json instead of pathpilot.json
	LegacyMachineJSON bool
}

// Install is a fake PathPilot install
type Install struct {
	FS         types.FS
	Home       string
	VersionDir string
	Bundle     string
	Layout     *paths.Layout

	t *testing.T
}

// NewInstall builds an 1100-3 mill running v2.9.2 unless opts say otherwise
func NewInstall(t *testing.T, envType EnvType, opts InstallOptions) *Install {
	t.Helper()

	if opts.Version == "" {
		opts.Version = "v2.9.2"
	}
	if opts.Model == "" {
		opts.Model = "1100-3"
	}
	if opts.Class == "" {
		opts.Class = "mill"
	}

	var fs types.FS
	var root string
	switch envType {
	case EnvIsolated:
		fs = filesystem.NewOS()
		root = t.TempDir()
	default:
		fs = filesystem.NewMemory()
		root = "/test"
	}

	home := filepath.Join(root, "home", "operator")
	i := &Install{
		FS:         fs,
		Home:       home,
		VersionDir: filepath.Join(home, opts.Version),
		Bundle:     filepath.Join(root, "opt", "pathpirate", "files"),
		t:          t,
	}

	require.NoError(t, fs.MkdirAll(i.VersionDir, 0755))
	require.NoError(t, fs.Symlink(i.VersionDir, filepath.Join(home, paths.DefaultTmcLink)))

	i.writeJSON(paths.VersionFile, i.VersionDir, map[string]interface{}{"version": opts.Version})
	if opts.LegacyMachineJSON {
		i.writeJSON(paths.MachineJSON, home, map[string]interface{}{"mdl": opts.Model})
	} else {
		i.writeJSON(paths.PathPilotJSON, home, map[string]interface{}{
			"machine": map[string]interface{}{
				"model":     opts.Model,
				"class":     opts.Class,
				"rapidturn": opts.RapidTurn,
			},
		})
	}

	i.Write(paths.MillINI, MillINI)
	i.Write(paths.MillHAL, MillHAL)
	i.Write(paths.LatheHAL, LatheHAL)
	i.Write(paths.Console3AxisHAL, ConsoleHAL)
	i.Write(paths.Console4AxisHAL, ConsoleHAL)
	i.Write(paths.UICommon, UICommon)
	i.WriteBytes(paths.MaxVelImage, MaxVelImage)
	i.WriteMode(paths.HalshowScript, HalshowLauncher, 0755)
	i.WriteMode(paths.Halcmd, "#!/bin/sh\n", 0755)
	require.NoError(t, fs.MkdirAll(filepath.Join(i.VersionDir, paths.MesaDir), 0755))
	i.WriteBytes(filepath.Join(paths.MesaDir, "tormach_mill3.bit"), []byte("stock"))

	i.WriteBundle("MAXVEL_100.jpg", RapidImage)
	i.WriteBundle("5i25_t2_7i85s_dpll.bit", Bitfile)
	i.WriteBundle("v2.10/5i25_t2_7i85s_dpll.bit", BitfileV10)
	i.WriteBundle("halshow.tcl", []byte(HalshowTcl))
	i.WriteBundle("cbutton.tcl", []byte(CbuttonTcl))

	layout, err := paths.New(fs, paths.Options{Home: home, Bundle: i.Bundle})
	require.NoError(t, err)
	i.Layout = layout
	return i
}

func (i *Install) writeJSON(name, dir string, v interface{}) {
	data, err := json.Marshal(v)
	require.NoError(i.t, err)
	require.NoError(i.t, i.FS.WriteFile(filepath.Join(dir, name), data, 0644))
}

// Path returns rel inside the version directory
func (i *Install) Path(rel string) string {
	return filepath.Join(i.VersionDir, filepath.FromSlash(rel))
}

// BundlePath returns rel inside the bundle
func (i *Install) BundlePath(rel string) string {
	return filepath.Join(i.Bundle, filepath.FromSlash(rel))
}

// Write writes a text file inside the version directory
func (i *Install) Write(rel, content string) {
	i.WriteMode(rel, content, 0644)
}

// WriteMode writes a text file with the given mode
func (i *Install) WriteMode(rel, content string, mode os.FileMode) {
	i.t.Helper()
	path := i.Path(rel)
	require.NoError(i.t, i.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(i.t, i.FS.WriteFile(path, []byte(content), mode))
}

// WriteBytes writes a binary file inside the version directory
func (i *Install) WriteBytes(rel string, data []byte) {
	i.t.Helper()
	path := i.Path(rel)
	require.NoError(i.t, i.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(i.t, i.FS.WriteFile(path, data, 0644))
}

// WriteBundle writes a file into the bundle
func (i *Install) WriteBundle(rel string, data []byte) {
	i.t.Helper()
	path := i.BundlePath(rel)
	require.NoError(i.t, i.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(i.t, i.FS.WriteFile(path, data, 0644))
}

// Read returns a file inside the version directory
func (i *Install) Read(rel string) string {
	i.t.Helper()
	data, err := i.FS.ReadFile(i.Path(rel))
	require.NoError(i.t, err)
	return string(data)
}

// Exists reports whether path exists
func (i *Install) Exists(path string) bool {
	_, err := i.FS.Stat(path)
	return err == nil
}

// Remove deletes path, which must exist
func (i *Install) Remove(path string) {
	i.t.Helper()
	require.NoError(i.t, i.FS.Remove(path))
}

// Snapshot reads every regular file under the version directory
func (i *Install) Snapshot() map[string]string {
	i.t.Helper()
	files := make(map[string]string)
	i.walk(i.VersionDir, files)
	return files
}

func (i *Install) walk(dir string, files map[string]string) {
	entries, err := i.FS.ReadDir(dir)
	require.NoError(i.t, err)
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			i.walk(path, files)
			continue
		}
		data, err := i.FS.ReadFile(path)
		require.NoError(i.t, err)
		files[path] = string(data)
	}
}

// Session creates a session over the install with default configuration
func (i *Install) Session() *session.Session {
	i.t.Helper()
	cfg, err := config.Default()
	require.NoError(i.t, err)
	return session.New(i.FS, i.Layout, cfg)
}
