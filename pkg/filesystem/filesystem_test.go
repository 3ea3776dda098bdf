package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fs types.FS, root string) {
	t.Helper()

	testFile := filepath.Join(root, "tormach_mill_base.ini")
	testContent := []byte("[TRAJ]\nMAX_VELOCITY = 3.0\n")

	require.NoError(t, fs.MkdirAll(root, 0755))
	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "tormach_mill_base.ini", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	_, err = fs.ReadFile(root)
	assert.Error(t, err, "reading a directory should fail")

	subDir := filepath.Join(root, "tcl", "bin")
	require.NoError(t, fs.MkdirAll(subDir, 0755))
	require.NoError(t, fs.WriteFile(filepath.Join(subDir, "halshow.tcl"), []byte("tcl"), 0644))

	entries, err := fs.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	assert.Error(t, fs.Remove(subDir), "non-empty directory must not be removed")
	require.NoError(t, fs.Remove(filepath.Join(subDir, "halshow.tcl")))
	require.NoError(t, fs.Remove(subDir))

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS(t *testing.T) {
	fs := NewOS()
	require.NotNil(t, fs)
	exerciseFS(t, fs, filepath.Join(t.TempDir(), "configs"))
}

func TestNewMemory(t *testing.T) {
	fs := NewMemory()
	require.NotNil(t, fs)
	exerciseFS(t, fs, "/virtual/configs")
}

func TestOSSymlink(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	target := filepath.Join(dir, "v2.9.2")
	link := filepath.Join(dir, "tmc")

	require.NoError(t, fs.MkdirAll(target, 0755))
	require.NoError(t, fs.Symlink(target, link))

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestMemorySymlinkSimulation(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/home/operator", 0755))
	require.NoError(t, fs.Symlink("/home/operator/v2.10.0", "/home/operator/tmc"))

	got, err := fs.Readlink("/home/operator/tmc")
	require.NoError(t, err)
	assert.Equal(t, "/home/operator/v2.10.0", got)
}
