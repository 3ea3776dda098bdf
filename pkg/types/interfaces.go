package types

import (
	"io/fs"
)

// FS is the filesystem interface the patch engine works through.
// The filesystem is the only source of truth: nothing about applied
// transforms is kept in memory between calls.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Remove deletes a file or an empty directory
	Remove(name string) error
}
