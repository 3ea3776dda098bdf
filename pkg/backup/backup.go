// Package backup keeps one pristine copy of every file pathpirate edits.
//
// The backup of a file lives next to it as <path>.bak. It is written
// before the first edit and never overwritten, so it always holds the
// content the file had before pathpirate first touched it. No state is
// kept in memory; the presence of the .bak file is the whole record.
package backup

import (
	"os"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// Store creates and restores backups through a filesystem
type Store struct {
	fs types.FS
}

// New creates a Store over fs
func New(fs types.FS) *Store {
	return &Store{fs: fs}
}

// BackupPath returns the backup location for path
func BackupPath(path string) string {
	return path + paths.BackupSuffix
}

// HasBackup reports whether a backup of path exists
func (s *Store) HasBackup(path string) bool {
	_, err := s.fs.Stat(BackupPath(path))
	return err == nil
}

// EnsureBackup copies path to its backup location unless a backup
// already exists. A missing source is not an error.
func (s *Store) EnsureBackup(path string) error {
	logger := logging.GetLogger("backup").With().Str("path", path).Logger()
	bak := BackupPath(path)

	if _, err := s.fs.Stat(bak); err == nil {
		logger.Debug().Msg("Backup already exists")
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrBackup, "failed to check backup %s", bak)
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Msg("Nothing to back up")
			return nil
		}
		return errors.Wrapf(err, errors.ErrBackup, "failed to stat %s", path)
	}

	if err := copyFile(s.fs, path, bak, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", path).WithDetail("path", path)
	}

	logger.Info().Str("backup", bak).Msg("Backup created")
	return nil
}

// Restore copies the backup over path and deletes the backup. It
// reports false, with no error, when there is no backup.
func (s *Store) Restore(path string) (bool, error) {
	logger := logging.GetLogger("backup").With().Str("path", path).Logger()
	bak := BackupPath(path)

	info, err := s.fs.Stat(bak)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrRestore, "failed to stat %s", bak)
	}

	if err := copyFile(s.fs, bak, path, info.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, errors.ErrRestore, "failed to restore %s", path).WithDetail("path", path)
	}
	if err := s.fs.Remove(bak); err != nil {
		return true, errors.Wrapf(err, errors.ErrRestore, "restored %s but failed to remove %s", path, bak).
			WithDetail("path", path)
	}

	logger.Info().Msg("Restored from backup")
	return true, nil
}

// CopyFile copies src to dst, keeping the source file mode
func CopyFile(fs types.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}
	return copyFile(fs, src, dst, info.Mode().Perm())
}

func copyFile(fs types.FS, src, dst string, perm os.FileMode) error {
	data, err := fs.ReadFile(src)
	if err != nil {
		return err
	}
	return fs.WriteFile(dst, data, perm)
}
