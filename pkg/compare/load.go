package compare

import (
	"path/filepath"
	"strings"

	"github.com/pathpirate/pathpirate/pkg/backup"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// Kind is a comparable file
type Kind string

const (
	KindINI Kind = "ini"
	KindHAL Kind = "hal"
)

// Kinds lists every comparable file
var Kinds = []Kind{KindINI, KindHAL}

// Rel returns the version-relative path of the file
func (k Kind) Rel() (string, error) {
	switch Kind(strings.ToLower(string(k))) {
	case KindINI:
		return paths.MillINI, nil
	case KindHAL:
		return paths.MillHAL, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown file kind %q, expected ini or hal", string(k))
	}
}

// ResolvePrevious validates the previous version directory chosen by the
// operator. Its basename must look like a PathPilot version (contain
// "v2") and it must not be the active version.
func ResolvePrevious(fs types.FS, layout *paths.Layout, dir string) (string, error) {
	if dir == "" {
		return "", errors.New(errors.ErrInvalidInput, "a previous version directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid directory %s", dir)
	}
	// A bare version name is looked up in the operator home
	if !strings.ContainsRune(dir, filepath.Separator) {
		if inHome := layout.HomePath(dir); exists(fs, inHome) {
			abs = inHome
		}
	}

	if filepath.Clean(abs) == filepath.Clean(layout.VersionDir()) {
		return "", errors.New(errors.ErrInvalidInput, "previous and current directories are the same").
			WithDetail("path", abs)
	}
	if !strings.Contains(filepath.Base(abs), "v2") {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is not a PathPilot version directory (v2.X.X)", abs).
			WithDetail("path", abs)
	}
	info, err := fs.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrNotFound, "directory %s not found", abs).WithDetail("path", abs)
	}
	return abs, nil
}

func exists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// Load reads both sides of a comparison. The previous version's backup is
// preferred when it exists, so earlier pathpirate edits do not show up as
// differences. Every missing file is listed in the error.
func Load(fs types.FS, layout *paths.Layout, previous string, kind Kind) (Snapshot, Snapshot, error) {
	rel, err := kind.Rel()
	if err != nil {
		return Snapshot{}, Snapshot{}, err
	}

	old := Snapshot{Label: filepath.Base(previous), Path: layout.PathIn(previous, rel)}
	if bak := backup.BackupPath(old.Path); exists(fs, bak) {
		old.Path = bak
		old.FromBackup = true
	}
	cur := Snapshot{Label: layout.VersionName(), Path: layout.Path(rel)}

	var missing []string
	for _, p := range []string{old.Path, cur.Path} {
		if !exists(fs, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return old, cur, errors.Newf(errors.ErrMissingFiles, "%d file(s) missing", len(missing)).
			WithDetail("missing", missing)
	}

	for _, s := range []*Snapshot{&old, &cur} {
		data, err := fs.ReadFile(s.Path)
		if err != nil {
			return old, cur, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", s.Path).
				WithDetail("path", s.Path)
		}
		s.Content = string(data)
	}
	return old, cur, nil
}
