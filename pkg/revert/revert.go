// Package revert undoes every catalog transform on the active install.
package revert

import (
	"github.com/pathpirate/pathpirate/pkg/backup"
	"github.com/pathpirate/pathpirate/pkg/catalog"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
	"github.com/pathpirate/pathpirate/pkg/session"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// Result describes what a revert did
type Result struct {
	Changed        bool     `json:"changed" yaml:"changed"`
	HalshowRemoved bool     `json:"halshow_removed" yaml:"halshow_removed"`
	Restored       []string `json:"restored" yaml:"restored"`
	Removed        []string `json:"removed" yaml:"removed"`
	Failed         []string `json:"failed,omitempty" yaml:"failed,omitempty"`
	Warnings       []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Engine restores backups and removes synthesized artifacts
type Engine struct {
	session *session.Session
	backups *backup.Store
}

// New creates an Engine over the session's filesystem and layout
func New(s *session.Session) *Engine {
	return &Engine{session: s, backups: backup.New(s.FS)}
}

// RevertAll restores every catalog target that has a backup, deletes the
// files transforms created, and removes the directories they made when
// empty. Any subset of backups may be missing. Failing to remove a
// directory is a warning. A file that cannot be restored or removed is
// recorded and the rest are still processed; the returned error then
// lists every such file.
func (e *Engine) RevertAll() (*Result, error) {
	logger := logging.GetLogger("revert")
	fs := e.session.FS
	layout := e.session.Layout
	result := &Result{}
	defer func() {
		if result.Changed {
			e.session.MarkRestart()
		}
	}()

	for _, rel := range catalog.Targets() {
		path := layout.Path(rel)
		restored, err := e.backups.Restore(path)
		if err != nil {
			e.fail(result, path, err)
		}
		if restored {
			result.Restored = append(result.Restored, path)
			result.Changed = true
		}
	}

	for _, rel := range catalog.Artifacts(e.session.Config) {
		path := layout.Path(rel)
		if _, err := fs.Stat(path); err != nil {
			continue
		}
		if err := fs.Remove(path); err != nil {
			e.fail(result, path, errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", path))
			continue
		}
		logger.Info().Str("path", path).Msg("Removed")
		result.Removed = append(result.Removed, path)
		result.Changed = true
	}

	for _, rel := range catalog.Dirs() {
		path := layout.Path(rel)
		if _, err := fs.Lstat(path); err != nil {
			continue
		}
		if err := removeEmptyDir(fs, path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Directory left in place")
			result.Warnings = append(result.Warnings, errors.Cause(err).Error())
			continue
		}
		result.HalshowRemoved = true
		result.Changed = true
	}

	logger.Info().
		Int("restored", len(result.Restored)).
		Int("removed", len(result.Removed)).
		Int("failed", len(result.Failed)).
		Msg("Revert finished")
	if len(result.Failed) > 0 {
		return result, errors.Newf(errors.ErrRestore, "%d file(s) could not be reverted", len(result.Failed)).
			WithDetail("failed", result.Failed)
	}
	return result, nil
}

func (e *Engine) fail(result *Result, path string, err error) {
	logger := logging.GetLogger("revert")
	logger.Error().Err(err).Str("path", path).Msg("Revert failed for file")
	result.Failed = append(result.Failed, path)
	result.Warnings = append(result.Warnings, err.Error())
}

// removeEmptyDir removes dir only when it has no entries, the way rmdir
// does
func removeEmptyDir(fs types.FS, dir string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return errors.Newf(errors.ErrFileRemove, "%s is not empty", dir).WithDetail("path", dir)
	}
	return fs.Remove(dir)
}
