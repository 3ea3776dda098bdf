package transform

import (
	"bytes"
	"os"

	"github.com/pathpirate/pathpirate/pkg/backup"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// Applier runs steps against a filesystem
type Applier struct {
	fs      types.FS
	backups *backup.Store
}

// NewApplier creates an Applier over fs
func NewApplier(fs types.FS) *Applier {
	return &Applier{fs: fs, backups: backup.New(fs)}
}

// Apply runs one step. The file is read once, rewritten in memory by each
// rule in order, backed up if it is about to change, and written once.
func (a *Applier) Apply(step Step, params Params) Result {
	path := step.Target.Path
	logger := logging.GetLogger("transform").With().
		Str("path", path).
		Str("marker", string(step.Marker)).
		Logger()

	result := Result{Path: path}
	fail := func(err error) Result {
		result.Outcome = OutcomeFailed
		result.Err = err
		logger.Error().Err(err).Msg("Step failed")
		return result
	}

	info, err := a.fs.Stat(path)
	if err != nil {
		return fail(errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", path).WithDetail("path", path))
	}
	content, err := a.fs.ReadFile(path)
	if err != nil {
		return fail(errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).WithDetail("path", path))
	}

	if marker.Contains(content, step.Marker) {
		result.Outcome = OutcomeAlreadyApplied
		logger.Info().Msg("Modifications already present")
		return result
	}

	env := Env{FS: a.fs, Marker: step.Marker, Params: params}
	updated := content
	for _, rule := range step.Rules {
		change, err := rule.Apply(updated, env)
		if err != nil {
			return fail(errors.Wrapf(err, errors.ErrTransformRule, "failed to apply %s rule to %s", rule.Kind(), path).
				WithDetail("path", path))
		}
		updated = change.Content
		result.RulesApplied += change.Applied
		result.RulesSkipped += change.Skipped
	}

	if bytes.Equal(updated, content) {
		if step.Marker == "" {
			result.Outcome = OutcomeAlreadyApplied
			logger.Info().Msg("File already matches its reference")
		} else {
			result.Outcome = OutcomeSkipped
			logger.Info().Int("rules", len(step.Rules)).Msg("No pattern found, nothing changed")
		}
		return result
	}

	if err := a.backups.EnsureBackup(path); err != nil {
		return fail(err)
	}
	if err := a.fs.WriteFile(path, updated, perm(info)); err != nil {
		return fail(errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).WithDetail("path", path))
	}

	result.Outcome = OutcomeApplied
	logger.Info().
		Int("applied", result.RulesApplied).
		Int("skipped", result.RulesSkipped).
		Msg("File modified")
	return result
}

func perm(info os.FileInfo) os.FileMode {
	if p := info.Mode().Perm(); p != 0 {
		return p
	}
	return 0644
}
