package catalog

import (
	"bytes"
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/pathpirate/pathpirate/pkg/backup"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/fetch"
	"github.com/pathpirate/pathpirate/pkg/logging"
	"github.com/pathpirate/pathpirate/pkg/session"
	"github.com/pathpirate/pathpirate/pkg/transform"
	"github.com/pathpirate/pathpirate/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Runner executes catalog transforms against an install
type Runner struct {
	fs      types.FS
	fetcher fetch.Fetcher
	applier *transform.Applier
}

// NewRunner creates a Runner. fetcher may be nil, in which case assets
// always come from the bundle.
func NewRunner(fs types.FS, fetcher fetch.Fetcher) *Runner {
	return &Runner{fs: fs, fetcher: fetcher, applier: transform.NewApplier(fs)}
}

// Apply runs the transform registered as name. The returned report is
// non-nil whenever the transform was found, including on failure, and
// lists what happened up to the failure. The session flags are set from
// what changed.
func (r *Runner) Apply(ctx context.Context, s *session.Session, name string, params transform.Params) (*Report, error) {
	t, err := Get(name)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("catalog").With().Str("transform", name).Logger()
	report := &Report{ID: uuid.NewString(), Transform: name}
	defer func() {
		if report.Changed() {
			s.MarkRestart()
		}
	}()

	cfg, err := withDefaults(s.Config)
	if err != nil {
		return report, err
	}
	if params.EncoderScale == 0 {
		params.EncoderScale = cfg.Encoder.Scale
	}

	pc := PlanContext{Layout: s.Layout, Config: cfg, Params: params}
	if t.NeedsVariant {
		v, err := r.variant(s)
		if err != nil {
			return report, err
		}
		report.Variant = v.Name
		pc.Variant = &v
	}

	plan, err := t.Plan(pc)
	if err != nil {
		return report, err
	}

	if missing := r.missing(plan.Required); len(missing) > 0 {
		report.Missing = missing
		logger.Error().Strs("missing", missing).Msg("Required files missing, nothing changed")
		return report, errors.Newf(errors.ErrMissingFiles, "%d required file(s) missing", len(missing)).
			WithDetail("missing", missing)
	}

	// Assets are resolved before anything is created so a missing
	// bundled copy aborts with the install untouched.
	fetched, err := r.obtainAssets(ctx, plan.Assets, report)
	if err != nil {
		return report, err
	}

	for _, dir := range plan.Dirs {
		if err := r.fs.MkdirAll(dir, 0755); err != nil {
			return report, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
				WithDetail("path", dir)
		}
	}

	if err := r.placeAssets(fetched, report); err != nil {
		return report, err
	}

	for _, step := range plan.Steps {
		res := r.applier.Apply(step, params)
		report.Steps = append(report.Steps, res)
		if res.Err != nil {
			return report, res.Err
		}
	}

	for _, c := range plan.Copies {
		res, err := r.copyArtifact(c)
		if err != nil {
			return report, err
		}
		report.Copies = append(report.Copies, res)
		if res.Copied && c.PowerCycle {
			s.MarkPowerCycle()
		}
	}

	logger.Info().
		Int("applied", report.Count(transform.OutcomeApplied)).
		Int("already", report.Count(transform.OutcomeAlreadyApplied)).
		Int("skipped", report.Count(transform.OutcomeSkipped)).
		Msg("Transform finished")
	return report, nil
}

func (r *Runner) variant(s *session.Session) (Variant, error) {
	if err := s.RequireMachine(); err != nil {
		return Variant{}, err
	}
	if err := s.RequireVersion(); err != nil {
		return Variant{}, err
	}
	return ResolveVariant(s.Machine.Model, s.Version.Minor())
}

func (r *Runner) missing(required []string) []string {
	var missing []string
	for _, path := range required {
		if _, err := r.fs.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	return missing
}

type fetchedAsset struct {
	Asset
	data   []byte
	perm   os.FileMode
	source string
}

// obtainAssets downloads every asset when online. If any download fails,
// or the network is down, all assets are read from the bundle instead.
// Nothing is written.
func (r *Runner) obtainAssets(ctx context.Context, assets []Asset, report *Report) ([]fetchedAsset, error) {
	if len(assets) == 0 {
		return nil, nil
	}
	logger := logging.GetLogger("catalog")

	if r.fetcher != nil && r.fetcher.Online(ctx) {
		data, err := r.download(ctx, assets)
		if err == nil {
			out := make([]fetchedAsset, len(assets))
			for i, a := range assets {
				out[i] = fetchedAsset{Asset: a, data: data[i], perm: 0644, source: SourceNetwork}
			}
			return out, nil
		}
		logger.Warn().Err(err).Msg("Download failed, using bundled copies")
		report.Warnings = append(report.Warnings, "Download failed, using bundled copies: "+errors.Cause(err).Error())
	} else {
		logger.Info().Msg("No internet connection found, using bundled copies")
		report.Warnings = append(report.Warnings, "No internet connection found, using bundled copies")
	}

	fallbacks := make([]string, len(assets))
	for i, a := range assets {
		fallbacks[i] = a.Fallback
	}
	if missing := r.missing(fallbacks); len(missing) > 0 {
		report.Missing = missing
		logger.Error().Strs("missing", missing).Msg("Bundled files missing, nothing changed")
		return nil, errors.Newf(errors.ErrMissingFiles, "%d bundled file(s) missing", len(missing)).
			WithDetail("missing", missing)
	}

	out := make([]fetchedAsset, len(assets))
	for i, a := range assets {
		info, err := r.fs.Stat(a.Fallback)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", a.Fallback).
				WithDetail("path", a.Fallback)
		}
		data, err := r.fs.ReadFile(a.Fallback)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", a.Fallback).
				WithDetail("path", a.Fallback)
		}
		out[i] = fetchedAsset{Asset: a, data: data, perm: info.Mode().Perm(), source: SourceBundle}
	}
	return out, nil
}

// placeAssets writes each asset whose destination differs from it
func (r *Runner) placeAssets(assets []fetchedAsset, report *Report) error {
	for _, a := range assets {
		res := AssetResult{Name: a.Name, Dest: a.Dest, Source: a.source}
		if current, err := r.fs.ReadFile(a.Dest); err == nil && bytes.Equal(current, a.data) {
			report.Assets = append(report.Assets, res)
			continue
		}
		if err := r.fs.WriteFile(a.Dest, a.data, a.perm); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", a.Dest).
				WithDetail("path", a.Dest)
		}
		res.Written = true
		report.Assets = append(report.Assets, res)
	}
	return nil
}

// download fetches every asset concurrently. Nothing is written.
func (r *Runner) download(ctx context.Context, assets []Asset) ([][]byte, error) {
	data := make([][]byte, len(assets))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range assets {
		i, a := i, a
		g.Go(func() error {
			b, err := r.fetcher.Fetch(gctx, a.URL)
			if err != nil {
				return err
			}
			data[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Runner) copyArtifact(c Copy) (CopyResult, error) {
	res := CopyResult{Source: c.Source, Dest: c.Dest}
	if _, err := r.fs.Stat(c.Dest); err == nil {
		logger := logging.GetLogger("catalog")
		logger.Info().Str("dest", c.Dest).Msg("Artifact already present")
		return res, nil
	} else if !os.IsNotExist(err) {
		return res, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", c.Dest).
			WithDetail("path", c.Dest)
	}

	if err := backup.CopyFile(r.fs, c.Source, c.Dest); err != nil {
		return res, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", c.Source, c.Dest).
			WithDetail("path", c.Dest)
	}
	res.Copied = true
	logger := logging.GetLogger("catalog")
	logger.Info().Str("source", c.Source).Str("dest", c.Dest).Msg("Artifact copied")
	return res, nil
}
