package catalog

import (
	"github.com/pathpirate/pathpirate/pkg/config"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/registry"
	"github.com/pathpirate/pathpirate/pkg/transform"
)

// Transform is one named, idempotent change to a PathPilot install
type Transform struct {
	Name    string
	Summary string
	// Description is markdown shown by describe
	Description string
	// Marker is written into every text line the transform edits. Empty
	// for transforms that only replace whole files.
	Marker       marker.Marker
	NeedsVariant bool
	// Targets are the version-relative files the transform may back up,
	// in the order revert restores them
	Targets []string
	// Dirs are version-relative directories the transform creates
	Dirs []string

	artifacts func(cfg *config.Config) []string
	plan      func(pc PlanContext) (*Plan, error)
}

// PlanContext is what a transform needs to lay out its work
type PlanContext struct {
	Layout  *paths.Layout
	Config  *config.Config
	Variant *Variant
	Params  transform.Params
}

// Plan is the concrete work of one transform against one install
type Plan struct {
	// Required files are all checked before anything is written
	Required []string
	Dirs     []string
	Assets   []Asset
	Steps    []transform.Step
	Copies   []Copy
}

// Asset is a file downloaded into the install, with a bundled fallback
type Asset struct {
	Name     string
	URL      string
	Dest     string
	Fallback string
}

// Copy places a bundled artifact in the install. An existing destination
// is left alone.
type Copy struct {
	Source string
	Dest   string
	// PowerCycle is set for FPGA bitfiles, which load at power on
	PowerCycle bool
}

// Plan lays out the work for pc. A nil pc.Config plans with the
// built-in defaults.
func (t *Transform) Plan(pc PlanContext) (*Plan, error) {
	cfg, err := withDefaults(pc.Config)
	if err != nil {
		return nil, err
	}
	pc.Config = cfg
	return t.plan(pc)
}

// Artifacts returns the version-relative files the transform creates
// that have no backup, and are deleted on revert
func (t *Transform) Artifacts(cfg *config.Config) []string {
	if t.artifacts == nil {
		return nil
	}
	cfg, err := withDefaults(cfg)
	if err != nil {
		return nil
	}
	return t.artifacts(cfg)
}

func withDefaults(cfg *config.Config) (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	return config.Default()
}

var transforms = registry.New[*Transform]()

func init() {
	for _, t := range []*Transform{
		addHalshow(),
		convertSlider(),
		addEncoder(),
		addServos(),
	} {
		registry.MustRegister(transforms, t.Name, t)
	}
}

// Get returns the transform registered as name
func Get(name string) (*Transform, error) {
	t, err := transforms.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTransformNotFound, "unknown transform %q", name).
			WithDetail("available", transforms.Names())
	}
	return t, nil
}

// All returns every transform in catalog order
func All() []*Transform {
	return transforms.All()
}

// Names returns every transform name in catalog order
func Names() []string {
	return transforms.Names()
}

// Targets returns every file any transform backs up, in catalog order
// without duplicates
func Targets() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range transforms.All() {
		for _, rel := range t.Targets {
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}
	return out
}

// Artifacts returns every file any transform creates without a backup
func Artifacts(cfg *config.Config) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range transforms.All() {
		for _, rel := range t.Artifacts(cfg) {
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}
	return out
}

// Dirs returns every directory any transform creates
func Dirs() []string {
	var out []string
	for _, t := range transforms.All() {
		out = append(out, t.Dirs...)
	}
	return out
}
