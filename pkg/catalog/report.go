package catalog

import (
	"github.com/pathpirate/pathpirate/pkg/transform"
)

// Asset sources
const (
	SourceNetwork = "network"
	SourceBundle  = "bundle"
)

// Report describes one transform run
type Report struct {
	ID        string             `json:"id" yaml:"id"`
	Transform string             `json:"transform" yaml:"transform"`
	Variant   string             `json:"variant,omitempty" yaml:"variant,omitempty"`
	Steps     []transform.Result `json:"steps" yaml:"steps"`
	Assets    []AssetResult      `json:"assets,omitempty" yaml:"assets,omitempty"`
	Copies    []CopyResult       `json:"copies,omitempty" yaml:"copies,omitempty"`
	Missing   []string           `json:"missing,omitempty" yaml:"missing,omitempty"`
	Warnings  []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AssetResult records where a downloaded asset came from
type AssetResult struct {
	Name   string `json:"name" yaml:"name"`
	Dest   string `json:"dest" yaml:"dest"`
	Source string `json:"source" yaml:"source"`
	// Written is false when the destination already held the same bytes
	Written bool `json:"written" yaml:"written"`
}

// CopyResult records one artifact copy
type CopyResult struct {
	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest" yaml:"dest"`
	// Copied is false when the destination already existed
	Copied bool `json:"copied" yaml:"copied"`
}

// Changed reports whether the run wrote anything
func (r *Report) Changed() bool {
	for _, a := range r.Assets {
		if a.Written {
			return true
		}
	}
	for _, s := range r.Steps {
		if s.Changed() {
			return true
		}
	}
	for _, c := range r.Copies {
		if c.Copied {
			return true
		}
	}
	return false
}

// Count returns how many steps ended with outcome
func (r *Report) Count(outcome transform.Outcome) int {
	n := 0
	for _, s := range r.Steps {
		if s.Outcome == outcome {
			n++
		}
	}
	return n
}
