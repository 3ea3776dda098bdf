package transform

import (
	"github.com/pathpirate/pathpirate/pkg/marker"
)

// Role classifies a target file
type Role string

const (
	RoleConfig   Role = "config"
	RoleNetlist  Role = "netlist"
	RoleFirmware Role = "firmware"
	RoleResource Role = "resource"
	RoleScript   Role = "script"
)

// Target is a file a step edits
type Target struct {
	Role Role   `json:"role" yaml:"role"`
	Path string `json:"path" yaml:"path"`
}

// Outcome is the terminal state of one step
type Outcome string

const (
	// OutcomeApplied means the file was rewritten
	OutcomeApplied Outcome = "EDIT_APPLIED"
	// OutcomeSkipped means no rule found its pattern
	OutcomeSkipped Outcome = "EDIT_SKIPPED"
	// OutcomeAlreadyApplied means the marker or the reference content was present
	OutcomeAlreadyApplied Outcome = "ALREADY_APPLIED"
	// OutcomeFailed means a filesystem error stopped the step
	OutcomeFailed Outcome = "FAILED"
)

// Params are operator inputs substituted into templated rules
type Params struct {
	EncoderScale int `json:"encoder_scale" yaml:"encoder_scale"`
}

// Step is one file edit
type Step struct {
	Target Target
	// Marker gates the step. Empty for whole-file steps, whose
	// idempotence signal is byte equality with the reference.
	Marker marker.Marker
	Rules  []Rule
}

// Result reports what happened to one step
type Result struct {
	Path         string  `json:"path" yaml:"path"`
	Outcome      Outcome `json:"outcome" yaml:"outcome"`
	RulesApplied int     `json:"rules_applied" yaml:"rules_applied"`
	RulesSkipped int     `json:"rules_skipped" yaml:"rules_skipped"`
	Err          error   `json:"-" yaml:"-"`
}

// Changed reports whether the step wrote the file
func (r Result) Changed() bool {
	return r.Outcome == OutcomeApplied
}
