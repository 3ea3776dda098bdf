// Package session carries the state one pathpirate invocation shares
// between the catalog, the revert engine and the CLI.
package session

import (
	"github.com/pathpirate/pathpirate/pkg/config"
	"github.com/pathpirate/pathpirate/pkg/machine"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// Exit notices
const (
	NoticeRestart    = "PathPilot must be restarted for the changes to take effect."
	NoticePowerCycle = "The machine must be power cycled for the new FPGA bitfile to load."
)

// Session is the process-lifetime context of one invocation. The two
// flags are only ever set, never cleared, and are read once at exit.
type Session struct {
	FS     types.FS
	Layout *paths.Layout
	Config *config.Config

	Machine machine.Identity
	Version machine.Version

	// machineErr and versionErr hold metadata load failures so commands
	// that do not need them can still run.
	machineErr error
	versionErr error

	RestartRequired    bool
	PowerCycleRequired bool
}

// New creates a session and loads the machine metadata. Metadata errors
// are recorded, not returned; see RequireMachine and RequireVersion.
func New(fs types.FS, layout *paths.Layout, cfg *config.Config) *Session {
	s := &Session{FS: fs, Layout: layout, Config: cfg}
	s.Machine, s.machineErr = machine.LoadIdentity(fs,
		layout.HomePath(paths.PathPilotJSON), layout.HomePath(paths.MachineJSON))
	s.Version, s.versionErr = machine.LoadVersion(fs, layout.Path(paths.VersionFile))
	return s
}

// RequireMachine returns the error encountered loading the machine identity
func (s *Session) RequireMachine() error {
	return s.machineErr
}

// RequireVersion returns the error encountered loading the version
func (s *Session) RequireVersion() error {
	return s.versionErr
}

// MarkRestart records that persisted configuration changed
func (s *Session) MarkRestart() {
	s.RestartRequired = true
}

// MarkPowerCycle records that a new FPGA bitfile needs a power cycle to load
func (s *Session) MarkPowerCycle() {
	s.RestartRequired = true
	s.PowerCycleRequired = true
}

// ExitNotice is the message shown when the process ends, or "" when
// nothing needs to happen.
func (s *Session) ExitNotice() string {
	switch {
	case s.PowerCycleRequired:
		return NoticePowerCycle
	case s.RestartRequired:
		return NoticeRestart
	default:
		return ""
	}
}
