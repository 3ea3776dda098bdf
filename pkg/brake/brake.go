// Package brake releases and re-engages the holding brake of a ClearPath
// servo through the running HAL, so the servo can be auto-tuned.
//
// Releasing the brake lets a vertical axis fall. Callers must show
// Warning and get the operator's agreement before calling Release.
package brake

import (
	"context"
	"fmt"

	"github.com/pathpirate/pathpirate/pkg/command"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/hal"
	"github.com/pathpirate/pathpirate/pkg/logging"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/session"
)

// Warning must be acknowledged before the brake is released
const Warning = `MANUALLY CONTROLLING THE SERVO BRAKE CAN BE EXTREMELY DANGEROUS!
ENSURE THAT THE SERVO MOTOR IS UNDER THE CONTROL OF THE TEKNIC
AUTO-TUNE SOFTWARE BEFORE PROCEEDING.
THE USE OF CRIBBING PLACED IN THE APPROPRIATE MANNER/POSITION
IS RECOMMENDED TO PREVENT THE AXIS FROM FREE FALLING.
ENSURE YOU UNDERSTAND THE RISKS AND TAKE THE PROPER STEPS TO MITIGATE THEM.
THE AUTHOR OF THIS SOFTWARE ACCEPTS NO RESPONSIBILITY WHATSOEVER FOR
ANY DAMAGES OR INJURIES INCURRED FROM THE USE OF THIS SOFTWARE.`

// estopAsserted is what "halcmd gets estop" prints while in E-STOP
const estopAsserted = "FALSE"

// model describes how the brake is wired on a machine model
type model struct {
	gpio string
	// hal is set for retrofitted models, whose HAL must carry pathpirate
	// edits
	hal string
}

var models = map[string]model{
	"1100-3":        {gpio: "024", hal: paths.MillHAL},
	"15L Slant-PRO": {gpio: "024", hal: paths.LatheHAL},
	"770M+":         {gpio: "023"},
	"770MX":         {gpio: "023"},
	"1100M+":        {gpio: "023"},
	"1100MX":        {gpio: "023"},
}

// Setup is the brake wiring of the connected machine
type Setup struct {
	Model string `json:"model" yaml:"model"`
	Board string `json:"board" yaml:"board"`
	GPIO  string `json:"gpio" yaml:"gpio"`
	Axis  string `json:"axis" yaml:"axis"`
}

func (s Setup) gpioPin() string {
	return fmt.Sprintf("hm2_%s.0.gpio.%s.out", s.Board, s.GPIO)
}

func (s Setup) pwmEnable() string {
	return fmt.Sprintf("hm2_%s.0.pwmgen.00.enable", s.Board)
}

func (s Setup) releaseSignal() string {
	return s.Axis + "-axis-brake-release"
}

// Controller drives the brake through halcmd
type Controller struct {
	session *session.Session
	hal     *hal.Client
	boards  []string
	halcmd  string
}

// New creates a Controller. halcmd defaults to bin/halcmd of the active
// version unless configured.
func New(s *session.Session, runner command.Runner) *Controller {
	halcmd := s.Layout.Path(paths.Halcmd)
	var boards []string
	if s.Config != nil {
		if s.Config.HAL.Halcmd != "" {
			halcmd = s.Config.HAL.Halcmd
		}
		boards = s.Config.HAL.Boards
	}
	if len(boards) == 0 {
		boards = []string{"5i25", "7i92", "7i92T"}
	}
	return &Controller{
		session: s,
		hal:     hal.New(runner, halcmd),
		boards:  boards,
		halcmd:  halcmd,
	}
}

// Prepare checks every precondition and detects the board. Nothing is
// changed in the HAL.
func (c *Controller) Prepare(ctx context.Context) (*Setup, error) {
	if err := c.checkInstall(); err != nil {
		return nil, err
	}
	setup, err := c.setupFor()
	if err != nil {
		return nil, err
	}
	if err := c.checkState(ctx); err != nil {
		return nil, err
	}

	board, err := c.detectBoard(ctx)
	if err != nil {
		return nil, err
	}
	setup.Board = board

	logger := logging.GetLogger("brake")
	logger.Info().
		Str("model", setup.Model).
		Str("board", setup.Board).
		Str("gpio", setup.GPIO).
		Str("axis", setup.Axis).
		Msg("Servo brake ready")
	return setup, nil
}

func (c *Controller) checkInstall() error {
	layout := c.session.Layout
	required := []string{
		layout.TmcLink(),
		layout.Path("bin"),
		c.halcmd,
		layout.Path(paths.VersionFile),
		layout.HomePath(paths.PathPilotJSON),
		layout.Path(paths.MillHAL),
	}
	var missing []string
	for _, p := range required {
		if _, err := c.session.FS.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrMissingFiles, "%d required file(s) missing, is PathPilot installed?", len(missing)).
			WithDetail("missing", missing)
	}

	if err := c.session.RequireVersion(); err != nil {
		return err
	}
	if !c.session.Version.Supported() {
		return errors.Newf(errors.ErrUnsupportedVersion, "PathPilot %s is not supported", c.session.Version).
			WithDetail("version", c.session.Version.String())
	}
	return c.session.RequireMachine()
}

func (c *Controller) setupFor() (*Setup, error) {
	id := c.session.Machine
	m, ok := models[id.Model]
	if !ok {
		return nil, errors.Newf(errors.ErrPrecondition, "machine model %s is unsupported", id.Model).
			WithDetail("model", id.Model)
	}

	if m.hal != "" {
		path := c.session.Layout.Path(m.hal)
		content, err := c.session.FS.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).WithDetail("path", path)
		}
		if !marker.Any(content) {
			return nil, errors.Newf(errors.ErrPrecondition,
				"machine model is %s but no servo or pathpirate config mods are present", id.Model).
				WithDetail("path", path)
		}
	}

	axis := "z"
	if id.IsLathe() {
		axis = "x"
	}
	return &Setup{Model: id.Model, GPIO: m.gpio, Axis: axis}, nil
}

// checkState requires PathPilot to be running and in E-STOP
func (c *Controller) checkState(ctx context.Context) error {
	state, err := c.hal.Get(ctx, "estop")
	if err != nil {
		return errors.Wrap(err, errors.ErrPrecondition, "PathPilot is not running")
	}
	if state != estopAsserted {
		return errors.New(errors.ErrPrecondition, "machine must be in E-STOP state").
			WithDetail("estop", state)
	}
	return nil
}

func (c *Controller) detectBoard(ctx context.Context) (string, error) {
	for _, b := range c.boards {
		if _, err := c.hal.GetPin(ctx, fmt.Sprintf("hm2_%s.0.gpio.001.out", b)); err == nil {
			return b, nil
		}
	}
	return "", errors.New(errors.ErrPrecondition, "no Mesa board found in the HAL").
		WithDetail("boards", c.boards)
}

// Release energizes the brake coil. The pwmgen enable is held high so
// the servo stays enabled while in E-STOP. Any failure aborts.
func (c *Controller) Release(ctx context.Context, s *Setup) error {
	logger := logging.GetLogger("brake")
	logger.Warn().Str("axis", s.Axis).Msg("Releasing servo brake")
	steps := []func() error{
		func() error { return c.hal.Unlink(ctx, s.pwmEnable()) },
		func() error { return c.hal.Set(ctx, s.pwmEnable(), "true") },
		func() error { return c.hal.Unlink(ctx, s.gpioPin()) },
		func() error { return c.hal.Set(ctx, s.gpioPin(), "true") },
	}
	return run(steps, "release")
}

// Engage de-energizes the brake coil and puts the pins back on the
// signals PathPilot drives them from
func (c *Controller) Engage(ctx context.Context, s *Setup) error {
	logger := logging.GetLogger("brake")
	logger.Info().Str("axis", s.Axis).Msg("Engaging servo brake")
	steps := []func() error{
		func() error { return c.hal.Set(ctx, s.gpioPin(), "false") },
		func() error { return c.hal.Link(ctx, s.gpioPin(), s.releaseSignal()) },
		func() error { return c.hal.Set(ctx, s.pwmEnable(), "false") },
		func() error { return c.hal.Link(ctx, s.pwmEnable(), "estop") },
	}
	return run(steps, "engage")
}

func run(steps []func() error, what string) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return errors.Wrapf(err, errors.ErrAborted, "brake %s aborted", what)
		}
	}
	return nil
}
