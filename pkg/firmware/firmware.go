// Package firmware verifies and writes Mesa FPGA bitfiles.
package firmware

import (
	"context"
	"strings"

	"github.com/pathpirate/pathpirate/pkg/command"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
)

// Flasher checks and writes the bitfile held in the board's flash
type Flasher interface {
	// Verify reports whether the board holds file
	Verify(ctx context.Context, file string, progress func(string)) (bool, error)
	// Flash writes file to the board
	Flash(ctx context.Context, file string, progress func(string)) error
}

// verifyMismatch is printed by mesaflash when the flash differs from the file
const verifyMismatch = "verify error"

// Mesaflash drives the mesaflash command line tool
type Mesaflash struct {
	runner command.Runner
	tool   string
	device string
}

// NewMesaflash creates a Flasher for device using the tool binary
func NewMesaflash(runner command.Runner, tool, device string) *Mesaflash {
	return &Mesaflash{runner: runner, tool: tool, device: device}
}

func (m *Mesaflash) Verify(ctx context.Context, file string, progress func(string)) (bool, error) {
	logger := logging.GetLogger("firmware").With().Str("file", file).Str("device", m.device).Logger()

	mismatch := false
	err := m.runner.Stream(ctx, func(line string) {
		if strings.Contains(strings.ToLower(line), verifyMismatch) {
			mismatch = true
		}
		progress(line)
	}, m.tool, "--device", m.device, "--verify", file)

	if mismatch {
		logger.Info().Msg("Board firmware differs")
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrExternalProcess, "%s --verify failed", m.tool)
	}
	logger.Info().Msg("Board firmware matches")
	return true, nil
}

func (m *Mesaflash) Flash(ctx context.Context, file string, progress func(string)) error {
	logger := logging.GetLogger("firmware").With().Str("file", file).Str("device", m.device).Logger()
	logger.Info().Msg("Writing firmware")

	err := m.runner.Stream(ctx, progress, m.tool, "--device", m.device, "--write", file)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExternalProcess, "%s --write failed", m.tool)
	}
	logger.Info().Msg("Firmware written")
	return nil
}
