// Package command runs external programs such as halcmd and mesaflash.
package command

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
)

// maxLineSize bounds one line of streamed output
const maxLineSize = 1 << 20

// Output is what a finished program printed
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs external programs
type Runner interface {
	// Run waits for the program and returns its output. A non-zero exit is
	// an error; the output is still returned.
	Run(ctx context.Context, name string, args ...string) (Output, error)
	// Stream calls line for every line the program writes to stdout or
	// stderr, as it writes them.
	Stream(ctx context.Context, line func(string), name string, args ...string) error
}

// Exec is the os/exec Runner
type Exec struct {
	// Dir is the working directory. Empty means the current one.
	Dir string
}

// NewExec creates an Exec runner
func NewExec(dir string) *Exec {
	return &Exec{Dir: dir}
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) (Output, error) {
	logger := logging.GetLogger("command")
	logger.Debug().Str("cmd", name).Strs("args", args).Msg("Running")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return out, errors.Wrapf(err, errors.ErrExternalProcess, "%s %s failed: %s",
			name, strings.Join(args, " "), strings.TrimSpace(out.Stderr)).
			WithDetail("command", name).
			WithDetail("exit_code", out.ExitCode)
	}
	return out, nil
}

func (e *Exec) Stream(ctx context.Context, line func(string), name string, args ...string) error {
	logger := logging.GetLogger("command")
	logger.Debug().Str("cmd", name).Strs("args", args).Msg("Streaming")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrapf(err, errors.ErrExternalProcess, "failed to start %s", name)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, errors.ErrExternalProcess, "failed to start %s", name).
			WithDetail("command", name)
	}

	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line(scanner.Text())
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// Wait blocks until the pipe is drained
		_, _ = io.Copy(io.Discard, pipe)
	}

	if err := cmd.Wait(); err != nil {
		return errors.Wrapf(err, errors.ErrExternalProcess, "%s %s failed", name, strings.Join(args, " ")).
			WithDetail("command", name).
			WithDetail("exit_code", cmd.ProcessState.ExitCode())
	}
	if scanErr != nil {
		return errors.Wrapf(scanErr, errors.ErrExternalProcess, "failed to read output of %s", name)
	}
	return nil
}
