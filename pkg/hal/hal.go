// Package hal talks to a running LinuxCNC HAL through halcmd.
package hal

import (
	"context"
	"strings"

	"github.com/pathpirate/pathpirate/pkg/command"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/logging"
)

// Client wraps halcmd
type Client struct {
	runner command.Runner
	halcmd string
}

// New creates a Client running the halcmd binary at path
func New(runner command.Runner, path string) *Client {
	return &Client{runner: runner, halcmd: path}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	logger := logging.GetLogger("hal")
	logger.Debug().Strs("args", args).Msg("halcmd")
	out, err := c.runner.Run(ctx, c.halcmd, args...)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrExternalProcess, "halcmd %s failed", strings.Join(args, " "))
	}
	return strings.TrimSpace(out.Stdout), nil
}

func (c *Client) read(ctx context.Context, verb, name string) (string, error) {
	value, err := c.run(ctx, verb, name)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", errors.Newf(errors.ErrExternalProcess, "halcmd %s %s returned nothing", verb, name).
			WithDetail("name", name)
	}
	return value, nil
}

// Get returns the value of a signal
func (c *Client) Get(ctx context.Context, signal string) (string, error) {
	return c.read(ctx, "gets", signal)
}

// GetPin returns the value of a pin or parameter
func (c *Client) GetPin(ctx context.Context, pin string) (string, error) {
	return c.read(ctx, "getp", pin)
}

// Set sets a pin or parameter
func (c *Client) Set(ctx context.Context, pin, value string) error {
	_, err := c.run(ctx, "setp", pin, value)
	return err
}

// Link connects pin to signal
func (c *Client) Link(ctx context.Context, pin, signal string) error {
	_, err := c.run(ctx, "linkps", pin, signal)
	return err
}

// Unlink disconnects pin from whatever signal it is on
func (c *Client) Unlink(ctx context.Context, pin string) error {
	_, err := c.run(ctx, "unlinkp", pin)
	return err
}
