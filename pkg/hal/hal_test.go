package hal_test

import (
	"context"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/command"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/hal"
	"github.com/pathpirate/pathpirate/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const halcmd = "/tmc/bin/halcmd"

func TestGetTrimsOutput(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", halcmd, []string{"gets", "estop"}).Return(command.Output{Stdout: "FALSE\n"}, nil)

	value, err := hal.New(r, halcmd).Get(context.Background(), "estop")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", value)
	r.AssertExpectations(t)
}

func TestGetPinEmptyOutput(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", halcmd, []string{"getp", "hm2_5i25.0.gpio.001.out"}).Return(command.Output{Stdout: "  \n"}, nil)

	_, err := hal.New(r, halcmd).GetPin(context.Background(), "hm2_5i25.0.gpio.001.out")
	require.Error(t, err)
	assert.Equal(t, errors.ErrExternalProcess, errors.GetErrorCode(err))
}

func TestWriteVerbs(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", halcmd, []string{"setp", "hm2_5i25.0.gpio.024.out", "true"}).Return(command.Output{}, nil)
	r.On("Run", halcmd, []string{"linkps", "hm2_5i25.0.gpio.024.out", "z-axis-brake-release"}).Return(command.Output{}, nil)
	r.On("Run", halcmd, []string{"unlinkp", "hm2_5i25.0.gpio.024.out"}).Return(command.Output{}, nil)

	c := hal.New(r, halcmd)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "hm2_5i25.0.gpio.024.out", "true"))
	require.NoError(t, c.Link(ctx, "hm2_5i25.0.gpio.024.out", "z-axis-brake-release"))
	require.NoError(t, c.Unlink(ctx, "hm2_5i25.0.gpio.024.out"))
	r.AssertExpectations(t)
}

func TestRunFailure(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", halcmd, []string{"setp", "x", "1"}).
		Return(command.Output{ExitCode: 1}, errors.New(errors.ErrExternalProcess, "exit status 1"))

	err := hal.New(r, halcmd).Set(context.Background(), "x", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "halcmd setp x 1 failed")
}
