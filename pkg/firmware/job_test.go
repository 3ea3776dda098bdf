package firmware_test

import (
	"context"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/firmware"
	"github.com/pathpirate/pathpirate/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobVerifyRelaysLines(t *testing.T) {
	f := &testutil.MockFlasher{}
	f.On("Verify", bitfile).Return(true, []string{"a", "b", "c"}, nil)

	var seen []string
	job := firmware.Start(context.Background(), f, firmware.OpVerify, bitfile, func(l string) {
		seen = append(seen, l)
	})
	res, err := job.Wait()
	require.NoError(t, err)

	assert.Equal(t, firmware.OpVerify, res.Operation)
	assert.True(t, res.Match)
	assert.False(t, res.Written)
	assert.Equal(t, []string{"a", "b", "c"}, res.Lines)
	assert.Equal(t, res.Lines, seen)
}

func TestJobFlash(t *testing.T) {
	f := &testutil.MockFlasher{}
	f.On("Flash", bitfile).Return([]string{"Writing"}, nil)

	res, err := firmware.Start(context.Background(), f, firmware.OpFlash, bitfile, nil).Wait()
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Equal(t, []string{"Writing"}, res.Lines)
}

func TestJobFlashFailure(t *testing.T) {
	f := &testutil.MockFlasher{}
	f.On("Flash", bitfile).Return([]string{"Erasing"}, errors.New(errors.ErrExternalProcess, "board not found"))

	res, err := firmware.Start(context.Background(), f, firmware.OpFlash, bitfile, nil).Wait()
	require.Error(t, err)
	assert.False(t, res.Written)
	assert.Contains(t, res.Lines, "Erasing")
}
