package catalog_test

import (
	"strings"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/catalog"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/testutil"
	"github.com/pathpirate/pathpirate/pkg/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// servoINI is testutil.MillINI after add-servos; %M stands for the
// marker comment
const servoINI = `[EMC]
VERSION = 1.1
MACHINE = Tormach 1100-3

[HOSTMOT2]
DRIVER=hm2_pci
BOARD=5i25
DRIVER_PARAMS="config= num_encoders=4 num_pwmgens=1 num_3pwmgens=0 num_stepgens=5 " %M
BITFILE0=mesa/5i25_t2_7i85s_dpll.bit %M
DPLL_TIMER_NUMBER = 1

[TRAJ]
AXES = 4
COORDINATES = X Y Z A
LINEAR_UNITS = inch
MAX_VELOCITY = 8.043 %M

[AXIS_0]
TYPE = LINEAR
# 300 in/min %M
MAX_VELOCITY = 5.00 %M
MAX_ACCELERATION = 30.0 %M
STEPGEN_MAX_VEL = 6.0 %M
STEPGEN_MAXACCEL = 75 %M
MAX_JOG_VELOCITY_UPS = 3.333 %M
SCALE = 16000.0 %M
#nanosecs .. for ClearPath %M
DIRSETUP = 2000 %M
DIRHOLD = 2000 %M
STEPLEN = 2000 %M
STEPSPACE  = 2000 %M
HOME_SEQUENCE = 1
SMOOTHING_WINDOW = 0.0056 %M

[AXIS_1]
TYPE = LINEAR
# 300 in/min %M
MAX_VELOCITY = 5.00 %M
MAX_ACCELERATION = 30.0 %M
STEPGEN_MAX_VEL = 6.0 %M
STEPGEN_MAXACCEL = 75 %M
MAX_JOG_VELOCITY_UPS = 3.333 %M
SCALE = 16000.0 %M
#nanosecs .. for ClearPath %M
DIRSETUP = 2000 %M
DIRHOLD = 2000 %M
STEPLEN = 2000 %M
STEPSPACE  = 2000 %M
HOME_SEQUENCE = 1
SMOOTHING_WINDOW = 0.0056 %M

[AXIS_2]
TYPE = LINEAR
# 230 in/min %M
MAX_VELOCITY = 3.8333 %M
MAX_ACCELERATION = 19.167 %M
STEPGEN_MAX_VEL = 4.600 %M
STEPGEN_MAXACCEL = 47.9175 %M
MAX_JOG_VELOCITY_UPS = 3.0 %M
SCALE = -16000.0 %M
#nanosecs .. for ClearPath %M
DIRSETUP = 2000 %M
DIRHOLD = 2000 %M
STEPLEN = 2000 %M
STEPSPACE  = 2000 %M
HOME_SEQUENCE = 0
SMOOTHING_WINDOW = 0.0056 %M

[AXIS_3]
TYPE = ANGULAR
MAX_VELOCITY = 1.833
SCALE = 10000.0
`

func servoEnv() transform.Env {
	return transform.Env{Marker: marker.Servos}
}

func TestServoINIOutput(t *testing.T) {
	change, err := catalog.ServoINI.Apply([]byte(testutil.MillINI), servoEnv())
	require.NoError(t, err)

	want := strings.ReplaceAll(servoINI, "%M", marker.Servos.Comment())
	assert.Equal(t, want, string(change.Content))
	assert.Zero(t, change.Skipped)
	// 2 hostmot + 1 traj + 12 xy + insert + 12 z + insert
	assert.Equal(t, 29, change.Applied)
}

func TestServoINIStates(t *testing.T) {
	states := catalog.ServoINI.Scan(testutil.MillINI)
	lines := strings.Split(strings.TrimSuffix(testutil.MillINI, "\n"), "\n")
	require.Len(t, states, len(lines))

	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case "[EMC]", "[AXIS_3]":
			assert.Equal(t, transform.Outside, states[i], line)
		case "[HOSTMOT2]":
			assert.Equal(t, transform.InHostmot, states[i], line)
		case "[TRAJ]":
			assert.Equal(t, transform.InTraj, states[i], line)
		case "[AXIS_0]", "[AXIS_1]":
			assert.Equal(t, transform.InAxisXY, states[i], line)
		case "[AXIS_2]":
			assert.Equal(t, transform.InAxisZ, states[i], line)
		}
	}
}

func TestServoINIUntouchedWithoutHeaders(t *testing.T) {
	content := "MAX_VELOCITY = 1.833\nSCALE = 10000.0\n"
	change, err := catalog.ServoINI.Apply([]byte(content), servoEnv())
	require.NoError(t, err)
	assert.Equal(t, content, string(change.Content))
	assert.Zero(t, change.Applied)
}

func TestEncoderBlock(t *testing.T) {
	block, err := catalog.EncoderHAL.Render(transform.Env{
		Marker: marker.Encoder,
		Params: transform.Params{EncoderScale: -1440},
	})
	require.NoError(t, err)

	assert.Contains(t, block, "#The following encoder lines were added by PathPirate[encoder]\n")
	assert.Contains(t, block, "net spindle-index-enable hm2_5i25.0.encoder.00.index-enable <=> motion.spindle-index-enable\n")
	assert.True(t, strings.HasSuffix(block, "setp hm2_5i25.0.encoder.00.scale -1440\n"))
}

func TestSliderRules(t *testing.T) {
	env := transform.Env{Marker: marker.RapidSlider}

	change, err := catalog.SliderHandler.Apply([]byte(testutil.UICommon), env)
	require.NoError(t, err)
	assert.Contains(t, string(change.Content),
		"lcnc_apply_function=lambda value: self.command.rapidrate(value / 100)), #Changed by PathPirate[rapid-slider]")
	assert.NotContains(t, string(change.Content), "self.command.maxvel(")

	change, err = catalog.SliderConsoleScale.Apply([]byte(testutil.ConsoleHAL), env)
	require.NoError(t, err)
	assert.Contains(t, string(change.Content),
		"#setp tormach-console.0.rapid-override-scale 960 #Changed by PathPirate[rapid-slider]\n")
}
