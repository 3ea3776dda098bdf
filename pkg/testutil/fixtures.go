package testutil

// Fixture contents use the literal text of a stock PathPilot v2.9 install
// for every line pathpirate edits.

// MillINI is an excerpt of tormach_mill_base.ini
const MillINI = `[EMC]
VERSION = 1.1
MACHINE = Tormach 1100-3

[HOSTMOT2]
DRIVER=hm2_pci
BOARD=5i25
DRIVER_PARAMS="config= num_encoders=2 num_pwmgens=1 num_3pwmgens=0 num_stepgens=5 "
BITFILE0=mesa/tormach_mill3.bit
DPLL_TIMER_NUMBER = 1

[TRAJ]
AXES = 4
COORDINATES = X Y Z A
LINEAR_UNITS = inch
MAX_VELOCITY = 3.0

[AXIS_0]
TYPE = LINEAR
# 110 in/min
MAX_VELOCITY = 1.833
MAX_ACCELERATION = 15.0
STEPGEN_MAX_VEL = 2.2
STEPGEN_MAXACCEL = 37.5
MAX_JOG_VELOCITY_UPS = 1.833
SCALE = 10000.0
# nanoseconds
DIRSETUP = 10000
DIRHOLD = 10000
STEPLEN = 8000
STEPSPACE  = 5000
HOME_SEQUENCE = 1

[AXIS_1]
TYPE = LINEAR
# 110 in/min
MAX_VELOCITY = 1.833
MAX_ACCELERATION = 15.0
STEPGEN_MAX_VEL = 2.2
STEPGEN_MAXACCEL = 37.5
MAX_JOG_VELOCITY_UPS = 1.833
SCALE = 10000.0
# nanoseconds
DIRSETUP = 10000
DIRHOLD = 10000
STEPLEN = 8000
STEPSPACE  = 5000
HOME_SEQUENCE = 1

[AXIS_2]
TYPE = LINEAR
# 90 in/min
MAX_VELOCITY = 1.500
MAX_ACCELERATION = 15.0
STEPGEN_MAX_VEL = 1.8
STEPGEN_MAXACCEL = 37.5
MAX_JOG_VELOCITY_UPS = 1.5
SCALE = -10000.0
# nanoseconds
DIRSETUP = 10000
DIRHOLD = 10000
STEPLEN = 8000
STEPSPACE  = 5000
HOME_SEQUENCE = 0

[AXIS_3]
TYPE = ANGULAR
MAX_VELOCITY = 1.833
SCALE = 10000.0
`

// MillHAL is an excerpt of tormach_mill_mesa.hal
const MillHAL = `# Tormach 1100-3 HAL
loadrt [HOSTMOT2](DRIVER) config=[HOSTMOT2](DRIVER_PARAMS)
loadrt not names=prog-not-idle,axis3-not-homing,x-homing-not2
addf prog-not-idle servo-thread
addf axis3-not-homing servo-thread
net estop-loop iocontrol.0.user-enable-out => iocontrol.0.emc-enable-in
`

// LatheHAL is an excerpt of tormach_lathe_mesa.hal
const LatheHAL = `# Tormach 15L Slant-PRO HAL
loadrt [HOSTMOT2](DRIVER) config=[HOSTMOT2](DRIVER_PARAMS)
`

// ConsoleHAL is an excerpt of operator_console_controls_{3,4}axis.hal
const ConsoleHAL = `loadusr -W tormach-console
setp tormach-console.0.rapid-override-scale 960
net feed-override tormach-console.0.feed-override => halui.feed-override.direct-value
`

// UICommon is an excerpt of ui_common.py
const UICommon = `class maxvel_slider(object):
    def __init__(self):
        self.adjustment = slider(
            lcnc_apply_function=lambda value: self.command.maxvel(value * self.maxvel_lin / 100, value * self.maxvel_ang / 100)),
            initial=100)
`

// Image payloads. The stock image and the bundled rapid image must differ.
var (
	MaxVelImage = []byte{0xff, 0xd8, 0xff, 0xe0, 'M', 'A', 'X', 'V', 'E', 'L', 0xff, 0xd9}
	RapidImage  = []byte{0xff, 0xd8, 0xff, 0xe0, 'R', 'A', 'P', 'I', 'D', 0xff, 0xd9}
)

// Bitfile payloads per bundle variant
var (
	Bitfile    = []byte{0x00, 0x09, 0x0f, 0xf0, '7', 'i', '8', '5', 's', '-', '2', '.', '9'}
	BitfileV10 = []byte{0x00, 0x09, 0x0f, 0xf0, '7', 'i', '8', '5', 's', '-', '2', '.', '1', '0'}
)

// HalshowLauncher is the stock bin/halshow script
const HalshowLauncher = "#!/bin/bash\nexec /usr/bin/halshow \"$@\"\n"

// Bundled halshow scripts
const (
	HalshowTcl = "#!/usr/bin/wish\n# halshow bundled\n"
	CbuttonTcl = "# cbutton bundled\n"
)
