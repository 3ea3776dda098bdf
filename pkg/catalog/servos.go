package catalog

import (
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/transform"
)

// ServoBlock is appended to the mill HAL to route the ClearPath fault
// outputs to the axis amp-fault inputs
const ServoBlock = `
#####################################################################
#The following ClearPath servo lines were added by {{.Marker}}

addf x-fault-not servo-thread
addf y-fault-not servo-thread
net x_fault_not hm2_[HOSTMOT2](BOARD).0.encoder.02.input-a x-fault-not.in
net x_fault x-fault-not.out axis.0.amp-fault-in
net y_fault_not hm2_[HOSTMOT2](BOARD).0.encoder.02.input-b y-fault-not.in
net y_fault y-fault-not.out axis.1.amp-fault-in
net z_fault hm2_[HOSTMOT2](BOARD).0.encoder.02.input-index axis.2.amp-fault-in
`

// ServoHAL loads two more not gates and appends ServoBlock
var ServoHAL = []transform.Rule{
	transform.Replace(
		"loadrt not names=prog-not-idle,axis3-not-homing,x-homing-not2",
		"loadrt not names=prog-not-idle,axis3-not-homing,x-homing-not2,x-fault-not,y-fault-not",
	),
	transform.Append(ServoBlock),
}

// smoothing follows HOME_SEQUENCE in every servo axis section
var smoothing = transform.Insertion{After: "HOME_SEQUENCE", Line: "SMOOTHING_WINDOW = 0.0056"}

func xyAxisRules() []*transform.ReplaceRule {
	return []*transform.ReplaceRule{
		transform.Replace("# 110 in/min", "# 300 in/min"),
		transform.Replace("MAX_VELOCITY = 1.833", "MAX_VELOCITY = 5.00"),
		transform.Replace("MAX_ACCELERATION = 15.0", "MAX_ACCELERATION = 30.0"),
		transform.Replace("STEPGEN_MAX_VEL = 2.2", "STEPGEN_MAX_VEL = 6.0"),
		transform.Replace("STEPGEN_MAXACCEL = 37.5", "STEPGEN_MAXACCEL = 75"),
		transform.Replace("MAX_JOG_VELOCITY_UPS = 1.833", "MAX_JOG_VELOCITY_UPS = 3.333"),
		transform.Replace("# nanoseconds", "#nanosecs .. for ClearPath"),
		transform.Replace("DIRSETUP = 10000", "DIRSETUP = 2000"),
		transform.Replace("DIRHOLD = 10000", "DIRHOLD = 2000"),
		transform.Replace("STEPLEN = 8000", "STEPLEN = 2000"),
		transform.Replace("STEPSPACE  = 5000", "STEPSPACE  = 2000"),
		transform.Replace("SCALE = 10000.0", "SCALE = 16000.0"),
	}
}

func zAxisRules() []*transform.ReplaceRule {
	return []*transform.ReplaceRule{
		transform.Replace("# 90 in/min", "# 230 in/min"),
		transform.Replace("MAX_VELOCITY = 1.500", "MAX_VELOCITY = 3.8333"),
		transform.Replace("MAX_ACCELERATION = 15.0", "MAX_ACCELERATION = 19.167"),
		transform.Replace("STEPGEN_MAX_VEL = 1.8", "STEPGEN_MAX_VEL = 4.600"),
		transform.Replace("STEPGEN_MAXACCEL = 37.5", "STEPGEN_MAXACCEL = 47.9175"),
		transform.Replace("MAX_JOG_VELOCITY_UPS = 1.5", "MAX_JOG_VELOCITY_UPS = 3.0"),
		transform.Replace("# nanoseconds", "#nanosecs .. for ClearPath"),
		transform.Replace("DIRSETUP = 10000", "DIRSETUP = 2000"),
		transform.Replace("DIRHOLD = 10000", "DIRHOLD = 2000"),
		transform.Replace("STEPLEN = 8000", "STEPLEN = 2000"),
		transform.Replace("STEPSPACE  = 5000", "STEPSPACE  = 2000"),
		transform.Replace("SCALE = -10000.0", "SCALE = -16000.0"),
	}
}

// ServoINI retunes the mill INI for ClearPath servos. Each section's
// edits only apply between its header and the next one.
var ServoINI = transform.Sectioned(
	transform.Section{
		State:        transform.InHostmot,
		Headers:      []string{"[HOSTMOT2]"},
		Replacements: hostmotRules(),
	},
	transform.Section{
		State:        transform.InTraj,
		Headers:      []string{"[TRAJ]"},
		Replacements: []*transform.ReplaceRule{transform.Replace("MAX_VELOCITY = 3.0", "MAX_VELOCITY = 8.043")},
	},
	transform.Section{
		State:        transform.InAxisXY,
		Headers:      []string{"[AXIS_0]", "[AXIS_1]"},
		Replacements: xyAxisRules(),
		Insert:       &smoothing,
	},
	transform.Section{
		State:        transform.InAxisZ,
		Headers:      []string{"[AXIS_2]"},
		Replacements: zAxisRules(),
		Insert:       &smoothing,
	},
)

const servosDescription = `# add-servos

Retunes an **1100-3** with a Mesa 7i85s card for ClearPath servos.

- ` + "`[HOSTMOT2]`" + `: four encoders and the 7i85s DPLL bitfile.
- ` + "`[TRAJ]`" + `: maximum velocity 8.043.
- ` + "`[AXIS_0]`" + ` and ` + "`[AXIS_1]`" + `: 300 in/min, doubled acceleration,
  ClearPath step timing, scale 16000 and a smoothing window.
- ` + "`[AXIS_2]`" + `: 230 in/min with the matching Z values.
- The mill HAL routes the servo fault outputs to the axis amp-fault inputs.
- The bitfile for the installed PathPilot version is copied into ` + "`mesa/`" + `.

Other sections, including ` + "`[AXIS_3]`" + `, are left untouched. The machine
must be power cycled afterwards for the bitfile to load.
`

func addServos() *Transform {
	return &Transform{
		Name:         "add-servos",
		Summary:      "Retune an 1100-3 for ClearPath servos",
		Description:  servosDescription,
		Marker:       marker.Servos,
		NeedsVariant: true,
		Targets:      []string{paths.MillINI, paths.MillHAL},
		artifacts:    bitfileArtifact,
		plan:         planServos,
	}
}

func planServos(pc PlanContext) (*Plan, error) {
	if pc.Variant == nil {
		return nil, errors.New(errors.ErrUnsupportedVariant, "add-servos needs a machine variant")
	}

	ini := pc.Layout.Path(paths.MillINI)
	hal := pc.Layout.Path(paths.MillHAL)
	bit := pc.Layout.BundlePath(pc.Variant.Bitfile)

	return &Plan{
		Required: []string{hal, ini, bit, pc.Layout.Path(paths.MesaDir)},
		Steps: []transform.Step{
			{
				Target: transform.Target{Role: transform.RoleConfig, Path: ini},
				Marker: marker.Servos,
				Rules:  []transform.Rule{ServoINI},
			},
			{
				Target: transform.Target{Role: transform.RoleNetlist, Path: hal},
				Marker: marker.Servos,
				Rules:  ServoHAL,
			},
		},
		Copies: []Copy{bitfileCopy(pc, bit)},
	}, nil
}
