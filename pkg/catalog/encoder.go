package catalog

import (
	"path"

	"github.com/pathpirate/pathpirate/pkg/config"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/transform"
)

// EncoderBlock is appended to the mill HAL. EncoderScale comes from the
// operator or the configured default.
const EncoderBlock = `
#####################################################################
#The following encoder lines were added by {{.Marker}}

net spindle-position hm2_5i25.0.encoder.00.position => motion.spindle-revs
net spindle-velocity hm2_5i25.0.encoder.00.velocity => motion.spindle-speed-in
net spindle-index-enable hm2_5i25.0.encoder.00.index-enable <=> motion.spindle-index-enable
setp hm2_5i25.0.encoder.00.scale {{.EncoderScale}}
`

// EncoderHAL appends EncoderBlock
var EncoderHAL = transform.Append(EncoderBlock)

// hostmotRules switch the 5i25 to four encoders and the DPLL bitfile.
// Each call returns fresh rules, since a section rule tracks them by
// identity.
func hostmotRules() []*transform.ReplaceRule {
	return []*transform.ReplaceRule{
		transform.Replace(
			`DRIVER_PARAMS="config= num_encoders=2 num_pwmgens=1 num_3pwmgens=0 num_stepgens=5 "`,
			`DRIVER_PARAMS="config= num_encoders=4 num_pwmgens=1 num_3pwmgens=0 num_stepgens=5 "`,
		),
		transform.Replace("BITFILE0=mesa/tormach_mill3.bit", "BITFILE0=mesa/"+BitfileName),
	}
}

const encoderDescription = `# add-encoder

Adds a spindle encoder to an **1100-3** with a Mesa 7i85s card.

- The mill HAL gets spindle position, velocity and index nets, with the
  encoder scale given on the command line (default from the configuration,
  normally -1440).
- The mill INI loads four encoders and the 7i85s DPLL bitfile.
- The bitfile for the installed PathPilot version is copied into ` + "`mesa/`" + `.

The machine must be power cycled afterwards for the bitfile to load.
`

func addEncoder() *Transform {
	return &Transform{
		Name:         "add-encoder",
		Summary:      "Add a spindle encoder through a Mesa 7i85s (1100-3 only)",
		Description:  encoderDescription,
		Marker:       marker.Encoder,
		NeedsVariant: true,
		Targets:      []string{paths.MillHAL, paths.MillINI},
		artifacts:    bitfileArtifact,
		plan:         planEncoder,
	}
}

func planEncoder(pc PlanContext) (*Plan, error) {
	if pc.Variant == nil {
		return nil, errors.New(errors.ErrUnsupportedVariant, "add-encoder needs a machine variant")
	}
	if pc.Params.EncoderScale == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "encoder scale is required")
	}

	hal := pc.Layout.Path(paths.MillHAL)
	ini := pc.Layout.Path(paths.MillINI)
	bit := pc.Layout.BundlePath(pc.Variant.Bitfile)

	rules := make([]transform.Rule, 0, 2)
	for _, r := range hostmotRules() {
		rules = append(rules, r)
	}

	return &Plan{
		Required: []string{hal, ini, bit},
		Steps: []transform.Step{
			{
				Target: transform.Target{Role: transform.RoleNetlist, Path: hal},
				Marker: marker.Encoder,
				Rules:  []transform.Rule{EncoderHAL},
			},
			{
				Target: transform.Target{Role: transform.RoleConfig, Path: ini},
				Marker: marker.Encoder,
				Rules:  rules,
			},
		},
		Copies: []Copy{bitfileCopy(pc, bit)},
	}, nil
}

func bitfileCopy(pc PlanContext, source string) Copy {
	return Copy{
		Source:     source,
		Dest:       pc.Layout.Path(path.Join(paths.MesaDir, BitfileName)),
		PowerCycle: true,
	}
}

func bitfileArtifact(*config.Config) []string {
	return []string{path.Join(paths.MesaDir, BitfileName)}
}
