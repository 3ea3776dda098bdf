package catalog

import (
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/transform"
)

// RapidImage is the bundled slider image, relative to the bundle
const RapidImage = "MAXVEL_100.jpg"

// Slider rules
var (
	SliderHandler = transform.Replace(
		"lcnc_apply_function=lambda value: self.command.maxvel(value * self.maxvel_lin / 100, value * self.maxvel_ang / 100)),",
		"lcnc_apply_function=lambda value: self.command.rapidrate(value / 100)),",
	)
	SliderConsoleScale = transform.Replace(
		"setp tormach-console.0.rapid-override-scale 960",
		"#setp tormach-console.0.rapid-override-scale 960",
	)
)

const sliderDescription = `# convert-velocity-slider

Turns the **MAX VEL** slider on the PathPilot screen into a **RAPID**
override slider.

- ` + "`python/ui_common.py`" + `: the slider handler calls ` + "`rapidrate`" + `
  instead of ` + "`maxvel`" + `.
- ` + "`operator_console_controls_3axis.hal`" + ` and ` + "`..._4axis.hal`" + `: the
  console rapid override scale is commented out.
- ` + "`images/MAXVEL_100.jpg`" + ` is replaced with the RAPID image.
`

func convertSlider() *Transform {
	return &Transform{
		Name:        "convert-velocity-slider",
		Summary:     "Convert the MAX VEL slider into a RAPID override slider",
		Description: sliderDescription,
		Marker:      marker.RapidSlider,
		Targets: []string{
			paths.UICommon,
			paths.Console3AxisHAL,
			paths.Console4AxisHAL,
			paths.MaxVelImage,
		},
		plan: planSlider,
	}
}

func planSlider(pc PlanContext) (*Plan, error) {
	ui := pc.Layout.Path(paths.UICommon)
	hal1 := pc.Layout.Path(paths.Console3AxisHAL)
	hal2 := pc.Layout.Path(paths.Console4AxisHAL)
	image := pc.Layout.Path(paths.MaxVelImage)
	rapid := pc.Layout.BundlePath(RapidImage)

	return &Plan{
		Required: []string{ui, hal1, hal2, image, rapid},
		Steps: []transform.Step{
			{
				Target: transform.Target{Role: transform.RoleConfig, Path: ui},
				Marker: marker.RapidSlider,
				Rules:  []transform.Rule{SliderHandler},
			},
			{
				Target: transform.Target{Role: transform.RoleNetlist, Path: hal1},
				Marker: marker.RapidSlider,
				Rules:  []transform.Rule{SliderConsoleScale},
			},
			{
				Target: transform.Target{Role: transform.RoleNetlist, Path: hal2},
				Marker: marker.RapidSlider,
				Rules:  []transform.Rule{SliderConsoleScale},
			},
			{
				Target: transform.Target{Role: transform.RoleResource, Path: image},
				Rules:  []transform.Rule{transform.ReplaceFile(rapid)},
			},
		},
	}, nil
}
