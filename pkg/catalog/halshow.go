package catalog

import (
	"net/url"
	"path"

	"github.com/pathpirate/pathpirate/pkg/config"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/transform"
)

// HalshowLauncher replaces bin/halshow so that ADMIN HALSHOW runs the
// installed halshow.tcl
const HalshowLauncher = "#!/usr/bin/tclsh8.6\nsource ~/tmc/tcl/bin/halshow.tcl"

const halshowDescription = `# add-halshow

PathPilot ships without **halshow**. This transform puts it back so it
can be started from MDI with:

    ADMIN HALSHOW

1. Creates ` + "`~/tmc/tcl/bin`" + `.
2. Downloads ` + "`halshow.tcl`" + ` and ` + "`cbutton.tcl`" + ` from the LinuxCNC
   master branch, overwriting older copies. Without a network connection
   the bundled copies are used.
3. Rewrites the ` + "`bin/halshow`" + ` launcher to source the installed script.
   The original launcher is backed up.
`

func addHalshow() *Transform {
	return &Transform{
		Name:        "add-halshow",
		Summary:     "Install halshow so it can be launched with ADMIN HALSHOW",
		Description: halshowDescription,
		Targets:     []string{paths.HalshowScript},
		Dirs:        []string{paths.TclBinDir},
		artifacts: func(cfg *config.Config) []string {
			out := make([]string, 0, len(cfg.Halshow.Files))
			for _, f := range cfg.Halshow.Files {
				out = append(out, path.Join(paths.TclBinDir, f))
			}
			return out
		},
		plan: planHalshow,
	}
}

func planHalshow(pc PlanContext) (*Plan, error) {
	script := pc.Layout.Path(paths.HalshowScript)
	p := &Plan{
		Required: []string{script},
		Dirs:     []string{pc.Layout.Path(paths.TclBinDir)},
		Steps: []transform.Step{{
			Target: transform.Target{Role: transform.RoleScript, Path: script},
			Rules:  []transform.Rule{transform.ReplaceWith(HalshowLauncher)},
		}},
	}

	for _, f := range pc.Config.Halshow.Files {
		u, err := url.JoinPath(pc.Config.Halshow.BaseURL, f)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid halshow base_url %q", pc.Config.Halshow.BaseURL)
		}
		p.Assets = append(p.Assets, Asset{
			Name:     f,
			URL:      u,
			Dest:     pc.Layout.Path(path.Join(paths.TclBinDir, f)),
			Fallback: pc.Layout.BundlePath(f),
		})
	}
	return p, nil
}
