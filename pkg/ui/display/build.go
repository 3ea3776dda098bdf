package display

import (
	"fmt"
	"strings"

	"github.com/pathpirate/pathpirate/pkg/catalog"
	"github.com/pathpirate/pathpirate/pkg/compare"
	"github.com/pathpirate/pathpirate/pkg/firmware"
	"github.com/pathpirate/pathpirate/pkg/revert"
	"github.com/pathpirate/pathpirate/pkg/transform"
)

// Build lays out a command result. Types it does not know are printed
// with their Go representation.
func Build(result interface{}) *Document {
	switch v := result.(type) {
	case *Document:
		return v
	case *catalog.Report:
		return buildReport(v)
	case *revert.Result:
		return buildRevert(v)
	case *compare.Report:
		return buildCompare(v)
	case firmware.Result:
		return buildFirmware(v)
	case *firmware.Result:
		return buildFirmware(*v)
	case *Info:
		return buildInfo(v)
	case *Catalog:
		return buildCatalog(v)
	case *Description:
		return &Document{Title: v.Name, Markdown: v.Markdown}
	case *BrakeResult:
		return buildBrake(v)
	default:
		d := &Document{}
		d.Add(ToneNormal, 0, "%+v", result)
		return d
	}
}

func buildReport(r *catalog.Report) *Document {
	d := &Document{Title: strings.ToUpper(r.Transform)}
	if r.Variant != "" {
		d.Add(ToneMuted, 0, "Machine variant: %s", r.Variant)
	}
	if len(r.Missing) > 0 {
		for _, path := range r.Missing {
			d.Add(ToneError, 0, "The following required file is missing: %s", path)
		}
		d.Add(ToneError, 0, "Aborting...")
		return d
	}
	for _, w := range r.Warnings {
		d.Add(ToneInfo, 0, "%s", w)
	}
	for _, a := range r.Assets {
		if a.Written {
			d.Add(ToneApplied, 0, "%s placed in %s (%s)", a.Name, a.Dest, a.Source)
		} else {
			d.Add(ToneInfo, 0, "%s is already up to date", a.Dest)
		}
	}
	for _, s := range r.Steps {
		switch s.Outcome {
		case transform.OutcomeApplied:
			d.Add(ToneApplied, 0, "%s was successfully updated", s.Path)
			if s.RulesSkipped > 0 {
				d.Add(ToneMuted, 1, "%d of %d edits found no pattern", s.RulesSkipped, s.RulesApplied+s.RulesSkipped)
			}
		case transform.OutcomeAlreadyApplied:
			d.Add(ToneInfo, 0, "Modifications to %s are already present", s.Path)
		case transform.OutcomeSkipped:
			d.Add(ToneInfo, 0, "No pattern found in %s, nothing changed", s.Path)
		case transform.OutcomeFailed:
			d.Add(ToneError, 0, "%s could not be updated", s.Path)
		}
	}
	for _, c := range r.Copies {
		if c.Copied {
			d.Add(ToneApplied, 0, "%s copied to %s", c.Source, c.Dest)
		} else {
			d.Add(ToneInfo, 0, "%s is already present", c.Dest)
		}
	}
	if !r.Changed() {
		d.Add(ToneMuted, 0, "Nothing changed")
	}
	return d
}

func buildRevert(r *revert.Result) *Document {
	d := &Document{Title: "REVERT"}
	for _, path := range r.Restored {
		d.Add(ToneApplied, 0, "Restored %s", path)
	}
	for _, path := range r.Removed {
		d.Add(ToneApplied, 0, "Removed %s", path)
	}
	if r.HalshowRemoved {
		d.Add(ToneApplied, 0, "Halshow removed")
	}
	for _, w := range r.Warnings {
		d.Add(ToneInfo, 0, "%s", w)
	}
	if !r.Changed {
		d.Add(ToneMuted, 0, "Nothing to revert")
	}
	return d
}

func buildCompare(r *compare.Report) *Document {
	d := &Document{Title: fmt.Sprintf("COMPARING %s WITH %s", r.OldLabel, r.NewLabel)}
	d.Add(TonePath, 0, "%s", r.OldPath)
	d.Add(TonePath, 0, "%s", r.NewPath)
	if r.OldModified {
		d.Add(ToneInfo, 0, "%s - previously modified file detected, using its backup", r.OldLabel)
	}
	if r.NewModified {
		d.Add(ToneInfo, 0, "%s - modified file detected", r.NewLabel)
		d.Add(ToneMuted, 1, "Comparing unmodified files may make changes more apparent")
	}
	if r.Identical {
		d.Add(ToneNormal, 0, "No changes present (the files are the same)")
		return d
	}
	d.Add(ToneNormal, 0, "The following changes exist between versions:")
	for _, h := range r.Hunks {
		d.Blank()
		for _, l := range h.Lines {
			tone := ToneError
			if l.Side == compare.SideNew {
				tone = ToneApplied
			}
			d.Add(tone, 0, "%s: %s", l.Label, l.Text)
		}
	}
	return d
}

func buildFirmware(r firmware.Result) *Document {
	d := &Document{Title: "FIRMWARE " + strings.ToUpper(string(r.Operation))}
	switch {
	case r.Operation == firmware.OpFlash && r.Written:
		d.Add(ToneApplied, 0, "%s written to the board", r.File)
	case r.Operation == firmware.OpFlash:
		d.Add(ToneError, 0, "%s was not written", r.File)
	case r.Match:
		d.Add(ToneApplied, 0, "The board matches %s", r.File)
	default:
		d.Add(ToneError, 0, "The board does not match %s", r.File)
	}
	return d
}

func buildInfo(i *Info) *Document {
	d := &Document{Title: "PATHPILOT"}
	d.Add(ToneNormal, 0, "Home:       %s", i.Home)
	d.Add(ToneNormal, 0, "Active dir: %s", i.VersionDir)
	if i.Version != "" {
		support := "supported"
		if !i.Supported {
			support = "not supported"
		}
		d.Add(ToneNormal, 0, "Version:    %s (%s)", i.Version, support)
	}
	if i.Model != "" {
		model := i.Model
		if i.Class != "" {
			model += " " + i.Class
		}
		if i.RapidTurn {
			model += " in RapidTurn mode"
		}
		d.Add(ToneNormal, 0, "Machine:    %s", model)
		d.Add(ToneMuted, 1, "from %s", i.Source)
	}
	if i.Variant != "" {
		d.Add(ToneNormal, 0, "Variant:    %s", i.Variant)
	}
	if len(i.Applied) == 0 {
		d.Add(ToneMuted, 0, "No transforms applied")
	} else {
		d.Add(ToneApplied, 0, "Applied:    %s", strings.Join(i.Applied, ", "))
	}
	for _, p := range i.Problems {
		d.Add(ToneError, 0, "%s", p)
	}
	return d
}

func buildCatalog(c *Catalog) *Document {
	d := &Document{Title: "TRANSFORMS"}
	for _, t := range c.Transforms {
		d.Add(ToneHeader, 0, "%s", t.Name)
		d.Add(ToneNormal, 1, "%s", t.Summary)
		if t.NeedsVariant {
			d.Add(ToneMuted, 1, "Needs a supported machine variant")
		}
	}
	return d
}

func buildBrake(b *BrakeResult) *Document {
	d := &Document{Title: "SERVO BRAKE"}
	state := "engaged"
	if b.Action == "release" {
		state = "released"
	}
	d.Add(ToneApplied, 0, "%s-axis brake %s", strings.ToUpper(b.Axis), state)
	d.Add(ToneMuted, 1, "%s on hm2_%s.0.gpio.%s", b.Model, b.Board, b.GPIO)
	return d
}
