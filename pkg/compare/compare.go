// Package compare shows what changed in a PathPilot configuration file
// between two installed versions.
package compare

import (
	"strings"

	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pmezard/go-difflib/difflib"
)

// Snapshot is one side of a comparison
type Snapshot struct {
	// Label names the side in the output, normally the version
	Label   string
	Path    string
	Content string
	// FromBackup is set when Content was read from a .bak file
	FromBackup bool
}

// Side says which snapshot a line comes from
type Side string

const (
	SideOld Side = "old"
	SideNew Side = "new"
)

// Line is a removed or added line
type Line struct {
	Side  Side   `json:"side" yaml:"side"`
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// Hunk is a run of changed lines. Line numbers are 1-based and count the
// trimmed content.
type Hunk struct {
	OldStart int    `json:"old_start" yaml:"old_start"`
	OldLines int    `json:"old_lines" yaml:"old_lines"`
	NewStart int    `json:"new_start" yaml:"new_start"`
	NewLines int    `json:"new_lines" yaml:"new_lines"`
	Lines    []Line `json:"lines" yaml:"lines"`
}

// Report is the result of a comparison
type Report struct {
	OldLabel  string `json:"old_label" yaml:"old_label"`
	NewLabel  string `json:"new_label" yaml:"new_label"`
	OldPath   string `json:"old_path" yaml:"old_path"`
	NewPath   string `json:"new_path" yaml:"new_path"`
	Identical bool   `json:"identical" yaml:"identical"`
	Hunks     []Hunk `json:"hunks" yaml:"hunks"`
	// OldModified means the old side had been edited by pathpirate and
	// its backup was compared instead
	OldModified bool `json:"old_modified" yaml:"old_modified"`
	// NewModified means the new side carries pathpirate edits
	NewModified bool `json:"new_modified" yaml:"new_modified"`
}

// splitLines trims surrounding whitespace and splits into lines
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// Compare diffs old against new with no context lines
func Compare(old, new Snapshot) (*Report, error) {
	report := &Report{
		OldLabel:    old.Label,
		NewLabel:    new.Label,
		OldPath:     old.Path,
		NewPath:     new.Path,
		OldModified: old.FromBackup,
		NewModified: marker.Any([]byte(new.Content)),
	}
	if old.Content == new.Content {
		report.Identical = true
		return report, nil
	}

	a, b := splitLines(old.Content), splitLines(new.Content)
	matcher := difflib.NewMatcher(a, b)
	for _, group := range matcher.GetGroupedOpCodes(0) {
		first, last := group[0], group[len(group)-1]
		hunk := Hunk{
			OldStart: first.I1 + 1,
			OldLines: last.I2 - first.I1,
			NewStart: first.J1 + 1,
			NewLines: last.J2 - first.J1,
		}
		for _, op := range group {
			if op.Tag == 'r' || op.Tag == 'd' {
				for _, text := range a[op.I1:op.I2] {
					hunk.Lines = append(hunk.Lines, Line{Side: SideOld, Label: old.Label, Text: text})
				}
			}
			if op.Tag == 'r' || op.Tag == 'i' {
				for _, text := range b[op.J1:op.J2] {
					hunk.Lines = append(hunk.Lines, Line{Side: SideNew, Label: new.Label, Text: text})
				}
			}
		}
		if len(hunk.Lines) > 0 {
			report.Hunks = append(report.Hunks, hunk)
		}
	}
	report.Identical = len(report.Hunks) == 0
	return report, nil
}

// Added returns every line only in the new snapshot
func (r *Report) Added() []Line {
	return r.lines(SideNew)
}

// Removed returns every line only in the old snapshot
func (r *Report) Removed() []Line {
	return r.lines(SideOld)
}

func (r *Report) lines(side Side) []Line {
	var out []Line
	for _, h := range r.Hunks {
		for _, l := range h.Lines {
			if l.Side == side {
				out = append(out, l)
			}
		}
	}
	return out
}
