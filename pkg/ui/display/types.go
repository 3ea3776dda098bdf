// Package display turns command results into documents the terminal and
// text renderers lay out. Structured formats skip it and encode the
// results directly.
package display

import (
	"fmt"
	"strings"

	"github.com/pathpirate/pathpirate/pkg/errors"
)

// Tone names the style a line is drawn with
type Tone string

const (
	ToneNormal  Tone = ""
	ToneHeader  Tone = "Header"
	ToneApplied Tone = "Applied"
	ToneInfo    Tone = "Info"
	ToneError   Tone = "Error"
	ToneMuted   Tone = "Muted"
	TonePath    Tone = "Path"
)

// Line is one row of output
type Line struct {
	Tone   Tone
	Indent int
	Text   string
}

// Document is what the rich and plain renderers draw
type Document struct {
	Title string
	Lines []Line
	// Markdown, when set, is drawn after the lines
	Markdown string
}

// Add appends a formatted line
func (d *Document) Add(tone Tone, indent int, format string, args ...interface{}) {
	d.Lines = append(d.Lines, Line{Tone: tone, Indent: indent, Text: fmt.Sprintf(format, args...)})
}

// Blank appends an empty line
func (d *Document) Blank() {
	d.Lines = append(d.Lines, Line{})
}

// Text returns the document without any styling
func (d *Document) Text() string {
	var b strings.Builder
	if d.Title != "" {
		b.WriteString(d.Title)
		b.WriteString("\n")
	}
	for _, l := range d.Lines {
		b.WriteString(strings.Repeat("  ", l.Indent))
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	if d.Markdown != "" {
		b.WriteString(d.Markdown)
		if !strings.HasSuffix(d.Markdown, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Info summarizes the active install
type Info struct {
	Home       string   `json:"home" yaml:"home"`
	VersionDir string   `json:"version_dir" yaml:"version_dir"`
	Version    string   `json:"version,omitempty" yaml:"version,omitempty"`
	Supported  bool     `json:"supported" yaml:"supported"`
	Model      string   `json:"model,omitempty" yaml:"model,omitempty"`
	Class      string   `json:"class,omitempty" yaml:"class,omitempty"`
	RapidTurn  bool     `json:"rapidturn" yaml:"rapidturn"`
	Source     string   `json:"source,omitempty" yaml:"source,omitempty"`
	Variant    string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Applied    []string `json:"applied" yaml:"applied"`
	Problems   []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// TransformEntry is one row of the catalog listing
type TransformEntry struct {
	Name         string   `json:"name" yaml:"name"`
	Summary      string   `json:"summary" yaml:"summary"`
	Marker       string   `json:"marker,omitempty" yaml:"marker,omitempty"`
	NeedsVariant bool     `json:"needs_variant" yaml:"needs_variant"`
	Targets      []string `json:"targets" yaml:"targets"`
}

// Catalog is the transform listing
type Catalog struct {
	Transforms []TransformEntry `json:"transforms" yaml:"transforms"`
}

// Description is one transform's full documentation
type Description struct {
	Name     string `json:"name" yaml:"name"`
	Summary  string `json:"summary" yaml:"summary"`
	Markdown string `json:"description" yaml:"description"`
}

// BrakeResult reports a brake release or engage
type BrakeResult struct {
	Action string `json:"action" yaml:"action"`
	Model  string `json:"model" yaml:"model"`
	Board  string `json:"board" yaml:"board"`
	GPIO   string `json:"gpio" yaml:"gpio"`
	Axis   string `json:"axis" yaml:"axis"`
}

// Missing returns the files a missing-files error lists
func Missing(err error) []string {
	missing, _ := errors.GetErrorDetails(err)["missing"].([]string)
	return missing
}
