// Package marker identifies files pathpirate has already edited.
//
// Every line a transform changes or adds carries "#Changed by <marker>",
// where the marker names the transform. A file containing a transform's
// marker has had that transform applied, so re-running it is a no-op.
package marker

import (
	"bytes"
	"strings"
)

// Marker is a literal string embedded in edited files
type Marker string

// Prefix is shared by every marker. Markers are built by bracketing the
// transform tag after it, so no marker is a substring of another.
const Prefix = "PathPirate"

// Known markers
const (
	RapidSlider Marker = Prefix + "[rapid-slider]"
	Encoder     Marker = Prefix + "[encoder]"
	Servos      Marker = Prefix + "[servos]"
)

// All lists every marker a transform can write
var All = []Marker{RapidSlider, Encoder, Servos}

// New builds a marker for tag
func New(tag string) Marker {
	return Marker(Prefix + "[" + tag + "]")
}

func (m Marker) String() string {
	return string(m)
}

// Comment is the suffix appended to edited lines
func (m Marker) Comment() string {
	return "#Changed by " + string(m)
}

// Contains is a literal substring test for m in content
func Contains(content []byte, m Marker) bool {
	if m == "" {
		return false
	}
	return bytes.Contains(content, []byte(m))
}

// Any reports whether content carries any pathpirate edit. Files edited
// by older tools that wrote a bare "PathPirate" tag count too.
func Any(content []byte) bool {
	return bytes.Contains(content, []byte(Prefix))
}

// Found returns the markers present in content, in All order
func Found(content []byte) []Marker {
	var found []Marker
	for _, m := range All {
		if Contains(content, m) {
			found = append(found, m)
		}
	}
	return found
}

// Join renders markers for display
func Join(markers []Marker) string {
	names := make([]string, len(markers))
	for i, m := range markers {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
