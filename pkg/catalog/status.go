package catalog

import (
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/session"
)

// Applied returns, in catalog order, the transforms whose changes are in
// the active install. A marked transform counts when any of its targets
// carries its marker. add-halshow counts when its launcher is in place.
func Applied(s *session.Session) []string {
	var out []string
	for _, t := range transforms.All() {
		if applied(s, t) {
			out = append(out, t.Name)
		}
	}
	return out
}

func applied(s *session.Session, t *Transform) bool {
	if t.Marker == "" {
		data, err := s.FS.ReadFile(s.Layout.Path(paths.HalshowScript))
		return err == nil && string(data) == HalshowLauncher
	}
	for _, rel := range t.Targets {
		data, err := s.FS.ReadFile(s.Layout.Path(rel))
		if err == nil && marker.Contains(data, t.Marker) {
			return true
		}
	}
	return false
}
