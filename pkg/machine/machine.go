// Package machine reads the PathPilot version and machine identity
// metadata files.
package machine

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// SupportedReleases are the PathPilot releases pathpirate knows the
// configuration layout of.
var SupportedReleases = []string{"v2.9.2", "v2.9.3", "v2.9.4", "v2.9.5", "v2.9.6", "v2.10.0"}

// Machine classes as written by PathPilot
const (
	ClassMill  = "mill"
	ClassLathe = "lathe"
)

// Version is a PathPilot version string such as "v2.9.2-rc1"
type Version struct {
	Raw   string `json:"raw" yaml:"raw"`
	minor int
}

// ParseVersion validates raw and extracts the minor number
func ParseVersion(raw string) (Version, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return Version{}, errors.Newf(errors.ErrMetadata, "malformed version %q", raw)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, errors.Wrapf(err, errors.ErrMetadata, "malformed version %q", raw)
	}
	return Version{Raw: raw, minor: minor}, nil
}

// Release is the version without any "-suffix"
func (v Version) Release() string {
	release, _, _ := strings.Cut(v.Raw, "-")
	return release
}

// Minor is the integer between the first two dots
func (v Version) Minor() int {
	return v.minor
}

// Supported reports whether the release is one pathpirate knows
func (v Version) Supported() bool {
	release := v.Release()
	for _, s := range SupportedReleases {
		if s == release {
			return true
		}
	}
	return false
}

func (v Version) String() string {
	return v.Raw
}

// Identity describes the machine PathPilot is configured for
type Identity struct {
	Model     string `json:"model" yaml:"model"`
	Class     string `json:"class,omitempty" yaml:"class,omitempty"`
	RapidTurn bool   `json:"rapidturn" yaml:"rapidturn"`
	Source    string `json:"source" yaml:"source"`
}

// IsLathe reports whether the spindle axis is horizontal, which is the
// case for lathes and for a mill in RapidTurn mode.
func (i Identity) IsLathe() bool {
	return i.Class == ClassLathe || i.RapidTurn
}

type versionFile struct {
	Version *string `json:"version"`
}

type pathPilotFile struct {
	Machine *struct {
		Model     *string `json:"model"`
		Class     *string `json:"class"`
		RapidTurn *bool   `json:"rapidturn"`
	} `json:"machine"`
}

type machineFile struct {
	Model *string `json:"mdl"`
}

// LoadVersion reads version.json at path
func LoadVersion(fs types.FS, path string) (Version, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Version{}, missingOrUnreadable(err, path)
	}

	var vf versionFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return Version{}, errors.Wrapf(err, errors.ErrMetadata, "invalid JSON in %s", path).
			WithDetail("path", path)
	}
	if vf.Version == nil {
		return Version{}, errors.Newf(errors.ErrMetadata, "missing data in %s: version", path).
			WithDetail("path", path)
	}
	return ParseVersion(*vf.Version)
}

// LoadIdentity reads pathpilot.json, falling back to the older
// machine.json when the former does not exist.
func LoadIdentity(fs types.FS, pathPilotPath, machinePath string) (Identity, error) {
	data, err := fs.ReadFile(pathPilotPath)
	if err == nil {
		return parsePathPilot(data, pathPilotPath)
	}
	if !os.IsNotExist(err) {
		return Identity{}, missingOrUnreadable(err, pathPilotPath)
	}

	data, err = fs.ReadFile(machinePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, errors.Newf(errors.ErrNotFound, "%s is missing", pathPilotPath).
				WithDetail("paths", []string{pathPilotPath, machinePath})
		}
		return Identity{}, missingOrUnreadable(err, machinePath)
	}

	var mf machineFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return Identity{}, errors.Wrapf(err, errors.ErrMetadata, "invalid JSON in %s", machinePath).
			WithDetail("path", machinePath)
	}
	if mf.Model == nil {
		return Identity{}, errors.Newf(errors.ErrMetadata, "missing data in %s: mdl", machinePath).
			WithDetail("path", machinePath)
	}
	return Identity{Model: *mf.Model, Class: ClassMill, Source: machinePath}, nil
}

func parsePathPilot(data []byte, path string) (Identity, error) {
	var pf pathPilotFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return Identity{}, errors.Wrapf(err, errors.ErrMetadata, "invalid JSON in %s", path).
			WithDetail("path", path)
	}

	var missing []string
	if pf.Machine == nil {
		missing = append(missing, "machine")
	} else {
		if pf.Machine.Model == nil {
			missing = append(missing, "machine.model")
		}
		if pf.Machine.Class == nil {
			missing = append(missing, "machine.class")
		}
		if pf.Machine.RapidTurn == nil {
			missing = append(missing, "machine.rapidturn")
		}
	}
	if len(missing) > 0 {
		return Identity{}, errors.Newf(errors.ErrMetadata, "missing data in %s: %s", path, strings.Join(missing, ", ")).
			WithDetail("path", path).
			WithDetail("keys", missing)
	}

	return Identity{
		Model:     *pf.Machine.Model,
		Class:     *pf.Machine.Class,
		RapidTurn: *pf.Machine.RapidTurn,
		Source:    path,
	}, nil
}

func missingOrUnreadable(err error, path string) error {
	if os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrNotFound, "%s is missing", path).WithDetail("path", path)
	}
	return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).WithDetail("path", path)
}
