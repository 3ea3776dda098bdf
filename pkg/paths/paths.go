package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for pathpirate
	EnvConfigDir = "PATHPIRATE_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Tool-owned names
const (
	// AppDirName is the directory name for pathpirate-specific files
	AppDirName = "pathpirate"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// DefaultTmcLink is the name of the active-version symlink in home
	DefaultTmcLink = "tmc"

	// DefaultBundleDir is the name of the bundle directory next to the executable
	DefaultBundleDir = "files"

	// BackupSuffix is appended to a target path to name its backup
	BackupSuffix = ".bak"
)

// Locations inside a PathPilot version directory. These are fixed by
// PathPilot and are not configurable.
const (
	MillINI         = "configs/tormach_mill/tormach_mill_base.ini"
	MillHAL         = "configs/tormach_mill/tormach_mill_mesa.hal"
	LatheHAL        = "configs/tormach_lathe/tormach_lathe_mesa.hal"
	Console3AxisHAL = "configs/common/operator_console_controls_3axis.hal"
	Console4AxisHAL = "configs/common/operator_console_controls_4axis.hal"
	UICommon        = "python/ui_common.py"
	MaxVelImage     = "images/MAXVEL_100.jpg"
	MesaDir         = "mesa"
	HalshowScript   = "bin/halshow"
	TclBinDir       = "tcl/bin"
	Halcmd          = "bin/halcmd"
	VersionFile     = "version.json"
)

// Machine identity files, relative to home
const (
	PathPilotJSON = "pathpilot.json"
	MachineJSON   = "machine.json"
)

// Layout resolves PathPilot and bundle locations
type Layout struct {
	home       string
	tmcLink    string
	versionDir string
	bundle     string
}

// Options controls how a Layout is resolved. Empty fields fall back to
// the defaults.
type Options struct {
	Home    string
	TmcLink string
	Bundle  string
}

// New resolves the layout. The ~/tmc link is followed once; when it is a
// plain directory rather than a symlink it is used as the version directory.
func New(fs types.FS, opts Options) (*Layout, error) {
	home := expandHome(opts.Home)
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrNotFound, "failed to determine home directory")
		}
		home = h
	}
	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for home %s", home)
	}

	linkName := opts.TmcLink
	if linkName == "" {
		linkName = DefaultTmcLink
	}

	bundle := expandHome(opts.Bundle)
	if bundle == "" {
		bundle = defaultBundle()
	}

	l := &Layout{
		home:    absHome,
		tmcLink: filepath.Join(absHome, linkName),
		bundle:  bundle,
	}

	versionDir, err := resolveLink(fs, l.tmcLink)
	if err != nil {
		return nil, err
	}
	l.versionDir = versionDir
	return l, nil
}

// resolveLink follows link once. Relative targets are resolved against
// the link's directory.
func resolveLink(fs types.FS, link string) (string, error) {
	info, err := fs.Lstat(link)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "PathPilot directory %s not found", link).
			WithDetail("path", link)
	}

	if info.Mode()&os.ModeSymlink == 0 && info.IsDir() {
		return link, nil
	}

	target, err := fs.Readlink(link)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "failed to read link %s", link)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	return filepath.Clean(target), nil
}

// defaultBundle locates the bundle directory next to the executable
func defaultBundle() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultBundleDir
	}
	return filepath.Join(filepath.Dir(exe), DefaultBundleDir)
}

// Home returns the operator home directory
func (l *Layout) Home() string {
	return l.home
}

// TmcLink returns the path of the active-version symlink
func (l *Layout) TmcLink() string {
	return l.tmcLink
}

// VersionDir returns the directory the active-version symlink points to
func (l *Layout) VersionDir() string {
	return l.versionDir
}

// VersionName returns the basename of the active version directory
func (l *Layout) VersionName() string {
	return filepath.Base(l.versionDir)
}

// Path returns rel inside the active version directory
func (l *Layout) Path(rel string) string {
	return filepath.Join(l.versionDir, filepath.FromSlash(rel))
}

// PathIn returns rel inside another version directory
func (l *Layout) PathIn(versionDir, rel string) string {
	return filepath.Join(versionDir, filepath.FromSlash(rel))
}

// HomePath returns rel inside the operator home
func (l *Layout) HomePath(rel string) string {
	return filepath.Join(l.home, filepath.FromSlash(rel))
}

// Bundle returns the bundle directory
func (l *Layout) Bundle() string {
	return l.bundle
}

// BundlePath returns rel inside the bundle directory
func (l *Layout) BundlePath(rel string) string {
	return filepath.Join(l.bundle, filepath.FromSlash(rel))
}

// ConfigDir returns the XDG config directory for pathpirate
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the default user configuration file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}
