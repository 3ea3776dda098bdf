// Package pathpirate is the pathpirate command tree.
package pathpirate

import (
	"fmt"
	"io"
	"os"

	"github.com/pathpirate/pathpirate/internal/version"
	"github.com/pathpirate/pathpirate/pkg/command"
	"github.com/pathpirate/pathpirate/pkg/config"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/fetch"
	"github.com/pathpirate/pathpirate/pkg/filesystem"
	"github.com/pathpirate/pathpirate/pkg/firmware"
	"github.com/pathpirate/pathpirate/pkg/logging"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/session"
	"github.com/pathpirate/pathpirate/pkg/types"
	"github.com/pathpirate/pathpirate/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Deps are what the commands reach the machine through
type Deps struct {
	FS     types.FS
	Runner command.Runner
	// Fetcher and Flasher are built from the configuration when nil
	Fetcher fetch.Fetcher
	Flasher firmware.Flasher
	Confirm func(prompt string) (bool, error)
	Out     io.Writer
	Err     io.Writer
}

// DefaultDeps works on the real filesystem and terminal
func DefaultDeps() Deps {
	return Deps{
		FS:      filesystem.NewOS(),
		Runner:  command.NewExec(""),
		Confirm: confirm,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
}

type options struct {
	verbosity int
	format    string
	config    string
	home      string
}

// app is the state the commands of one invocation share
type app struct {
	deps     Deps
	opts     options
	renderer ui.Renderer
	session  *session.Session
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(DefaultDeps())
}

// NewRootCmdWith creates the root command over deps
func NewRootCmdWith(deps Deps) *cobra.Command {
	initTemplateFormatting()

	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:     "pathpirate",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setupRenderer()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetOut(deps.Out)
	rootCmd.SetErr(deps.Err)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.opts.format, "format", "auto", MsgFlagFormat)
	flags.StringVar(&a.opts.config, "config", "", MsgFlagConfig)
	flags.StringVar(&a.opts.home, "home", "", MsgFlagHome)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "install", Title: "PATHPILOT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "machine", Title: "MACHINE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newInfoCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newDescribeCmd())
	rootCmd.AddCommand(a.newApplyCmd())
	rootCmd.AddCommand(a.newRevertCmd())
	rootCmd.AddCommand(a.newCompareCmd())
	rootCmd.AddCommand(a.newFirmwareCmd())
	rootCmd.AddCommand(a.newBrakeCmd())
	rootCmd.AddCommand(a.newGenconfigCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))
	rootCmd.AddCommand(newVersionCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func (a *app) setupRenderer() error {
	format, err := ui.ParseFormat(a.opts.format)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	r, err := ui.NewRenderer(format, a.deps.Out)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create renderer")
	}
	a.renderer = r
	return nil
}

// configPath is --config or the XDG location
func (a *app) configPath() string {
	if a.opts.config != "" {
		return a.opts.config
	}
	return paths.ConfigFile()
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configPath())
	if err != nil {
		return nil, err
	}
	if a.opts.home != "" {
		cfg.Paths.Home = a.opts.home
	}
	return cfg, nil
}

// withSession runs fn against the active install and prints the exit
// notice afterwards, also when fn fails after changing something
func (a *app) withSession(fn func(s *session.Session) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	layout, err := paths.New(a.deps.FS, paths.Options{
		Home:    cfg.Paths.Home,
		TmcLink: cfg.Paths.TmcLink,
		Bundle:  cfg.Paths.Bundle,
	})
	if err != nil {
		return err
	}
	a.session = session.New(a.deps.FS, layout, cfg)
	log.Debug().
		Str("home", layout.Home()).
		Str("version_dir", layout.VersionDir()).
		Str("bundle", layout.Bundle()).
		Msg("Session opened")

	defer a.printNotice()
	return fn(a.session)
}

func (a *app) printNotice() {
	if notice := a.session.ExitNotice(); notice != "" {
		if err := a.renderer.RenderMessage(notice); err != nil {
			log.Error().Err(err).Msg("Failed to print exit notice")
		}
	}
}

func (a *app) fetcher(cfg *config.Config) fetch.Fetcher {
	if a.deps.Fetcher != nil {
		return a.deps.Fetcher
	}
	return fetch.New(cfg.Halshow.ProbeAddress, cfg.Halshow.Timeout)
}

func (a *app) flasher(cfg *config.Config) firmware.Flasher {
	if a.deps.Flasher != nil {
		return a.deps.Flasher
	}
	return firmware.NewMesaflash(a.deps.Runner, cfg.Firmware.Tool, cfg.Firmware.Device)
}

// confirmed asks the operator unless yes is set
func (a *app) confirmed(yes bool, prompt string) error {
	if yes {
		return nil
	}
	ok, err := a.deps.Confirm(prompt)
	if err != nil {
		return errors.Wrap(err, errors.ErrAborted, "failed to read the answer")
	}
	if !ok {
		return errors.New(errors.ErrAborted, MsgErrCancelled)
	}
	return nil
}
