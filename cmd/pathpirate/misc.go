package pathpirate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pathpirate/pathpirate/internal/version"
	"github.com/pathpirate/pathpirate/pkg/config"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func (a *app) newGenconfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenconfigShort,
		Long:    MsgGenconfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(a.deps.Out, content)
				return err
			}

			target := a.configPath()
			if _, err := a.deps.FS.Stat(target); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, target).
					WithDetail("path", target)
			}
			if err := a.deps.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(target))
			}
			if err := a.deps.FS.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
			}
			log.Info().Str("path", target).Msg("Wrote configuration")
			return a.renderer.RenderMessage(fmt.Sprintf(MsgConfigWritten, target))
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)

	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = a.deps.Out.Write(data)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			default:
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			}
		},
	}
}

func newManCmd(root *cobra.Command) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Hidden:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "PATHPIRATE",
				Section: "1",
			}
			return doc.GenManTree(root, header, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
