package pathpirate

import (
	"github.com/pathpirate/pathpirate/pkg/catalog"
	"github.com/pathpirate/pathpirate/pkg/compare"
	"github.com/pathpirate/pathpirate/pkg/revert"
	"github.com/pathpirate/pathpirate/pkg/session"
	"github.com/pathpirate/pathpirate/pkg/transform"
	"github.com/pathpirate/pathpirate/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// transformNamesCompletion provides shell completion for transform names
func transformNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   MsgInfoShort,
		Args:    cobra.NoArgs,
		GroupID: "install",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session.Session) error {
				return a.renderer.RenderResult(installInfo(s))
			})
		},
	}
}

// installInfo describes the install. Metadata problems are reported, not
// returned, so info works on a half-broken install.
func installInfo(s *session.Session) *display.Info {
	info := &display.Info{
		Home:       s.Layout.Home(),
		VersionDir: s.Layout.VersionDir(),
		Applied:    append([]string{}, catalog.Applied(s)...),
	}

	versionErr := s.RequireVersion()
	if versionErr != nil {
		info.Problems = append(info.Problems, versionErr.Error())
	} else {
		info.Version = s.Version.Raw
		info.Supported = s.Version.Supported()
	}

	machineErr := s.RequireMachine()
	if machineErr != nil {
		info.Problems = append(info.Problems, machineErr.Error())
	} else {
		info.Model = s.Machine.Model
		info.Class = s.Machine.Class
		info.RapidTurn = s.Machine.RapidTurn
		info.Source = s.Machine.Source
	}

	if versionErr == nil && machineErr == nil {
		if v, err := catalog.ResolveVariant(s.Machine.Model, s.Version.Minor()); err == nil {
			info.Variant = v.Name
		}
	}
	return info
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Args:    cobra.NoArgs,
		GroupID: "install",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := &display.Catalog{}
			for _, t := range catalog.All() {
				list.Transforms = append(list.Transforms, display.TransformEntry{
					Name:         t.Name,
					Summary:      t.Summary,
					Marker:       t.Marker.String(),
					NeedsVariant: t.NeedsVariant,
					Targets:      t.Targets,
				})
			}
			return a.renderer.RenderResult(list)
		},
	}
}

func (a *app) newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "describe <transform>",
		Short:             MsgDescribeShort,
		Args:              cobra.ExactArgs(1),
		GroupID:           "install",
		ValidArgsFunction: transformNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(&display.Description{
				Name:     t.Name,
				Summary:  t.Summary,
				Markdown: t.Description,
			})
		},
	}
}

func (a *app) newApplyCmd() *cobra.Command {
	var encoderScale int

	cmd := &cobra.Command{
		Use:               "apply <transform>",
		Short:             MsgApplyShort,
		Long:              MsgApplyLong,
		Example:           MsgApplyExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "install",
		ValidArgsFunction: transformNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session.Session) error {
				log.Info().Str("transform", args[0]).Str("version_dir", s.Layout.VersionDir()).Msg("Applying transform")

				runner := catalog.NewRunner(s.FS, a.fetcher(s.Config))
				report, err := runner.Apply(cmd.Context(), s, args[0], transform.Params{EncoderScale: encoderScale})
				if report == nil || len(report.Missing) > 0 {
					return err
				}
				if rerr := a.renderer.RenderResult(report); rerr != nil {
					return rerr
				}
				return err
			})
		},
	}

	cmd.Flags().IntVar(&encoderScale, "encoder-scale", 0, MsgFlagEncoderScale)

	return cmd
}

func (a *app) newRevertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "revert",
		Short:   MsgRevertShort,
		Long:    MsgRevertLong,
		Args:    cobra.NoArgs,
		GroupID: "install",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session.Session) error {
				result, err := revert.New(s).RevertAll()
				if rerr := a.renderer.RenderResult(result); rerr != nil {
					return rerr
				}
				return err
			})
		},
	}
}

func (a *app) newCompareCmd() *cobra.Command {
	var (
		previous string
		patch    bool
	)

	cmd := &cobra.Command{
		Use:       "compare <ini|hal>",
		Short:     MsgCompareShort,
		Long:      MsgCompareLong,
		Example:   MsgCompareExample,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(compare.KindINI), string(compare.KindHAL)},
		GroupID:   "install",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session.Session) error {
				dir, err := compare.ResolvePrevious(s.FS, s.Layout, previous)
				if err != nil {
					return err
				}
				old, cur, err := compare.Load(s.FS, s.Layout, dir, compare.Kind(args[0]))
				if err != nil {
					return err
				}
				report, err := compare.Compare(old, cur)
				if err != nil {
					return err
				}
				if patch {
					data, err := report.Patch()
					if err != nil {
						return err
					}
					_, err = a.deps.Out.Write(data)
					return err
				}
				return a.renderer.RenderResult(report)
			})
		},
	}

	cmd.Flags().StringVar(&previous, "previous", "", MsgFlagPrevious)
	cmd.Flags().BoolVar(&patch, "patch", false, MsgFlagPatch)
	_ = cmd.MarkFlagRequired("previous")
	_ = cmd.MarkFlagDirname("previous")

	return cmd
}
