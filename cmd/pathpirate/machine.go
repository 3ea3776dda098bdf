package pathpirate

import (
	"context"
	"fmt"
	"path"

	"github.com/pathpirate/pathpirate/pkg/brake"
	"github.com/pathpirate/pathpirate/pkg/catalog"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/firmware"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/session"
	"github.com/pathpirate/pathpirate/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) newFirmwareCmd() *cobra.Command {
	var (
		file string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:     "firmware",
		Short:   MsgFirmwareShort,
		Long:    MsgFirmwareLong,
		GroupID: "machine",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", MsgFlagFile)
	_ = cmd.MarkPersistentFlagFilename("file", "bit")

	cmd.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: MsgVerifyShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFirmware(cmd.Context(), firmware.OpVerify, file, true)
		},
	})

	flash := &cobra.Command{
		Use:   "flash",
		Short: MsgFlashShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFirmware(cmd.Context(), firmware.OpFlash, file, yes)
		},
	}
	flash.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.AddCommand(flash)

	return cmd
}

// runFirmware runs the flasher in the background and relays its output
// to stderr until it finishes
func (a *app) runFirmware(ctx context.Context, op firmware.Operation, file string, yes bool) error {
	return a.withSession(func(s *session.Session) error {
		cfg := s.Config
		if file == "" {
			file = s.Layout.Path(path.Join(paths.MesaDir, catalog.BitfileName))
		}
		if _, err := s.FS.Stat(file); err != nil {
			return errors.Newf(errors.ErrMissingFiles, MsgErrBitfileAbsent, op).
				WithDetail("missing", []string{file})
		}
		if op == firmware.OpFlash {
			if err := a.confirmed(yes, fmt.Sprintf(MsgFlashConfirm, file, cfg.Firmware.Device)); err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(ctx, cfg.Firmware.Timeout)
		defer cancel()

		log.Info().Str("operation", string(op)).Str("file", file).Msg("Starting firmware job")
		job := firmware.Start(ctx, a.flasher(cfg), op, file, func(line string) {
			_, _ = fmt.Fprintln(a.deps.Err, line)
		})
		result, err := job.Wait()
		if result.Written {
			s.MarkPowerCycle()
		}
		if err != nil {
			return err
		}
		return a.renderer.RenderResult(result)
	})
}

func (a *app) newBrakeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "brake",
		Short:   MsgBrakeShort,
		Long:    MsgBrakeLong,
		Example: MsgBrakeExample,
		GroupID: "machine",
	}

	release := &cobra.Command{
		Use:   "release",
		Short: MsgReleaseShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrake(cmd.Context(), "release", yes)
		},
	}
	release.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.AddCommand(release)

	cmd.AddCommand(&cobra.Command{
		Use:   "engage",
		Short: MsgEngageShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrake(cmd.Context(), "engage", true)
		},
	})

	return cmd
}

func (a *app) runBrake(ctx context.Context, action string, yes bool) error {
	return a.withSession(func(s *session.Session) error {
		ctrl := brake.New(s, a.deps.Runner)
		setup, err := ctrl.Prepare(ctx)
		if err != nil {
			return err
		}

		if action == "release" {
			if err := a.confirmed(yes, brake.Warning+"\n\n"+MsgBrakeConfirm); err != nil {
				return err
			}
			err = ctrl.Release(ctx, setup)
		} else {
			err = ctrl.Engage(ctx, setup)
		}
		if err != nil {
			return err
		}

		return a.renderer.RenderResult(&display.BrakeResult{
			Action: action,
			Model:  setup.Model,
			Board:  setup.Board,
			GPIO:   setup.GPIO,
			Axis:   setup.Axis,
		})
	})
}
