package pathpirate

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/brake"
	"github.com/pathpirate/pathpirate/pkg/command"
	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/paths"
	"github.com/pathpirate/pathpirate/pkg/session"
	"github.com/pathpirate/pathpirate/pkg/testutil"
	"github.com/pathpirate/pathpirate/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// harness runs the command tree against an in-memory install
type harness struct {
	install *testutil.Install
	runner  *testutil.MockRunner
	fetcher *testutil.MockFetcher
	flasher *testutil.MockFlasher
	config  string

	answer  bool
	prompts []string

	out bytes.Buffer
	err bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	i := testutil.NewInstall(t, testutil.EnvMemoryOnly, testutil.InstallOptions{})
	t.Setenv("PATHPIRATE_PATHS__BUNDLE", i.Bundle)

	fetcher := &testutil.MockFetcher{}
	fetcher.On("Online").Return(false)

	return &harness{
		install: i,
		runner:  &testutil.MockRunner{},
		fetcher: fetcher,
		flasher: &testutil.MockFlasher{},
		config:  filepath.Join(t.TempDir(), "config.toml"),
	}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	h.err.Reset()
	cmd := NewRootCmdWith(Deps{
		FS:      h.install.FS,
		Runner:  h.runner,
		Fetcher: h.fetcher,
		Flasher: h.flasher,
		Confirm: func(prompt string) (bool, error) {
			h.prompts = append(h.prompts, prompt)
			return h.answer, nil
		},
		Out: &h.out,
		Err: &h.err,
	})
	cmd.SetArgs(append([]string{"--home", h.install.Home, "--format", "text", "--config", h.config}, args...))
	return cmd.Execute()
}

func TestNoCommand(t *testing.T) {
	h := newHarness(t)
	err := h.run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestInvalidFormat(t *testing.T) {
	h := newHarness(t)
	err := h.run("--format", "xml", "list")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestListCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("list"))
	for _, name := range []string{"add-halshow", "convert-velocity-slider", "add-encoder", "add-servos"} {
		assert.Contains(t, h.out.String(), name+"\n")
	}
}

func TestDescribeCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("describe", "add-halshow"))
	assert.Contains(t, h.out.String(), "ADMIN HALSHOW")

	err := h.run("describe", "add-coolant")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransformNotFound))
}

func TestApplyCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("apply", "convert-velocity-slider"))
	assert.Contains(t, h.out.String(), h.install.Path(paths.UICommon)+" was successfully updated\n")
	assert.True(t, strings.HasSuffix(h.out.String(), session.NoticeRestart+"\n"))

	require.NoError(t, h.run("apply", "convert-velocity-slider"))
	assert.Contains(t, h.out.String(), "are already present")
	assert.Contains(t, h.out.String(), "Nothing changed\n")
	assert.NotContains(t, h.out.String(), session.NoticeRestart)
}

func TestApplyEncoderCommandNeedsPowerCycle(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("apply", "add-encoder", "--encoder-scale", "2000"))
	assert.Contains(t, h.install.Read(paths.MillHAL), "setp hm2_5i25.0.encoder.00.scale 2000\n")
	assert.Contains(t, h.out.String(), session.NoticePowerCycle)
}

func TestApplyCommandMissingFiles(t *testing.T) {
	h := newHarness(t)
	h.install.Remove(h.install.BundlePath("5i25_t2_7i85s_dpll.bit"))
	before := h.install.Snapshot()

	err := h.run("apply", "add-encoder")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingFiles))
	assert.Equal(t, []string{h.install.BundlePath("5i25_t2_7i85s_dpll.bit")}, display.Missing(err))
	assert.Empty(t, h.out.String())
	assert.Equal(t, before, h.install.Snapshot())
}

func TestApplyCommandUnknownTransform(t *testing.T) {
	h := newHarness(t)
	err := h.run("apply", "add-coolant")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransformNotFound))
}

func TestRevertCommand(t *testing.T) {
	h := newHarness(t)
	original := h.install.Snapshot()

	require.NoError(t, h.run("apply", "convert-velocity-slider"))
	require.NoError(t, h.run("revert"))
	assert.Contains(t, h.out.String(), "Restored "+h.install.Path(paths.UICommon)+"\n")
	assert.Contains(t, h.out.String(), session.NoticeRestart)
	assert.Equal(t, original, h.install.Snapshot())

	require.NoError(t, h.run("revert"))
	assert.Contains(t, h.out.String(), "Nothing to revert\n")
}

func TestInfoCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("apply", "convert-velocity-slider"))

	require.NoError(t, h.run("info"))
	assert.Contains(t, h.out.String(), "Version:    v2.9.2 (supported)\n")
	assert.Contains(t, h.out.String(), "Variant:    mill-7i85s\n")
	assert.Contains(t, h.out.String(), "Applied:    convert-velocity-slider\n")
}

func TestInfoCommandJSON(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("--format", "json", "info"))

	var info display.Info
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &info))
	assert.Equal(t, h.install.VersionDir, info.VersionDir)
	assert.Equal(t, "1100-3", info.Model)
	assert.Equal(t, []string{}, info.Applied)
	assert.Empty(t, info.Problems)
}

func TestInfoCommandReportsMetadataProblems(t *testing.T) {
	h := newHarness(t)
	h.install.Remove(filepath.Join(h.install.Home, paths.PathPilotJSON))

	require.NoError(t, h.run("info"))
	assert.NotContains(t, h.out.String(), "Machine:")
	assert.NotContains(t, h.out.String(), "Variant:")
	assert.Contains(t, h.out.String(), filepath.Join(h.install.Home, paths.PathPilotJSON)+" is missing")
}

func (h *harness) previousVersion(t *testing.T, extra string) string {
	t.Helper()
	dir := filepath.Join(h.install.Home, "v2.9.1")
	for rel, content := range map[string]string{
		paths.MillINI: testutil.MillINI + extra,
		paths.MillHAL: testutil.MillHAL,
	} {
		path := filepath.Join(dir, rel)
		require.NoError(t, h.install.FS.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, h.install.FS.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestCompareCommand(t *testing.T) {
	h := newHarness(t)
	h.previousVersion(t, "EXTRA = 1\n")

	require.NoError(t, h.run("compare", "ini", "--previous", "v2.9.1"))
	assert.Contains(t, h.out.String(), "The following changes exist between versions:\n")
	assert.Contains(t, h.out.String(), "v2.9.1: EXTRA = 1\n")
}

func TestCompareCommandPatch(t *testing.T) {
	h := newHarness(t)
	dir := h.previousVersion(t, "EXTRA = 1\n")

	require.NoError(t, h.run("compare", "ini", "--previous", dir, "--patch"))
	assert.Contains(t, h.out.String(), "\n-EXTRA = 1\n")
}

func TestCompareCommandIdentical(t *testing.T) {
	h := newHarness(t)
	h.previousVersion(t, "")

	require.NoError(t, h.run("compare", "hal", "--previous", "v2.9.1"))
	assert.Contains(t, h.out.String(), "No changes present (the files are the same)\n")
}

func TestCompareCommandRequiresPrevious(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("compare", "ini"))
}

func installedBitfile(h *harness) string {
	return h.install.Path(filepath.Join(paths.MesaDir, "5i25_t2_7i85s_dpll.bit"))
}

func TestFirmwareVerifyCommand(t *testing.T) {
	h := newHarness(t)
	h.install.WriteBytes(filepath.Join(paths.MesaDir, "5i25_t2_7i85s_dpll.bit"), testutil.Bitfile)
	h.flasher.On("Verify", installedBitfile(h)).Return(true, []string{"Verifying..."}, nil)

	require.NoError(t, h.run("firmware", "verify"))
	assert.Contains(t, h.err.String(), "Verifying...\n")
	assert.Contains(t, h.out.String(), "The board matches "+installedBitfile(h))
	assert.NotContains(t, h.out.String(), session.NoticePowerCycle)
}

func TestFirmwareFlashCommand(t *testing.T) {
	h := newHarness(t)
	h.install.WriteBytes(filepath.Join(paths.MesaDir, "5i25_t2_7i85s_dpll.bit"), testutil.Bitfile)
	h.flasher.On("Flash", installedBitfile(h)).Return([]string{"Writing...", "Done"}, nil)

	require.NoError(t, h.run("firmware", "flash", "--yes"))
	assert.Contains(t, h.err.String(), "Writing...\nDone\n")
	assert.Contains(t, h.out.String(), session.NoticePowerCycle)
	assert.Empty(t, h.prompts)
}

func TestFirmwareFlashDeclined(t *testing.T) {
	h := newHarness(t)
	h.install.WriteBytes(filepath.Join(paths.MesaDir, "5i25_t2_7i85s_dpll.bit"), testutil.Bitfile)

	err := h.run("firmware", "flash")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))
	require.Len(t, h.prompts, 1)
	assert.Contains(t, h.prompts[0], installedBitfile(h))
	h.flasher.AssertNotCalled(t, "Flash", mock.Anything)
}

func TestFirmwareMissingBitfile(t *testing.T) {
	h := newHarness(t)
	err := h.run("firmware", "verify")
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingFiles))
	assert.Equal(t, []string{installedBitfile(h)}, display.Missing(err))
}

func TestBrakeReleaseCommand(t *testing.T) {
	h := newHarness(t)
	h.install.Write(paths.MillHAL, testutil.MillHAL+"# #Changed by PathPirate[servos]\n")
	h.runner.On("Run", mock.Anything, mock.Anything).Return(command.Output{Stdout: "FALSE\n"}, nil)
	h.answer = true

	require.NoError(t, h.run("brake", "release"))
	require.Len(t, h.prompts, 1)
	assert.True(t, strings.HasPrefix(h.prompts[0], brake.Warning))
	assert.Contains(t, h.out.String(), "Z-axis brake released\n")
}

func TestBrakeReleaseDeclined(t *testing.T) {
	h := newHarness(t)
	h.install.Write(paths.MillHAL, testutil.MillHAL+"# #Changed by PathPirate[servos]\n")
	h.runner.On("Run", mock.Anything, mock.Anything).Return(command.Output{Stdout: "FALSE\n"}, nil)

	err := h.run("brake", "release")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))
	// Only the precondition queries ran
	assert.Len(t, h.runner.Calls, 2)
}

func TestBrakeEngageCommand(t *testing.T) {
	h := newHarness(t)
	h.install.Write(paths.MillHAL, testutil.MillHAL+"# #Changed by PathPirate[servos]\n")
	h.runner.On("Run", mock.Anything, mock.Anything).Return(command.Output{Stdout: "FALSE\n"}, nil)

	require.NoError(t, h.run("brake", "engage"))
	assert.Empty(t, h.prompts)
	assert.Contains(t, h.out.String(), "Z-axis brake engaged\n")
}

func TestGenconfigCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("genconfig"))
	assert.Contains(t, h.out.String(), "[encoder]\n")
	assert.Contains(t, h.out.String(), "# scale = -1440\n")

	require.NoError(t, h.run("genconfig", "--write"))
	data, err := h.install.FS.ReadFile(h.config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# scale = -1440\n")

	err = h.run("genconfig", "--write")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestConfigCommand(t *testing.T) {
	h := newHarness(t)
	t.Setenv("PATHPIRATE_ENCODER__SCALE", "-2880")

	require.NoError(t, h.run("config"))
	assert.Contains(t, h.out.String(), "[encoder]")
	assert.Contains(t, h.out.String(), "-2880")
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("version"))
	assert.Contains(t, h.out.String(), "pathpirate version dev\n")
}

func TestHelpTopics(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("help", "topics"))
	assert.Contains(t, h.out.String(), "  backups\n")
	assert.Contains(t, h.out.String(), "  add-encoder\n")
	assert.Contains(t, h.out.String(), "  --yes\n")

	require.NoError(t, h.run("help", "yes"))
	assert.Contains(t, h.out.String(), "brake release")

	require.NoError(t, h.run("help", "add-halshow"))
	assert.Contains(t, h.out.String(), "ADMIN HALSHOW")
}
