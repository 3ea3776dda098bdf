package pathpirate

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Reversible modifications for Tormach PathPilot"
	MsgInfoShort       = "Show the active PathPilot install and what is applied"
	MsgListShort       = "List the available transforms"
	MsgDescribeShort   = "Show what a transform does"
	MsgApplyShort      = "Apply a transform to the active install"
	MsgRevertShort     = "Undo every transform on the active install"
	MsgCompareShort    = "Compare a config file with a previous version"
	MsgFirmwareShort   = "Verify or write the FPGA bitfile"
	MsgVerifyShort     = "Check the board against the bitfile"
	MsgFlashShort      = "Write the bitfile to the board"
	MsgBrakeShort      = "Release or engage the servo brake"
	MsgReleaseShort    = "Release the servo brake"
	MsgEngageShort     = "Engage the servo brake"
	MsgGenconfigShort  = "Print or write the default configuration"
	MsgConfigShort     = "Show the effective configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgConfigWritten = "Configuration written to %s"
	MsgVersionFormat = "pathpirate version %s\n  commit: %s\n  built:  %s\n"
	MsgFlashConfirm  = "Write %s to the %s board?"
	MsgBrakeConfirm  = "Release the servo brake?"

	// Error messages
	MsgErrCancelled     = "cancelled by the operator"
	MsgErrConfigExists  = "configuration file %s already exists"
	MsgErrBitfileAbsent = "the bitfile to %s is missing"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat       = "Output format (auto, term, text, json, yaml)"
	MsgFlagConfig       = "Config file (default is $XDG_CONFIG_HOME/pathpirate/config.toml)"
	MsgFlagHome         = "Home directory of the PathPilot operator account"
	MsgFlagEncoderScale = "Encoder counts per revolution (default from config)"
	MsgFlagPrevious     = "Directory of the previous PathPilot version"
	MsgFlagPatch        = "Print a unified diff instead of the line report"
	MsgFlagFile         = "Bitfile to verify or write (default is the installed one)"
	MsgFlagYes          = "Do not ask for confirmation"
	MsgFlagWrite        = "Write the file instead of printing it"
	MsgFlagManDir       = "Directory to write the man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/revert-long.txt
	msgRevertLongRaw string
	MsgRevertLong    = strings.TrimSpace(msgRevertLongRaw)

	//go:embed msgs/compare-long.txt
	msgCompareLongRaw string
	MsgCompareLong    = strings.TrimSpace(msgCompareLongRaw)

	//go:embed msgs/compare-example.txt
	msgCompareExampleRaw string
	MsgCompareExample    = strings.TrimRight(msgCompareExampleRaw, "\n")

	//go:embed msgs/firmware-long.txt
	msgFirmwareLongRaw string
	MsgFirmwareLong    = strings.TrimSpace(msgFirmwareLongRaw)

	//go:embed msgs/brake-long.txt
	msgBrakeLongRaw string
	MsgBrakeLong    = strings.TrimSpace(msgBrakeLongRaw)

	//go:embed msgs/brake-example.txt
	msgBrakeExampleRaw string
	MsgBrakeExample    = strings.TrimRight(msgBrakeExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenconfigLongRaw string
	MsgGenconfigLong    = strings.TrimSpace(msgGenconfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
