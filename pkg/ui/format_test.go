package ui_test

import (
	"os"
	"testing"

	"github.com/pathpirate/pathpirate/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every name offered in --format help must parse back to itself
func TestFormatsRoundTrip(t *testing.T) {
	for _, name := range ui.Formats {
		f, err := ui.ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.String())
	}
	assert.Equal(t, "unknown", ui.Format(42).String())
}

func TestParseFormatAliases(t *testing.T) {
	for in, want := range map[string]ui.Format{
		"":         ui.FormatAuto,
		"terminal": ui.FormatTerminal,
		"plain":    ui.FormatText,
		"yml":      ui.FormatYAML,
		"JSON":     ui.FormatJSON,
	} {
		got, err := ui.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ui.ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format: xml")
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("redirected output is text", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "report")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}

func TestStructured(t *testing.T) {
	assert.True(t, ui.FormatJSON.Structured())
	assert.True(t, ui.FormatYAML.Structured())
	assert.False(t, ui.FormatText.Structured())
	assert.False(t, ui.FormatTerminal.Structured())
}
