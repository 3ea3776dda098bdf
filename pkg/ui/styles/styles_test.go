package styles_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/pathpirate/pathpirate/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesRegistered(t *testing.T) {
	for _, name := range []string{"Title", "Header", "Applied", "Info", "Error", "Muted", "Path", "Notice"} {
		t.Run(name, func(t *testing.T) {
			_, ok := styles.StyleRegistry[name]
			assert.True(t, ok, "style %s should be registered", name)
		})
	}
}

func TestConsoleColors(t *testing.T) {
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#1E8A3A", Dark: "#4CBB63"}, styles.Color("green"))
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#C46A00", Dark: "#FFA500"}, styles.Color("orange"))
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF5F56"}, styles.Color("red"))
	assert.Equal(t, lipgloss.NoColor{}, styles.Color("purple"))
}

func TestGetStyleUnknown(t *testing.T) {
	style := styles.GetStyle("DoesNotExist")
	assert.Equal(t, "plain", style.Render("plain"))
}

func TestLoadStylesFromData(t *testing.T) {
	data := []byte(`
colors:
  blue:
    light: "#0000AA"
    dark: "#5555FF"
styles:
  Custom:
    bold: true
    foreground: blue
`)
	require.NoError(t, styles.LoadStylesFromData(data))
	t.Cleanup(func() {
		require.NoError(t, styles.LoadDefaults())
	})

	assert.True(t, styles.GetStyle("Custom").GetBold())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#0000AA", Dark: "#5555FF"}, styles.GetStyle("Custom").GetForeground())
}

func TestLoadStylesFromDataInvalid(t *testing.T) {
	err := styles.LoadStylesFromData([]byte("colors: ["))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse styles data")
}
