package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/backups.md":          {Data: []byte("# Backups\n\nOne .bak per file")},
		"help/option-format.txt":   {Data: []byte("Output formats")},
		"help/option-yes.txt":      {Data: []byte("Skip confirmation")},
		"help/advanced/halcmd.txt": {Data: []byte("halcmd help")},
		"help/notes.txxt":          {Data: []byte("custom extension")},
		"help/ignore.json":         {Data: []byte("{}")},
	}
}

func TestLoad(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(Options{})
		require.NoError(t, tm.Load(testFS(), "help"))

		assert.Equal(t, []string{"backups", "halcmd", "option-format", "option-yes"}, tm.ListTopics())
		topic, ok := tm.GetTopic("backups")
		require.True(t, ok)
		assert.Equal(t, ".md", topic.Format)
		assert.Equal(t, "# Backups\n\nOne .bak per file", topic.Content)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := New(Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Load(testFS(), "help"))
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("missing directory", func(t *testing.T) {
		tm := New(Options{})
		require.NoError(t, tm.Load(testFS(), "nope"))
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopic(t *testing.T) {
	tm := New(Options{})
	require.NoError(t, tm.Load(testFS(), "help"))

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"backups", "backups", true},
		{"option-format", "option-format", true},
		{"format", "option-format", true},
		{"--format", "option-format", true},
		{"-yes", "option-yes", true},
		{"-y", "", false},
		{"nonexistent", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestAddReplaces(t *testing.T) {
	tm := New(Options{})
	tm.Add("add-encoder", ".md", "first")
	tm.Add("add-encoder", ".txt", "second")

	topic, ok := tm.GetTopic("add-encoder")
	require.True(t, ok)
	assert.Equal(t, "second", topic.Content)
	assert.Equal(t, "second", tm.Render(topic))
}

func newApp(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "testapp", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Apply a transform",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	var out bytes.Buffer
	root.SetOut(&out)

	tm := New(Options{})
	require.NoError(t, tm.Load(testFS(), "help"))
	tm.Install(root)
	return root, &out
}

func TestInstallHelpCommand(t *testing.T) {
	root, _ := newApp(t)

	helpCmd, _, err := root.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpShowsTopic(t *testing.T) {
	root, out := newApp(t)
	root.SetArgs([]string{"help", "format"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Output formats", out.String())
}

func TestHelpListsTopics(t *testing.T) {
	root, out := newApp(t)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "General topics:\n  backups\n  halcmd\n")
	assert.Contains(t, out.String(), "Option topics:\n  --format\n  --yes\n")
	assert.Contains(t, out.String(), "Use 'testapp help <topic>'")
}

func TestHelpFallsBackToCommands(t *testing.T) {
	root, out := newApp(t)
	root.SetArgs([]string{"help", "apply"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Apply a transform")
}

func TestGlamourRendererPassesPlainText(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}
