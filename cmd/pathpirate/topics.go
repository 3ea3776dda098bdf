package pathpirate

import (
	"embed"

	"github.com/pathpirate/pathpirate/pkg/catalog"
	"github.com/pathpirate/pathpirate/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

//go:embed help
var helpFS embed.FS

// installTopics adds the help topics and one topic per transform
func installTopics(rootCmd *cobra.Command) error {
	opts := topics.Options{}
	if stdoutIsTerminal() {
		opts.Renderer = topics.NewGlamourRenderer()
	}
	tm := topics.New(opts)
	if err := tm.Load(helpFS, "help"); err != nil {
		return err
	}
	for _, t := range catalog.All() {
		tm.Add(t.Name, ".md", t.Description)
	}
	tm.Install(rootCmd)
	return nil
}
