package main

import (
	"fmt"
	"os"

	"github.com/pathpirate/pathpirate/cmd/pathpirate"
	"github.com/pathpirate/pathpirate/pkg/ui/display"
	"github.com/pathpirate/pathpirate/pkg/ui/styles"
)

func main() {
	rootCmd := pathpirate.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		for _, path := range display.Missing(err) {
			fmt.Fprintln(os.Stderr, "  "+path)
		}
		os.Exit(1)
	}
}
