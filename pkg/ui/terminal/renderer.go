// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pathpirate/pathpirate/pkg/ui/display"
	"github.com/pathpirate/pathpirate/pkg/ui/styles"
)

const wrapWidth = 80

// Renderer draws documents with the lipgloss style registry and renders
// markdown through glamour
type Renderer struct {
	output   io.Writer
	markdown *glamour.TermRenderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{output: w, markdown: md}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	doc := display.Build(result)

	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(styles.GetStyle("Title").Render(doc.Title))
		b.WriteString("\n")
	}
	for _, line := range doc.Lines {
		b.WriteString(strings.Repeat("  ", line.Indent))
		b.WriteString(style(line.Tone).Render(line.Text))
		b.WriteString("\n")
	}
	if doc.Markdown != "" {
		out, err := r.markdown.Render(doc.Markdown)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		b.WriteString(out)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error in red, listing any missing files
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(styles.GetStyle("Error").Render("Error: " + err.Error()))
	b.WriteString("\n")
	for _, path := range display.Missing(err) {
		b.WriteString("  ")
		b.WriteString(styles.GetStyle("Path").Render(path))
		b.WriteString("\n")
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Notice").Render(msg))
	return err
}

func style(tone display.Tone) lipgloss.Style {
	if tone == display.ToneNormal {
		return lipgloss.NewStyle()
	}
	return styles.GetStyle(string(tone))
}
