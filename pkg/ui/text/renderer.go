// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/pathpirate/pathpirate/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	_, err := io.WriteString(r.output, display.Build(result).Text())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	if _, werr := fmt.Fprintf(r.output, "Error: %v\n", err); werr != nil {
		return werr
	}
	for _, path := range display.Missing(err) {
		if _, werr := fmt.Fprintf(r.output, "  missing: %s\n", path); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
