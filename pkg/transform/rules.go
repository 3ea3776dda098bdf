package transform

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/pathpirate/pathpirate/pkg/marker"
	"github.com/pathpirate/pathpirate/pkg/types"
)

// Kind identifies a rule kind
type Kind string

const (
	KindReplace Kind = "replace"
	KindAppend  Kind = "append"
	KindFile    Kind = "file"
	KindSection Kind = "section"
)

// Env is what a rule sees while it rewrites content
type Env struct {
	FS     types.FS
	Marker marker.Marker
	Params Params
}

// Mark appends the marker comment to s
func (e Env) Mark(s string) string {
	if e.Marker == "" {
		return s
	}
	return s + " " + e.Marker.Comment()
}

// Change is the result of one rule on the content
type Change struct {
	Content []byte
	Applied int
	Skipped int
}

// Rule rewrites file content
type Rule interface {
	Kind() Kind
	Describe() string
	Apply(content []byte, env Env) (Change, error)
}

// ReplaceRule replaces every occurrence of Old
type ReplaceRule struct {
	Old string
	New string
}

// Replace builds a literal replace rule. The marker comment is appended
// to New when the rule runs.
func Replace(old, new string) *ReplaceRule {
	return &ReplaceRule{Old: old, New: new}
}

func (r *ReplaceRule) Kind() Kind { return KindReplace }

func (r *ReplaceRule) Describe() string {
	return fmt.Sprintf("`%s` → `%s`", r.Old, r.New)
}

func (r *ReplaceRule) Apply(content []byte, env Env) (Change, error) {
	if !bytes.Contains(content, []byte(r.Old)) {
		return Change{Content: content, Skipped: 1}, nil
	}
	out := bytes.ReplaceAll(content, []byte(r.Old), []byte(env.Mark(r.New)))
	return Change{Content: out, Applied: 1}, nil
}

// AppendRule appends a templated block
type AppendRule struct {
	Block string
	tmpl  *template.Template
}

// blockData is the data a block template is executed with
type blockData struct {
	Params
	Marker marker.Marker
}

// ParseAppend builds a block append rule from a text/template block
func ParseAppend(block string) (*AppendRule, error) {
	tmpl, err := template.New("block").Option("missingkey=error").Parse(block)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTransformRule, "malformed block template")
	}
	return &AppendRule{Block: block, tmpl: tmpl}, nil
}

// Append is ParseAppend for static blocks and panics on a malformed
// template. Catalog blocks are package-level variables, so a bad one
// fails when the program starts rather than during a run.
func Append(block string) *AppendRule {
	r, err := ParseAppend(block)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *AppendRule) Kind() Kind { return KindAppend }

func (r *AppendRule) Describe() string {
	return fmt.Sprintf("append %d lines", strings.Count(strings.TrimRight(r.Block, "\n"), "\n")+1)
}

// Render executes the block template
func (r *AppendRule) Render(env Env) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, blockData{Params: env.Params, Marker: env.Marker}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *AppendRule) Apply(content []byte, env Env) (Change, error) {
	block, err := r.Render(env)
	if err != nil {
		return Change{Content: content}, err
	}
	out := make([]byte, 0, len(content)+len(block))
	out = append(out, content...)
	out = append(out, block...)
	return Change{Content: out, Applied: 1}, nil
}

// FileRule overwrites the whole file
type FileRule struct {
	// Source is a reference file read through the filesystem
	Source string
	// Content is used when Source is empty
	Content string
}

// ReplaceFile builds a whole-file rule copying source
func ReplaceFile(source string) *FileRule {
	return &FileRule{Source: source}
}

// ReplaceWith builds a whole-file rule writing fixed content
func ReplaceWith(content string) *FileRule {
	return &FileRule{Content: content}
}

func (r *FileRule) Kind() Kind { return KindFile }

func (r *FileRule) Describe() string {
	if r.Source != "" {
		return fmt.Sprintf("replace with `%s`", r.Source)
	}
	return "replace with generated content"
}

// Reference returns the content the file should end up with
func (r *FileRule) Reference(fs types.FS) ([]byte, error) {
	if r.Source == "" {
		return []byte(r.Content), nil
	}
	return fs.ReadFile(r.Source)
}

func (r *FileRule) Apply(content []byte, env Env) (Change, error) {
	ref, err := r.Reference(env.FS)
	if err != nil {
		return Change{Content: content}, err
	}
	if bytes.Equal(ref, content) {
		return Change{Content: content, Skipped: 1}, nil
	}
	return Change{Content: ref, Applied: 1}, nil
}
