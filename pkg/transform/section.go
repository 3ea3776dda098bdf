package transform

import (
	"fmt"
	"strings"
)

// State is the section a scanner is in
type State int

const (
	Outside State = iota
	InHostmot
	InTraj
	InAxisXY
	InAxisZ
)

func (s State) String() string {
	switch s {
	case Outside:
		return "OUTSIDE"
	case InHostmot:
		return "IN_HOSTMOT"
	case InTraj:
		return "IN_TRAJ"
	case InAxisXY:
		return "IN_AXIS_XY"
	case InAxisZ:
		return "IN_AXIS_Z"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Insertion adds Line after the first line containing After, once per
// activation of the section.
type Insertion struct {
	After string
	Line  string
}

// Section binds bracketed headers to a state and the edits made while in it
type Section struct {
	State        State
	Headers      []string
	Replacements []*ReplaceRule
	Insert       *Insertion
}

// SectionRule rewrites INI content line by line, applying each section's
// replacements only to the lines between its header and the next one.
type SectionRule struct {
	Sections []Section
	byHeader map[string]*Section
}

// Sectioned builds a section-scoped rule. A header may belong to one
// section only.
func Sectioned(sections ...Section) *SectionRule {
	r := &SectionRule{Sections: sections, byHeader: make(map[string]*Section)}
	for i := range r.Sections {
		for _, h := range r.Sections[i].Headers {
			if _, dup := r.byHeader[h]; dup {
				panic(fmt.Sprintf("section header %s declared twice", h))
			}
			r.byHeader[h] = &r.Sections[i]
		}
	}
	return r
}

func (r *SectionRule) Kind() Kind { return KindSection }

func (r *SectionRule) Describe() string {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Replacements)
		if s.Insert != nil {
			n++
		}
	}
	return fmt.Sprintf("%d edits across %d sections", n, len(r.Sections))
}

// isHeader reports whether line is a bracketed section header
func isHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) >= 2 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']' {
		return trimmed, true
	}
	return "", false
}

// scanner is the per-run state of a SectionRule
type scanner struct {
	rule    *SectionRule
	env     Env
	state   State
	current *Section
	pending bool
	fired   map[*ReplaceRule]bool
	// inserted records the sections whose insertion fired
	inserted map[*Section]bool
}

func (s *scanner) enter(header string) {
	sec, ok := s.rule.byHeader[header]
	if !ok {
		s.state = Outside
		s.current = nil
		s.pending = false
		return
	}
	s.state = sec.State
	s.current = sec
	s.pending = sec.Insert != nil
}

// line rewrites one body line, returning the text to emit
func (s *scanner) line(line string) string {
	if s.current == nil {
		return line
	}

	body, eol := splitEOL(line)
	for _, rep := range s.current.Replacements {
		if strings.Contains(body, rep.Old) {
			body = strings.ReplaceAll(body, rep.Old, s.env.Mark(rep.New))
			s.fired[rep] = true
		}
	}

	if s.pending && strings.Contains(body, s.current.Insert.After) {
		s.pending = false
		s.inserted[s.current] = true
		if eol == "" {
			eol = "\n"
		}
		return body + eol + s.env.Mark(s.current.Insert.Line) + eol
	}
	return body + eol
}

func splitEOL(line string) (string, string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// Scan runs the scanner over content and returns the state each input
// line was processed in. Used for tests and diagnostics.
func (r *SectionRule) Scan(content string) []State {
	s := &scanner{rule: r}
	var states []State
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		if header, ok := isHeader(line); ok {
			s.enter(header)
		}
		states = append(states, s.state)
	}
	return states
}

func (r *SectionRule) Apply(content []byte, env Env) (Change, error) {
	s := &scanner{
		rule:     r,
		env:      env,
		fired:    make(map[*ReplaceRule]bool),
		inserted: make(map[*Section]bool),
	}

	var out strings.Builder
	out.Grow(len(content) + 256)
	for _, line := range strings.SplitAfter(string(content), "\n") {
		if line == "" {
			continue
		}
		if header, ok := isHeader(line); ok {
			s.enter(header)
			out.WriteString(line)
			continue
		}
		out.WriteString(s.line(line))
	}

	change := Change{Content: []byte(out.String())}
	for i := range r.Sections {
		sec := &r.Sections[i]
		for _, rep := range sec.Replacements {
			if s.fired[rep] {
				change.Applied++
			} else {
				change.Skipped++
			}
		}
		if sec.Insert != nil {
			if s.inserted[sec] {
				change.Applied++
			} else {
				change.Skipped++
			}
		}
	}
	return change, nil
}
