package compare

import (
	"bytes"

	"github.com/sourcegraph/go-diff/diff"
)

// Patch renders the report as a unified diff with no context lines
func (r *Report) Patch() ([]byte, error) {
	fd := &diff.FileDiff{
		OrigName: r.OldPath,
		NewName:  r.NewPath,
	}
	for _, h := range r.Hunks {
		var body bytes.Buffer
		for _, l := range h.Lines {
			if l.Side == SideOld {
				body.WriteByte('-')
			} else {
				body.WriteByte('+')
			}
			body.WriteString(l.Text)
			body.WriteByte('\n')
		}
		fd.Hunks = append(fd.Hunks, &diff.Hunk{
			OrigStartLine: hunkStart(h.OldStart, h.OldLines),
			OrigLines:     int32(h.OldLines),
			NewStartLine:  hunkStart(h.NewStart, h.NewLines),
			NewLines:      int32(h.NewLines),
			Body:          body.Bytes(),
		})
	}
	return diff.PrintFileDiff(fd)
}

// hunkStart follows the unified format, where an empty range names the
// line before it
func hunkStart(start, lines int) int32 {
	if lines == 0 {
		return int32(start - 1)
	}
	return int32(start)
}
