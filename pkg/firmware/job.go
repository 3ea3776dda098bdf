package firmware

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Operation is what a Job does
type Operation string

const (
	OpVerify Operation = "verify"
	OpFlash  Operation = "flash"
)

// Result is the outcome of a finished Job
type Result struct {
	Operation Operation `json:"operation" yaml:"operation"`
	File      string    `json:"file" yaml:"file"`
	Match     bool      `json:"match" yaml:"match"`
	Written   bool      `json:"written" yaml:"written"`
	Lines     []string  `json:"lines" yaml:"lines"`
}

// Job runs a verify or flash in the background while progress lines are
// relayed to the foreground.
type Job struct {
	group  *errgroup.Group
	result Result
}

// Start launches op on file. onLine is called for every progress line,
// from a single goroutine, in order.
func Start(ctx context.Context, flasher Flasher, op Operation, file string, onLine func(string)) *Job {
	g, gctx := errgroup.WithContext(ctx)
	j := &Job{group: g, result: Result{Operation: op, File: file}}
	lines := make(chan string, 64)

	g.Go(func() error {
		defer close(lines)
		emit := func(line string) {
			select {
			case lines <- line:
			case <-gctx.Done():
			}
		}
		switch op {
		case OpFlash:
			if err := flasher.Flash(gctx, file, emit); err != nil {
				return err
			}
			j.result.Written = true
			return nil
		default:
			match, err := flasher.Verify(gctx, file, emit)
			j.result.Match = match
			return err
		}
	})

	g.Go(func() error {
		for line := range lines {
			j.result.Lines = append(j.result.Lines, line)
			if onLine != nil {
				onLine(line)
			}
		}
		return nil
	})

	return j
}

// Wait blocks until the job and its progress relay are done
func (j *Job) Wait() (Result, error) {
	err := j.group.Wait()
	return j.result, err
}
