package release

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// Runner processes a batch of target directories sequentially, isolating
// per-directory failures and tallying the outcome. A failure in one
// directory never aborts the rest of the batch.
type Runner struct {
	Workflow *Workflow

	// Out receives progress and summary output. ErrOut receives per-directory
	// errors. Nil writers discard.
	Out    io.Writer
	ErrOut io.Writer
}

// Result is the batch tally.
type Result struct {
	Successes int
	Failures  int
}

// Failed reports whether the whole run should exit non-zero: only when every
// directory failed.
func (r Result) Failed() bool {
	return r.Failures > 0 && r.Successes == 0
}

// Run processes each directory in order and returns the tally.
func (r *Runner) Run(dirs []string) Result {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	errOut := r.ErrOut
	if errOut == nil {
		errOut = io.Discard
	}

	multi := len(dirs) > 1
	var result Result

	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = dir
		}
		if multi {
			fmt.Fprintf(out, "\n[%s]\n", filepath.Base(abs))
		}

		if err := r.Workflow.Run(abs); err != nil {
			color.New(color.FgRed).Fprintf(errOut, "Error: %v\n", err)
			result.Failures++
			continue
		}
		result.Successes++
	}

	if multi {
		fmt.Fprintln(out)
		if result.Failures == 0 {
			color.New(color.FgGreen).Fprintln(out, "All done! Don't forget to push your changes.")
		} else {
			fmt.Fprintf(out, "Completed: %d succeeded, %d failed\n", result.Successes, result.Failures)
		}
	}
	return result
}
