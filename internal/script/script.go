// Package script writes the shell script that materializes dated events as
// empty commits on a dedicated branch.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vovakirdan/graph-chase/internal/temporal"
)

// Options shape the generated script.
type Options struct {
	Branch  string // branch that receives the commits
	Message string // commit message for every commit
}

// DefaultOptions returns the standard branch and message.
func DefaultOptions() Options {
	return Options{
		Branch:  "display-layer",
		Message: "p",
	}
}

// Write emits a bash script with one empty commit per repeat, in event order.
// Author and committer dates are both set to the event date.
func Write(w io.Writer, events []temporal.Event, opts Options) error {
	if opts.Branch == "" {
		opts.Branch = DefaultOptions().Branch
	}
	if opts.Message == "" {
		opts.Message = DefaultOptions().Message
	}

	bw := bufio.NewWriter(w)
	branch := quote(opts.Branch)
	message := quote(opts.Message)

	fmt.Fprintln(bw, "#!/bin/bash")
	fmt.Fprintf(bw, "git checkout --orphan %s || git checkout %s\n", branch, branch)
	fmt.Fprintln(bw, "git reset --hard")
	fmt.Fprintln(bw, "git clean -fdx")

	for _, e := range events {
		date := e.Date.Format(time.RFC3339)
		fmt.Fprintf(bw, "echo \"Commit for %s level %d\"\n", date, e.Level)
		for i := 0; i < e.Repeat; i++ {
			fmt.Fprintf(bw, "GIT_AUTHOR_DATE=\"%s\" GIT_COMMITTER_DATE=\"%s\" git commit --allow-empty -m %s\n",
				date, date, message)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("script: write: %w", err)
	}
	return nil
}

// Render returns the script as a string.
func Render(events []temporal.Event, opts Options) string {
	var sb strings.Builder
	_ = Write(&sb, events, opts) // strings.Builder never fails
	return sb.String()
}

// Count returns the number of commits the script will create.
func Count(events []temporal.Event) int {
	return temporal.Total(events)
}

// quote wraps s in single quotes for the shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
