// Package output renders a task-list state as terminal text, HTML or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

const (
	// HeadingSeparator underlines the heading in text output.
	HeadingSeparator = "---------"

	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// TextOptions controls terminal rendering.
type TextOptions struct {
	// Color wraps the error message in ANSI red.
	Color bool

	// NoHeading omits the heading and its underline.
	NoHeading bool
}

// RenderText writes the heading followed by exactly one of the loading text,
// the error message, the task list or the empty-state message.
func RenderText(w io.Writer, state tasklist.State, opts TextOptions) {
	if !opts.NoHeading {
		fmt.Fprintln(w, tasklist.Heading)
		fmt.Fprintln(w, HeadingSeparator)
	}

	switch state.Phase() {
	case tasklist.PhaseLoading:
		fmt.Fprintln(w, tasklist.LoadingMessage)
	case tasklist.PhaseError:
		if opts.Color {
			fmt.Fprintf(w, "%s%s%s\n", ansiRed, state.Err, ansiReset)
		} else {
			fmt.Fprintln(w, state.Err)
		}
	case tasklist.PhaseEmpty:
		fmt.Fprintln(w, tasklist.EmptyMessage)
	case tasklist.PhasePopulated:
		for _, task := range state.Tasks {
			FormatTask(w, task)
		}
	}
}

// FormatTask formats one list item.
// Format: "  - {NAME}\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "  - %s\n", normalizeName(task.Name))
}

// normalizeName normalizes a task name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
