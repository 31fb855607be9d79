package runner

import (
	"fmt"
	"strings"
)

// CommandError reports an external command that exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int
	Tail     []string
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("Command failed (exit %d): %s\n--- command tail ---\n%s",
		e.ExitCode, e.Command, strings.Join(e.Tail, "\n"))
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
