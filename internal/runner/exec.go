package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/qiniu/x/log"

	"github.com/bgricker/specrelease/internal/output"
	"github.com/bgricker/specrelease/internal/report"
)

// DefaultTailLines is the number of trailing output lines kept per command.
const DefaultTailLines = 140

// Options configure how the runner executes commands.
type Options struct {
	Console   *output.Console
	TailLines int
	Env       []string
	Now       func() time.Time
}

// Command describes one external process invocation.
type Command struct {
	Args []string
	Dir  string
	// Env entries override the inherited environment.
	Env        map[string]string
	Highlights []string
	// AllowFailure disables the non-zero exit check.
	AllowFailure bool
}

// Runner executes commands one at a time, streaming their output.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Console == nil {
		opts.Console = output.NewConsole(io.Discard)
	}
	if opts.TailLines <= 0 {
		opts.TailLines = DefaultTailLines
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{opts: opts}
}

// Run executes c, forwarding its merged stdout/stderr line by line to the
// console. A non-zero exit yields a *CommandError unless AllowFailure is set;
// the result is returned either way.
func (r *Runner) Run(ctx context.Context, c Command) (report.StepResult, error) {
	if len(c.Args) == 0 {
		return report.StepResult{}, errors.New("run: empty command")
	}
	patterns, err := CompileHighlights(c.Highlights)
	if err != nil {
		return report.StepResult{}, err
	}

	printable := Quote(c.Args)
	r.opts.Console.Command(printable)
	log.Debugf("run %s (dir=%s, highlights=%s)", printable, c.Dir, patterns)

	result := report.StepResult{
		Command: printable,
		Args:    append([]string{}, c.Args...),
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return result, fmt.Errorf("create output pipe: %w", err)
	}
	defer pr.Close()

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = mergeEnv(r.opts.Env, c.Env)
	cmd.Stdout = pw
	cmd.Stderr = pw

	start := r.opts.Now()
	if err := cmd.Start(); err != nil {
		pw.Close()
		result.ExitCode = 127
		result.Duration = elapsed(start, r.opts.Now())
		result.Tail = []string{err.Error()}
		return result, &CommandError{Command: printable, ExitCode: result.ExitCode, Tail: result.Tail, Err: err}
	}
	// The child holds its own copy of the write end; closing ours lets the
	// reader see EOF once the child exits.
	pw.Close()

	tail := newTailBuffer(r.opts.TailLines)
	var found []string
	console := r.opts.Console.Writer()
	reader := bufio.NewReader(pr)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			io.WriteString(console, line)
			if !strings.HasSuffix(line, "\n") {
				io.WriteString(console, "\n")
			}
			stripped := strings.TrimRight(line, "\r\n")
			tail.add(stripped)
			if patterns.match(stripped) {
				found = append(found, stripped)
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				log.Warnf("read output of %s: %v", printable, readErr)
			}
			break
		}
	}

	waitErr := cmd.Wait()
	result.ExitCode = exitCode(waitErr)
	result.Duration = elapsed(start, r.opts.Now())
	result.Tail = tail.lines()
	result.Highlights = found

	if result.ExitCode != 0 && !c.AllowFailure {
		return result, &CommandError{Command: printable, ExitCode: result.ExitCode, Tail: result.Tail, Err: waitErr}
	}
	return result, nil
}

// Capture runs a short command and returns its trimmed stdout. Failure is
// always an error.
func (r *Runner) Capture(ctx context.Context, dir string, args ...string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("capture: empty command")
	}
	printable := Quote(args)
	log.Debugf("capture %s (dir=%s)", printable, dir)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = r.opts.Env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Command:  printable,
			ExitCode: exitCode(err),
			Tail:     splitLines(stderr.String()),
			Err:      err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

func elapsed(start, end time.Time) float64 {
	return math.Round(end.Sub(start).Seconds()*100) / 100
}

func mergeEnv(base []string, overlays ...map[string]string) []string {
	envMap := make(map[string]string, len(base)+len(overlays)*4)
	for _, kv := range base {
		if idx := strings.Index(kv, "="); idx != -1 {
			envMap[kv[:idx]] = kv[idx+1:]
		}
	}
	for _, overlay := range overlays {
		for k, v := range overlay {
			envMap[k] = v
		}
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		// killed by a signal
		return 1
	}
	return 1
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
