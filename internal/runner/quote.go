package runner

import (
	"regexp"
	"strings"
)

var unsafeShellChars = regexp.MustCompile(`[^\w@%+=:,./-]`)

// Quote renders args as a copy-pasteable POSIX shell command line.
func Quote(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafeShellChars.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
