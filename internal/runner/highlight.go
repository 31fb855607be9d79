package runner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bgricker/specrelease/internal/config"
)

// Highlights is an ordered set of compiled highlight patterns.
type Highlights []*regexp.Regexp

// CompileHighlights compiles raw regular expressions. Blank entries are
// ignored; an invalid expression is a configuration error.
func CompileHighlights(patterns []string) (Highlights, error) {
	result := make(Highlights, 0, len(patterns))
	for _, raw := range patterns {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, config.Errorf("compile highlight %q: %v", raw, err)
		}
		result = append(result, re)
	}
	return result, nil
}

// match reports whether any pattern matches line. Patterns are tried in
// order and the first hit wins, so a line is captured at most once.
func (h Highlights) match(line string) bool {
	for _, re := range h {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// String renders the patterns for diagnostics.
func (h Highlights) String() string {
	parts := make([]string, len(h))
	for i, re := range h {
		parts[i] = re.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
