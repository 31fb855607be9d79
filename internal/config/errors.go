package config

import "fmt"

// Error reports an invalid run configuration: a bad flag combination, a
// malformed tag, a missing required file or credential.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf formats a configuration error.
func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
