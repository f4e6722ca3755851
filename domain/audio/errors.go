package audio

import (
	"errors"
	"fmt"
)

// UsageError marks an argument-validation failure. Callers report these with
// exit code 2; every other error exits with code 1.
type UsageError struct {
	msg string
}

// Usagef creates a UsageError with a formatted message
func Usagef(format string, args ...interface{}) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.msg
}

// IsUsage returns true if err is (or wraps) a UsageError
func IsUsage(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}
