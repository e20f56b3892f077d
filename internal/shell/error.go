package shell

import (
	"errors"
	"fmt"
)

// ExitError carries the exit code the process should end with.
type ExitError struct {
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("shell exited with %d", e.ExitCode)
}

func NewExitError(exitCode int) *ExitError {
	return &ExitError{ExitCode: exitCode}
}

func IsExitError(err error) bool {
	_, ok := AsExitError(err)
	return ok
}

// AsExitError unwraps the first *ExitError in err's chain.
func AsExitError(err error) (*ExitError, bool) {
	if err == nil {
		return nil, false
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}

	return nil, false
}
