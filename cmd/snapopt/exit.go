package main

import (
	"errors"

	"github.com/spf13/pflag"
)

// Process exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1 // failed records, lint conflicts, I/O errors
	ExitUsage   = 2 // bad command line or configuration
	ExitTable   = 3 // option table could not be loaded
)

// ExitError requests a specific exit code. A nil Err means the failure was
// already reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitCode maps err to a process status: an ExitError's code, 0 for help,
// ExitFailure otherwise.
func exitCode(err error) int {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
