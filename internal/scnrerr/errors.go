// Package scnrerr maps scan.Error's Kind taxonomy onto the exit codes the
// scnr CLI returns, and carries CLI-level errors (flag validation, config
// loading) that never reach the scan package at all.
package scnrerr

import (
	"errors"
	"fmt"

	"github.com/scnrgo/scnr/internal/scan"
)

// ExitCode is the process exit code the scnr CLI returns.
type ExitCode int

const (
	// ExitSuccess means the scan (or extract, or jq run) completed with
	// no errors at all.
	ExitSuccess ExitCode = 0
	// ExitError means a fatal error stopped the command before it could
	// produce any output — bad flags, an invalid config, dispatch or
	// pattern failures.
	ExitError ExitCode = 1
	// ExitPartial means the command produced output, but one or more
	// entries in the stream carried a format or io error.
	ExitPartial ExitCode = 2
)

// CLIError carries an exit code alongside a human-readable message, for
// failures the CLI layer itself detects (flag validation, config load)
// rather than ones that came from a scan.Error.
type CLIError struct {
	Code    ExitCode
	Message string
	Err     error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error { return e.Err }

// NewError builds a CLIError with ExitError.
func NewError(msg string, err error) *CLIError {
	return &CLIError{Code: ExitError, Message: msg, Err: err}
}

// NewPartialError builds a CLIError with ExitPartial, for when some entries
// in a scan failed but the command still produced output for the rest.
func NewPartialError(msg string, err error) *CLIError {
	return &CLIError{Code: ExitPartial, Message: msg, Err: err}
}

// ExitCodeFor maps a scan.ErrorKind to the exit code a CLI command should
// return when that kind of error is the worst one seen during a run.
func ExitCodeFor(kind scan.ErrorKind) ExitCode {
	switch kind {
	case scan.KindDispatchErr, scan.KindPatternErr:
		return ExitError
	case scan.KindIOErr, scan.KindFormatErr:
		return ExitPartial
	case scan.KindChannelErr:
		return ExitError
	default:
		return ExitError
	}
}

// ExtractExitCode inspects err (as returned from a CLI command's RunE) and
// derives the process exit code: a *CLIError or *scan.Error yields its own
// code, anything else is ExitError, and nil is ExitSuccess.
func ExtractExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	var scanErr *scan.Error
	if errors.As(err, &scanErr) {
		return ExitCodeFor(scanErr.Kind)
	}
	return ExitError
}
