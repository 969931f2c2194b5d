package cli

import "github.com/ariel-frischer/dchw/internal/errors"

// Exit codes for the dchw CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution (including dry-run)
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure or user cancellation
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates required dependencies are missing
	ExitMissingDependencies = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	cliErr := errors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}

	switch cliErr.Category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Prerequisite:
		return ExitMissingDependencies
	default:
		return ExitFailure
	}
}
