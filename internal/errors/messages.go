package errors

import "fmt"

// Common error messages for the dchw CLI.
// These templates ensure consistent, actionable error messages.

// DchNotFound creates an error when the dch command is not installed.
func DchNotFound() *CLIError {
	return NewPrerequisiteError(
		"dch command not found",
		"Ubuntu/Debian: sudo apt-get install devscripts",
		"CentOS/RHEL: sudo yum install devscripts",
		"Fedora: sudo dnf install devscripts",
		"Verify installation with: dch --version",
	)
}

// DebianDirNotFound creates an error when the debian directory is missing.
func DebianDirNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("debian directory not found: %s", path),
		"Make sure the project contains a debian/ directory",
		"Or switch to the correct project directory",
		"Or point --changelog at the changelog file to manage",
	)
}

// DirtyChangelog creates an error when the changelog file has uncommitted changes.
func DirtyChangelog(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s has uncommitted changes", path),
		fmt.Sprintf("Commit it first: git add %s && git commit -m 'Update changelog'", path),
		fmt.Sprintf("Or discard the changes: git checkout -- %s", path),
	)
}

// DchFailed creates an error when a dch invocation fails.
func DchFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"dch command failed",
		"Check the dch output above for details",
		"Run 'dchw doctor' to diagnose issues",
	)
}

// CancelledByUser creates a cancellation error for a declined prompt or interrupt.
func CancelledByUser() *CLIError {
	return NewCancelledError("operation cancelled by user")
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for syntax errors",
		"Reset to defaults with: dchw config init --force",
	)
}
