// Package health provides dependency health checks for dchw. It validates
// that the external dch command is available and that the repository can
// supply the inputs the pipeline needs, returning structured reports used by
// the 'dchw doctor' command.
package health

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ariel-frischer/dchw/internal/git"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult
	Passed bool
}

// RunChecks runs all health checks and returns a report.
// dchCmd is the configured external changelog command (normally "dch").
func RunChecks(dchCmd string) *Report {
	report := &Report{Passed: true}

	for _, check := range []CheckResult{
		CheckDchCLI(dchCmd),
		CheckGitRepository(),
		CheckIdentity(),
	} {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}

	return report
}

// CheckDchCLI verifies the dch command is on the search path.
func CheckDchCLI(dchCmd string) CheckResult {
	path, err := exec.LookPath(dchCmd)
	if err != nil {
		return CheckResult{
			Name:    "dch CLI",
			Passed:  false,
			Message: fmt.Sprintf("%s not found in PATH (install the devscripts package)", dchCmd),
		}
	}
	return CheckResult{
		Name:    "dch CLI",
		Passed:  true,
		Message: fmt.Sprintf("found at %s", path),
	}
}

// CheckGitRepository verifies the current directory is inside a git repository.
func CheckGitRepository() CheckResult {
	if !git.IsRepository("") {
		return CheckResult{
			Name:    "git repository",
			Passed:  false,
			Message: "current directory is not inside a git repository",
		}
	}
	return CheckResult{
		Name:    "git repository",
		Passed:  true,
		Message: "repository detected",
	}
}

// CheckIdentity verifies an author identity is resolvable from the
// environment or git configuration. A missing identity is not fatal to the
// pipeline (placeholders are used), so failure here is advisory.
func CheckIdentity() CheckResult {
	if os.Getenv("DEBEMAIL") != "" && os.Getenv("DEBFULLNAME") != "" {
		return CheckResult{
			Name:    "author identity",
			Passed:  true,
			Message: "DEBEMAIL and DEBFULLNAME are set",
		}
	}

	repo, err := git.Open("")
	if err == nil {
		if id, ierr := repo.UserIdentity(); ierr == nil && id.Name != "" && id.Email != "" {
			return CheckResult{
				Name:    "author identity",
				Passed:  true,
				Message: fmt.Sprintf("from git config: %s <%s>", id.Name, id.Email),
			}
		}
	}

	return CheckResult{
		Name:    "author identity",
		Passed:  false,
		Message: "no DEBEMAIL/DEBFULLNAME and no git user.name/user.email; placeholders will be used",
	}
}
