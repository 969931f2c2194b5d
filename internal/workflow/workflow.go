// Package workflow orchestrates the dchw pipeline: preflight, identity
// resolution, worktree cleanliness, changelog-entry derivation, and the
// two-pass dch invocation. Execution is strictly sequential; every external
// interaction is a blocking call.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ariel-frischer/dchw/internal/changelog"
	"github.com/ariel-frischer/dchw/internal/config"
	cliErrors "github.com/ariel-frischer/dchw/internal/errors"
	"github.com/ariel-frischer/dchw/internal/git"
	"github.com/ariel-frischer/dchw/internal/output"
)

// Environment variables dch reads for the changelog author identity.
const (
	EnvDebEmail    = "DEBEMAIL"
	EnvDebFullName = "DEBFULLNAME"
)

// Identity placeholders used when neither the environment nor git
// configuration supplies a value.
const (
	FallbackName  = "Unknown"
	FallbackEmail = "unknown@example.com"
)

const totalSteps = 5

// GitQueries is the subset of git operations the pipeline needs.
// *git.Repo satisfies it; tests supply fakes.
type GitQueries interface {
	UserIdentity() (git.Identity, error)
	Status(changelogPath string) (git.WorktreeStatus, error)
	LatestTag() (string, error)
	SubjectsSince(tag string) ([]string, error)
}

// Orchestrator runs the five-step pipeline. All collaborators are injectable;
// NewOrchestrator wires the production implementations.
type Orchestrator struct {
	Config   *config.Configuration
	Executor Executor
	Prompter Prompter
	Repo     GitQueries

	// Out receives progress output (normally os.Stdout).
	Out io.Writer

	// DryRun prints derived values and intended commands without executing.
	DryRun bool
	// SetVersion overrides tag-derived version resolution.
	SetVersion string
	// Message overrides commit-log description derivation.
	Message string
	// Interactive enables prompts and the spinner; false when stdin is not a
	// terminal or confirmations are skipped.
	Interactive bool
}

// NewOrchestrator creates an orchestrator with production collaborators.
func NewOrchestrator(cfg *config.Configuration, repo GitQueries) *Orchestrator {
	return &Orchestrator{
		Config: cfg,
		Executor: &DchExecutor{
			DchCmd:  cfg.DchCmd,
			Timeout: cfg.Timeout,
		},
		Prompter:    NewTerminalPrompter(),
		Repo:        repo,
		Out:         os.Stdout,
		Interactive: output.IsInteractive() && !cfg.SkipConfirmations,
	}
}

// Run executes the pipeline. Cancellation of ctx at any point yields a clean
// user-cancellation error.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.checkPreflight(); err != nil {
		return err
	}
	if err := o.cancelled(ctx); err != nil {
		return err
	}

	o.resolveIdentity()

	if err := o.checkWorktree(); err != nil {
		return err
	}
	if err := o.cancelled(ctx); err != nil {
		return err
	}

	entry, err := o.deriveEntry()
	if err != nil {
		return err
	}
	if err := o.cancelled(ctx); err != nil {
		return err
	}

	return o.invoke(ctx, entry)
}

// cancelled converts context cancellation into a clean abort.
func (o *Orchestrator) cancelled(ctx context.Context) error {
	if ctx.Err() != nil {
		return cliErrors.CancelledByUser()
	}
	return nil
}

// checkPreflight verifies dch is installed and the changelog's parent
// directory exists. Dry-run downgrades failures to warnings so simulation
// always completes.
func (o *Orchestrator) checkPreflight() error {
	output.PrintStepHeader(o.Out, 1, totalSteps, "Checking prerequisites")

	if _, err := exec.LookPath(o.Config.DchCmd); err != nil {
		if o.DryRun {
			output.PrintWarning(o.Out, fmt.Sprintf("%s not found in PATH", o.Config.DchCmd))
		} else {
			return cliErrors.DchNotFound()
		}
	} else {
		output.PrintSuccess(o.Out, o.Config.DchCmd+" is available")
	}

	dir := filepath.Dir(o.Config.Changelog)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if o.DryRun {
			output.PrintWarning(o.Out, fmt.Sprintf("changelog directory %s not found", dir))
			return nil
		}
		return cliErrors.DebianDirNotFound(dir)
	}
	return nil
}

// resolveIdentity resolves the author identity and exports it into the
// process environment so the dch child inherits it. Env vars win; git user
// configuration fills gaps; literal placeholders cover the rest.
func (o *Orchestrator) resolveIdentity() {
	output.PrintStepHeader(o.Out, 2, totalSteps, "Resolving author identity")

	email := os.Getenv(EnvDebEmail)
	name := os.Getenv(EnvDebFullName)

	if email != "" && name != "" {
		output.PrintSuccess(o.Out, fmt.Sprintf("identity from environment: %s <%s>", name, email))
		return
	}

	var id git.Identity
	if o.Repo != nil {
		// Query failures fall through to placeholders.
		id, _ = o.Repo.UserIdentity()
	}

	if name == "" {
		name = id.Name
		if name == "" {
			name = FallbackName
		}
		os.Setenv(EnvDebFullName, name)
		output.PrintSuccess(o.Out, fmt.Sprintf("set %s=%s", EnvDebFullName, name))
	}
	if email == "" {
		email = id.Email
		if email == "" {
			email = FallbackEmail
		}
		os.Setenv(EnvDebEmail, email)
		output.PrintSuccess(o.Out, fmt.Sprintf("set %s=%s", EnvDebEmail, email))
	}
}

// checkWorktree aborts on a dirty changelog file and asks for confirmation
// when other files are dirty. A failed status query is a warning, not an
// error. Dry-run reports findings without aborting or prompting.
func (o *Orchestrator) checkWorktree() error {
	output.PrintStepHeader(o.Out, 3, totalSteps, "Checking worktree status")

	status, err := o.Repo.Status(o.Config.Changelog)
	if err != nil {
		output.PrintWarning(o.Out, fmt.Sprintf("could not check worktree status: %v", err))
		return nil
	}

	if status.Clean() {
		output.PrintSuccess(o.Out, "worktree is clean")
		return nil
	}

	if status.ChangelogDirty {
		if o.DryRun {
			output.PrintWarning(o.Out, fmt.Sprintf("%s has uncommitted changes; a real run would abort", o.Config.Changelog))
			return nil
		}
		return cliErrors.DirtyChangelog(o.Config.Changelog)
	}

	output.PrintWarning(o.Out, "uncommitted changes found:")
	for _, fs := range status.Dirty {
		fmt.Fprintf(o.Out, "  %s %s\n", fs.Code, fs.Path)
	}

	if o.DryRun {
		output.PrintWarning(o.Out, "a real run would ask for confirmation here")
		return nil
	}
	if o.Config.SkipConfirmations {
		return nil
	}

	ok, err := o.Prompter.Confirm("Continue anyway?")
	if err != nil {
		return fmt.Errorf("confirming dirty worktree: %w", err)
	}
	if !ok {
		return cliErrors.CancelledByUser()
	}
	return nil
}

// deriveEntry computes the version and change lines for the new entry.
func (o *Orchestrator) deriveEntry() (changelog.Entry, error) {
	output.PrintStepHeader(o.Out, 4, totalSteps, "Deriving changelog entry")

	version, tag := o.deriveVersion()

	version, err := o.confirmVersion(version)
	if err != nil {
		return changelog.Entry{}, err
	}

	lines := o.deriveLines(tag)

	entry := changelog.Entry{
		Version: version,
		Lines:   changelog.FormatLines(lines, o.Config.Bullet),
	}.WithPlaceholder()

	output.PrintSuccess(o.Out, fmt.Sprintf("version %s, %d change line(s)", entry.Version, len(entry.Lines)))
	return entry, nil
}

// deriveVersion resolves the candidate version and the tag it came from.
// The tag is empty when version resolution did not involve one.
func (o *Orchestrator) deriveVersion() (version, tag string) {
	if o.SetVersion != "" {
		return changelog.VersionFromTag(o.SetVersion), o.latestTagQuiet()
	}

	tag, err := o.Repo.LatestTag()
	if err != nil {
		if !errors.Is(err, git.ErrNoTag) {
			output.PrintWarning(o.Out, fmt.Sprintf("could not query tags: %v", err))
		}
		output.PrintWarning(o.Out, fmt.Sprintf("no tag found, using default version %s", o.Config.DefaultVersion))
		return o.Config.DefaultVersion, ""
	}

	version = changelog.VersionFromTag(tag)
	output.PrintSuccess(o.Out, fmt.Sprintf("latest tag %s -> version %s", tag, version))
	return version, tag
}

// latestTagQuiet returns the latest tag for description derivation without
// reporting, used when the version itself was supplied explicitly.
func (o *Orchestrator) latestTagQuiet() string {
	tag, err := o.Repo.LatestTag()
	if err != nil {
		return ""
	}
	return tag
}

// confirmVersion lets the user adjust the derived version when running
// interactively. Explicit overrides and non-interactive runs keep the
// candidate as-is.
func (o *Orchestrator) confirmVersion(candidate string) (string, error) {
	if o.DryRun || o.SetVersion != "" || !o.Interactive || o.Config.SkipConfirmations {
		return candidate, nil
	}
	version, err := o.Prompter.AskVersion(candidate)
	if err != nil {
		return "", fmt.Errorf("asking for version: %w", err)
	}
	return changelog.VersionFromTag(version), nil
}

// deriveLines returns the raw change lines: the explicit message when given,
// otherwise commit subjects since the tag (full history when tag is empty).
func (o *Orchestrator) deriveLines(tag string) []string {
	if o.Message != "" {
		return []string{o.Message}
	}

	lines, err := o.Repo.SubjectsSince(tag)
	if err != nil {
		output.PrintWarning(o.Out, fmt.Sprintf("could not read commit log: %v", err))
		return nil
	}
	return lines
}

// invoke performs the two dch passes, or prints them under dry-run.
func (o *Orchestrator) invoke(ctx context.Context, entry changelog.Entry) error {
	output.PrintStepHeader(o.Out, 5, totalSteps, "Invoking "+o.Config.DchCmd)

	if o.DryRun {
		for _, line := range entry.Lines {
			output.PrintDryRunCommand(o.Out, o.Executor.FormatAppend(entry.Version, line))
		}
		if o.Config.Edit {
			output.PrintDryRunCommand(o.Out, o.Executor.FormatEdit())
		}
		fmt.Fprint(o.Out, changelog.Render(entry))
		return nil
	}

	if err := o.runAppendPass(ctx, entry); err != nil {
		return err
	}

	if o.Config.Edit {
		fmt.Fprintln(o.Out, "Opening editor; save and exit to finish.")
		if err := o.Executor.Edit(ctx); err != nil {
			if ctx.Err() != nil {
				return cliErrors.CancelledByUser()
			}
			return cliErrors.DchFailed(err)
		}
		output.PrintSuccess(o.Out, "changelog edited")
	}

	return nil
}

// runAppendPass appends every change line, one dch call each.
func (o *Orchestrator) runAppendPass(ctx context.Context, entry changelog.Entry) error {
	if o.Interactive {
		s := output.NewSpinner("Appending changelog entries")
		s.Start()
		defer s.Stop()
	}

	for _, line := range entry.Lines {
		output.PrintExecutingCommand(o.Out, o.Executor.FormatAppend(entry.Version, line))
		if err := o.Executor.Append(ctx, entry.Version, line); err != nil {
			if ctx.Err() != nil {
				return cliErrors.CancelledByUser()
			}
			return cliErrors.DchFailed(err)
		}
	}

	output.PrintSuccess(o.Out, fmt.Sprintf("appended %d change line(s)", len(entry.Lines)))
	return nil
}
