// Package cli defines the dchw command tree. The root command runs the full
// pipeline; subcommands cover health checks and configuration management.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/dchw/internal/config"
	"github.com/ariel-frischer/dchw/internal/errors"
	"github.com/ariel-frischer/dchw/internal/git"
	"github.com/ariel-frischer/dchw/internal/output"
	"github.com/ariel-frischer/dchw/internal/version"
	"github.com/ariel-frischer/dchw/internal/workflow"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dchw [message]",
		Short: "Drive dch with a version and changelog derived from git history",
		Long: `dchw automates the dch changelog workflow for non-Debian developers.

It derives the new version from the latest reachable git tag, collects commit
subjects since that tag as the change description, and invokes dch in two
passes: a non-interactive append, then an interactive edit.

An optional message argument replaces the commit-log derivation entirely.

Examples:
  dchw                          # derive version and changes from git
  dchw "Fix login crash"        # custom message, derived version
  dchw --dry-run                # show what would run, touch nothing
  dchw --set-version 2.1.0 -y   # explicit version, no prompts`,
		Args:          messageArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildVersion(),
		RunE:          runPipeline,
	}

	// Flag parse errors must map to the invalid-arguments exit code.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		argErr := errors.NewArgumentError(err.Error(), "Run 'dchw --help' for available flags")
		argErr.Usage = c.UseLine()
		return argErr
	})

	cmd.Flags().BoolP("dry-run", "n", false, "print derived values and commands without executing")
	cmd.Flags().String("set-version", "", "explicit version (skips tag derivation and the version prompt)")
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation prompts")
	cmd.PersistentFlags().String("changelog", "", "changelog file guarded by the cleanliness check (default debian/changelog)")
	cmd.PersistentFlags().String("config", "", "project config file path")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	return cmd
}

// messageArg accepts at most one positional message argument.
func messageArg(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		argErr := errors.NewArgumentError(
			fmt.Sprintf("accepts at most 1 message argument, received %d", len(args)),
			"Quote the message if it contains spaces",
		)
		argErr.Usage = cmd.UseLine()
		return argErr
	}
	return nil
}

// buildVersion renders the version flag output. Dev builds have no
// meaningful commit or date, so they show the bare version.
func buildVersion() string {
	if version.IsDevBuild() {
		return version.Version
	}
	return fmt.Sprintf("%s (%s, %s)", version.Version, version.Commit, version.BuildDate)
}

// Execute runs the CLI and returns the error for exit-code mapping.
// SIGINT/SIGTERM cancel the command context for a clean abort.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	if ctx.Err() != nil && !errors.IsCancelled(err) {
		err = errors.CancelledByUser()
	}
	printError(err)
	return err
}

// printError renders an error at the CLI boundary. Structured errors keep
// their remediation steps; plain errors become runtime errors.
func printError(err error) {
	cliErr := errors.AsCLIError(err)
	if cliErr == nil {
		cliErr = errors.Wrap(err, errors.Runtime)
	}
	errors.PrintError(cliErr)
}

// runPipeline is the root RunE: load config, open the repository, run the
// five-step workflow.
func runPipeline(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	setVersion, _ := cmd.Flags().GetString("set-version")
	yes, _ := cmd.Flags().GetBool("yes")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if yes {
		cfg.SkipConfirmations = true
	}

	setupDebugLogging(cmd)

	orch := workflow.NewOrchestrator(cfg, openRepoQueries(cmd))
	orch.Out = cmd.OutOrStdout()
	orch.DryRun = dryRun
	orch.SetVersion = setVersion
	if len(args) > 0 {
		orch.Message = args[0]
	}

	return orch.Run(cmd.Context())
}

// loadConfig loads configuration and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			return nil, cliErr
		}
		return nil, errors.WrapWithMessage(err, errors.Configuration, "failed to load config")
	}

	if cmd.Flags().Changed("changelog") {
		cfg.Changelog, _ = cmd.Flags().GetString("changelog")
	}
	return cfg, nil
}

// setupDebugLogging wires git debug output to stderr when --debug is set.
func setupDebugLogging(cmd *cobra.Command) {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger := log.New(os.Stderr, "", log.Ltime)
		git.SetDebugLogger(func(format string, args ...any) {
			logger.Printf(format, args...)
		})
	}
}

// openRepoQueries opens the surrounding repository, degrading to the no-repo
// stub when none is found. Git query failures are recovered with fallback
// values downstream, so a missing repository is not fatal here.
func openRepoQueries(cmd *cobra.Command) workflow.GitQueries {
	repo, err := git.Open("")
	if err != nil {
		output.PrintWarning(cmd.OutOrStdout(), "not inside a git repository; using fallback values")
		return workflow.NoRepo{}
	}
	return repo
}
