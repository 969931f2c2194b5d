package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/dchw/internal/errors"
	"github.com/ariel-frischer/dchw/internal/health"
	"github.com/ariel-frischer/dchw/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that dchw's dependencies are available",
	Long: `Runs dependency health checks: dch availability, git repository
detection, and author identity resolution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		report := health.RunChecks(cfg.DchCmd)
		for _, check := range report.Checks {
			if check.Passed {
				output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s: %s", check.Name, check.Message))
			} else {
				output.PrintWarning(cmd.OutOrStdout(), fmt.Sprintf("%s: %s", check.Name, check.Message))
			}
		}

		if !report.Passed {
			return errors.NewPrerequisiteError(
				"some health checks failed",
				"See the report above for details",
			)
		}
		output.PrintSuccess(cmd.OutOrStdout(), "all checks passed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
