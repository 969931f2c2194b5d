package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/dchw/internal/config"
	"github.com/ariel-frischer/dchw/internal/errors"
	"github.com/ariel-frischer/dchw/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dchw configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default project config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.ProjectConfigPath()

		if _, err := os.Stat(path); err == nil && !force {
			return errors.NewArgumentError(
				fmt.Sprintf("config file already exists: %s", path),
				"Use --force to overwrite it",
			)
		}

		if err := os.MkdirAll(config.ProjectConfigDir(), 0o755); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "creating config directory")
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "writing config file")
		}

		output.PrintSuccess(cmd.OutOrStdout(), "wrote "+path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "changelog: %s\n", cfg.Changelog)
		fmt.Fprintf(out, "default_version: %s\n", cfg.DefaultVersion)
		fmt.Fprintf(out, "dch_cmd: %s\n", cfg.DchCmd)
		fmt.Fprintf(out, "edit: %v\n", cfg.Edit)
		fmt.Fprintf(out, "bullet: %q\n", cfg.Bullet)
		fmt.Fprintf(out, "skip_confirmations: %v\n", cfg.SkipConfirmations)
		fmt.Fprintf(out, "timeout: %d\n", cfg.Timeout)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
