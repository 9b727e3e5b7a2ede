package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrctl-labs/hrctl/internal/branding"
	"github.com/hrctl-labs/hrctl/internal/config"
	"github.com/hrctl-labs/hrctl/internal/release"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s)\n",
			branding.CLIName(), buildVersion, buildCommit, buildDate)

		if !versionCheck {
			return nil
		}

		checker := release.NewChecker(config.Dir())
		result, err := checker.Check(buildVersion, release.DefaultCacheMaxAge)
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}
		if result.UpdateAvailable {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer release is available: %s\n  %s\n",
				result.LatestVersion, result.ReleaseURL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are on the latest release.")
		}
		return nil
	},
}
