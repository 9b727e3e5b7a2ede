package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrctl-labs/hrctl/internal/branding"
	"github.com/hrctl-labs/hrctl/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configAPIURLCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write ` + branding.DisplayName() + ` configuration stored at ~/` + branding.HomeDir() + `/config.yaml.

The most useful key is '` + config.KeyAPIBaseURL + `', the backend base URL every
command talks to.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configAPIURLCmd = &cobra.Command{
	Use:   "api-url [url]",
	Short: "Show or persist the backend base URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), config.APIBaseURL())
			return nil
		}
		if err := config.Set(config.KeyAPIBaseURL, args[0]); err != nil {
			return fmt.Errorf("persisting API base URL: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API base URL set to %s\n", config.APIBaseURL())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == config.KeyAPIBaseURL {
			// Show the resolved value, defaults included.
			fmt.Fprintln(cmd.OutOrStdout(), config.APIBaseURL())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
