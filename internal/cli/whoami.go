package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrctl-labs/hrctl/internal/auth"
)

var whoamiJSON bool

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in identity, role, and capabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		identity, _ := store.Current()
		role := auth.Role(identity.Role)

		expiry := ""
		if exp, ok := store.ExpiresAt(); ok {
			expiry = exp.Local().Format(time.RFC1123)
		}

		if whoamiJSON {
			info := map[string]any{
				"user_id":      identity.UserID,
				"email":        identity.Email,
				"first_name":   identity.FirstName,
				"last_name":    identity.LastName,
				"role":         string(role),
				"role_display": role.DisplayName(),
				"access_level": string(role.Level()),
				"capabilities": role.Capabilities(),
			}
			if expiry != "" {
				info["token_expires"] = expiry
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling identity: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Name:\t%s\n", strings.TrimSpace(identity.FirstName+" "+identity.LastName))
		fmt.Fprintf(w, "Email:\t%s\n", identity.Email)
		fmt.Fprintf(w, "Role:\t%s (%s access)\n", role.DisplayName(), role.Level())
		if expiry != "" {
			fmt.Fprintf(w, "Token expires:\t%s\n", expiry)
		}
		fmt.Fprintf(w, "Capabilities:\t%s\n", strings.Join(role.Capabilities(), ", "))
		return w.Flush()
	},
}
