package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	passwdCurrent string
	passwdNew     string
)

func init() {
	passwdCmd.Flags().StringVar(&passwdCurrent, "current", "", "Current password (prompted when omitted)")
	passwdCmd.Flags().StringVar(&passwdNew, "new", "", "New password (prompted when omitted)")
	rootCmd.AddCommand(passwdCmd)
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the logged-in user's password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		prompt := func(label, preset string) (string, error) {
			if preset != "" {
				return preset, nil
			}
			fmt.Fprint(cmd.OutOrStdout(), label+": ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
			}
			return strings.TrimRight(line, "\r\n"), nil
		}

		current, err := prompt("Current password", passwdCurrent)
		if err != nil {
			return err
		}
		newPassword, err := prompt("New password", passwdNew)
		if err != nil {
			return err
		}
		confirm := newPassword
		if passwdNew == "" {
			if confirm, err = prompt("Confirm new password", ""); err != nil {
				return err
			}
		}

		if err := authSvc.ChangePassword(cmd.Context(), current, newPassword, confirm); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
		return nil
	},
}
