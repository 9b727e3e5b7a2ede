package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrctl-labs/hrctl/internal/branding"
)

var (
	loginUsername string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Login username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Login password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the HRMS backend",
	Long: `Authenticate against the backend and persist the session locally.
The session file lives under ~/` + branding.HomeDir() + `/ and is reused by every
other command until it expires or you run 'logout'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())

		username := loginUsername
		if username == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
			username = strings.TrimSpace(line)
		}

		password := loginPassword
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		ok, err := authSvc.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("login failed")
		}

		identity, _ := store.Current()
		name := strings.TrimSpace(identity.FirstName + " " + identity.LastName)
		if name == "" {
			name = identity.Email
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", name, identity.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := store.Current(); !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		if err := authSvc.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}
