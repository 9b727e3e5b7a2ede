package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrctl-labs/hrctl/internal/auth"
	"github.com/hrctl-labs/hrctl/internal/hris"
)

var (
	userListPage   int
	userListSize   int
	userListSearch string

	userUserName string
	userEmail    string
	userPassword string
	userEmployee string
)

func addUserFlags(cmd *cobra.Command, passwordHelp string) {
	cmd.Flags().StringVar(&userUserName, "username", "", "Login username (required)")
	cmd.Flags().StringVar(&userEmail, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&userPassword, "password", "", passwordHelp)
	cmd.Flags().StringVar(&userEmployee, "employee", "", "Linked employee id (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("employee")
}

func init() {
	userListCmd.Flags().IntVar(&userListPage, "page", 1, "Page number (1-based)")
	userListCmd.Flags().IntVar(&userListSize, "page-size", 20, "Accounts per page")
	userListCmd.Flags().StringVar(&userListSearch, "search", "", "Filter by username or email")

	addUserFlags(userCreateCmd, "Account password (required)")
	_ = userCreateCmd.MarkFlagRequired("password")
	addUserFlags(userUpdateCmd, "New password (blank keeps the current one)")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage system user accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List system user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage users", auth.Role.CanManageUsers); err != nil {
			return err
		}
		page, err := hris.NewUserClient(client).ListPaginated(cmd.Context(), hris.ListParams{
			PageNumber: userListPage,
			PageSize:   userListSize,
			Search:     userListSearch,
		})
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No user accounts found.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tEMPLOYEE")
		for _, u := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\n", u.ID, u.UserName, u.Email, u.FirstName, u.LastName)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d accounts total)\n",
			page.PageNumber, page.TotalPages, page.TotalCount)
		return nil
	},
}

func userInput() hris.UserInput {
	return hris.UserInput{
		UserName:   userUserName,
		Email:      userEmail,
		Password:   userPassword,
		EmployeeID: userEmployee,
	}
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account linked to an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage users", auth.Role.CanManageUsers); err != nil {
			return err
		}
		in := userInput()
		if err := in.Validate(); err != nil {
			return err
		}
		u, err := hris.NewUserClient(client).Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.UserName, u.ID)
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage users", auth.Role.CanManageUsers); err != nil {
			return err
		}
		in := userInput()
		if err := in.Validate(); err != nil {
			return err
		}
		u, err := hris.NewUserClient(client).Update(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated user %s\n", u.UserName)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage users", auth.Role.CanManageUsers); err != nil {
			return err
		}
		if err := hris.NewUserClient(client).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
		return nil
	},
}
