package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrctl-labs/hrctl/internal/auth"
	"github.com/hrctl-labs/hrctl/internal/hris"
)

var (
	deptName        string
	deptDescription string
	deptCompanyID   string
	deptHeadID      string
)

func addDepartmentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&deptName, "name", "", "Department name (required)")
	cmd.Flags().StringVar(&deptDescription, "description", "", "Department description")
	cmd.Flags().StringVar(&deptCompanyID, "company", "", "Owning company id (required)")
	cmd.Flags().StringVar(&deptHeadID, "head", "", "Department head employee id (blank clears it)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("company")
}

func init() {
	addDepartmentFlags(deptCreateCmd)
	addDepartmentFlags(deptUpdateCmd)

	deptHRCmd.AddCommand(deptHRListCmd)
	deptHRCmd.AddCommand(deptHRAssignCmd)
	deptHRCmd.AddCommand(deptHRRemoveCmd)

	deptCmd.AddCommand(deptListCmd)
	deptCmd.AddCommand(deptCreateCmd)
	deptCmd.AddCommand(deptUpdateCmd)
	deptCmd.AddCommand(deptDeleteCmd)
	deptCmd.AddCommand(deptHRCmd)
	rootCmd.AddCommand(deptCmd)
}

var deptCmd = &cobra.Command{
	Use:     "department",
	Aliases: []string{"dept"},
	Short:   "Manage departments and their HR manager assignments",
}

var deptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the departments you manage",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		depts, err := hris.NewDepartmentClient(client).Managed(cmd.Context())
		if err != nil {
			return err
		}
		if len(depts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No departments found.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tEMPLOYEES\tHR MANAGERS")
		for _, d := range depts {
			names := make([]string, 0, len(d.HRManagers))
			for _, m := range d.HRManagers {
				names = append(names, m.Name)
			}
			managers := strings.Join(names, ", ")
			if managers == "" {
				managers = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", d.ID, d.Name, d.CompanyName, d.EmployeeCount, managers)
		}
		return w.Flush()
	},
}

func departmentInput() hris.DepartmentInput {
	return hris.DepartmentInput{
		Name:           deptName,
		Description:    deptDescription,
		CompanyID:      deptCompanyID,
		HeadEmployeeID: deptHeadID,
	}
}

var deptCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a department",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage departments", auth.Role.CanManageDepartments); err != nil {
			return err
		}
		in := departmentInput()
		if err := in.Validate(); err != nil {
			return err
		}
		dept, err := hris.NewDepartmentClient(client).Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created department %s (%s)\n", dept.Name, dept.ID)
		return nil
	},
}

var deptUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage departments", auth.Role.CanManageDepartments); err != nil {
			return err
		}
		in := departmentInput()
		if err := in.Validate(); err != nil {
			return err
		}
		dept, err := hris.NewDepartmentClient(client).Update(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated department %s\n", dept.Name)
		return nil
	},
}

var deptDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage departments", auth.Role.CanManageDepartments); err != nil {
			return err
		}
		if err := hris.NewDepartmentClient(client).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted department %s\n", args[0])
		return nil
	},
}

var deptHRCmd = &cobra.Command{
	Use:   "hr-managers",
	Short: "Manage HR manager assignments for a department",
}

var deptHRListCmd = &cobra.Command{
	Use:   "list <department-id>",
	Short: "List HR manager assignments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage departments", auth.Role.CanManageDepartments); err != nil {
			return err
		}
		rows, err := hris.NewDepartmentClient(client).HRManagers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No HR managers assigned.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ASSIGNMENT\tEMPLOYEE\tEMAIL\tASSIGNED")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.EmployeeName, r.EmployeeEmail, r.AssignedAt)
		}
		return w.Flush()
	},
}

var deptHRAssignCmd = &cobra.Command{
	Use:   "assign <department-id> <employee-id>...",
	Short: "Assign employees as HR managers of a department",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage departments", auth.Role.CanManageDepartments); err != nil {
			return err
		}
		if err := hris.NewDepartmentClient(client).AssignHRManagers(cmd.Context(), args[0], args[1:]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d HR manager(s) to department %s\n", len(args)-1, args[0])
		return nil
	},
}

var deptHRRemoveCmd = &cobra.Command{
	Use:   "remove <assignment-id>",
	Short: "Remove one HR manager assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage departments", auth.Role.CanManageDepartments); err != nil {
			return err
		}
		if err := hris.NewDepartmentClient(client).RemoveHRManager(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed assignment %s\n", args[0])
		return nil
	},
}
