package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrctl-labs/hrctl/internal/auth"
	"github.com/hrctl-labs/hrctl/internal/hris"
)

var (
	jobTitleListPage   int
	jobTitleListSize   int
	jobTitleListSearch string
	jobTitleListAll    bool

	jobTitleTitle      string
	jobTitleDesc       string
	jobTitleDepartment string
	jobTitleCompany    string
)

func addJobTitleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&jobTitleTitle, "title", "", "Position title (required)")
	cmd.Flags().StringVar(&jobTitleDesc, "description", "", "Position description")
	cmd.Flags().StringVar(&jobTitleDepartment, "department", "", "Owning department id")
	cmd.Flags().StringVar(&jobTitleCompany, "company", "", "Owning company id")
	_ = cmd.MarkFlagRequired("title")
}

func init() {
	jobTitleListCmd.Flags().IntVar(&jobTitleListPage, "page", 1, "Page number (1-based)")
	jobTitleListCmd.Flags().IntVar(&jobTitleListSize, "page-size", 20, "Job titles per page")
	jobTitleListCmd.Flags().StringVar(&jobTitleListSearch, "search", "", "Filter by title")
	jobTitleListCmd.Flags().BoolVar(&jobTitleListAll, "all", false, "Fetch every job title instead of one page")

	addJobTitleFlags(jobTitleCreateCmd)
	addJobTitleFlags(jobTitleUpdateCmd)

	jobTitleCmd.AddCommand(jobTitleListCmd)
	jobTitleCmd.AddCommand(jobTitleGetCmd)
	jobTitleCmd.AddCommand(jobTitleCreateCmd)
	jobTitleCmd.AddCommand(jobTitleUpdateCmd)
	jobTitleCmd.AddCommand(jobTitleDeleteCmd)
	rootCmd.AddCommand(jobTitleCmd)
}

var jobTitleCmd = &cobra.Command{
	Use:     "jobtitle",
	Aliases: []string{"jt"},
	Short:   "Manage job titles",
}

var jobTitleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		jc := hris.NewJobTitleClient(client)

		var titles []hris.JobTitle
		if jobTitleListAll {
			all, err := jc.List(cmd.Context())
			if err != nil {
				return err
			}
			titles = all
		} else {
			page, err := jc.ListPaginated(cmd.Context(), hris.ListParams{
				PageNumber: jobTitleListPage,
				PageSize:   jobTitleListSize,
				Search:     jobTitleListSearch,
			})
			if err != nil {
				return err
			}
			titles = page.Items
		}

		if len(titles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No job titles found.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tDEPARTMENT\tCOMPANY")
		for _, jt := range titles {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", jt.ID, jt.Title, jt.DepartmentName, jt.CompanyName)
		}
		return w.Flush()
	},
}

var jobTitleGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one job title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		jt, err := hris.NewJobTitleClient(client).GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jt == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No job title with id %s.\n", args[0])
			return nil
		}
		out, err := json.MarshalIndent(jt, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func jobTitleInput() hris.JobTitleInput {
	return hris.JobTitleInput{
		Title:        jobTitleTitle,
		Description:  jobTitleDesc,
		DepartmentID: jobTitleDepartment,
		CompanyID:    jobTitleCompany,
	}
}

var jobTitleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a job title",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage job titles", auth.Role.CanManageJobTitles); err != nil {
			return err
		}
		in := jobTitleInput()
		if err := in.Validate(); err != nil {
			return err
		}
		jt, err := hris.NewJobTitleClient(client).Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created job title %s (%s)\n", jt.Title, jt.ID)
		return nil
	},
}

var jobTitleUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a job title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage job titles", auth.Role.CanManageJobTitles); err != nil {
			return err
		}
		in := jobTitleInput()
		if err := in.Validate(); err != nil {
			return err
		}
		jt, err := hris.NewJobTitleClient(client).Update(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated job title %s\n", jt.Title)
		return nil
	},
}

var jobTitleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a job title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage job titles", auth.Role.CanManageJobTitles); err != nil {
			return err
		}
		if err := hris.NewJobTitleClient(client).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted job title %s\n", args[0])
		return nil
	},
}
