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
	companyName    string
	companyDesc    string
	companyAddress string
	companyEmail   string
	companyPhone   string
)

func addCompanyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&companyName, "name", "", "Company name (required)")
	cmd.Flags().StringVar(&companyDesc, "description", "", "Company description")
	cmd.Flags().StringVar(&companyAddress, "address", "", "Company address")
	cmd.Flags().StringVar(&companyEmail, "email", "", "Contact email")
	cmd.Flags().StringVar(&companyPhone, "phone", "", "Contact phone")
	_ = cmd.MarkFlagRequired("name")
}

func init() {
	addCompanyFlags(companyCreateCmd)
	addCompanyFlags(companyUpdateCmd)

	companyCmd.AddCommand(companyListCmd)
	companyCmd.AddCommand(companyGetCmd)
	companyCmd.AddCommand(companyCreateCmd)
	companyCmd.AddCommand(companyUpdateCmd)
	companyCmd.AddCommand(companyDeleteCmd)
	rootCmd.AddCommand(companyCmd)
}

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		companies, err := hris.NewCompanyClient(client).List(cmd.Context())
		if err != nil {
			return err
		}
		if len(companies) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No companies found.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCONTACT\tPHONE")
		for _, c := range companies {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.ContactEmail, c.ContactPhone)
		}
		return w.Flush()
	},
}

var companyGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		company, err := hris.NewCompanyClient(client).GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if company == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No company with id %s.\n", args[0])
			return nil
		}
		out, err := json.MarshalIndent(company, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func companyInput() hris.CompanyInput {
	return hris.CompanyInput{
		Name:         companyName,
		Description:  companyDesc,
		Address:      companyAddress,
		ContactEmail: companyEmail,
		ContactPhone: companyPhone,
	}
}

var companyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage companies", auth.Role.CanManageCompany); err != nil {
			return err
		}
		in := companyInput()
		if err := in.Validate(); err != nil {
			return err
		}
		company, err := hris.NewCompanyClient(client).Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created company %s (%s)\n", company.Name, company.ID)
		return nil
	},
}

var companyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage companies", auth.Role.CanManageCompany); err != nil {
			return err
		}
		in := companyInput()
		if err := in.Validate(); err != nil {
			return err
		}
		company, err := hris.NewCompanyClient(client).Update(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated company %s\n", company.Name)
		return nil
	},
}

var companyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("manage companies", auth.Role.CanManageCompany); err != nil {
			return err
		}
		if err := hris.NewCompanyClient(client).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted company %s\n", args[0])
		return nil
	},
}
