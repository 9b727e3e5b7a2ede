package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/hrctl-labs/hrctl/internal/auth"
	"github.com/hrctl-labs/hrctl/internal/hris"
	"github.com/hrctl-labs/hrctl/internal/importer"
)

var (
	employeeListPage   int
	employeeListSize   int
	employeeListSearch string
	employeeListAll    bool
	employeeListJSON   bool

	employeeFile string

	docName        string
	docType        string
	docDescription string
)

func init() {
	employeeListCmd.Flags().IntVar(&employeeListPage, "page", 1, "Page number (1-based)")
	employeeListCmd.Flags().IntVar(&employeeListSize, "page-size", 20, "Employees per page")
	employeeListCmd.Flags().StringVar(&employeeListSearch, "search", "", "Filter by name, email, or employee number")
	employeeListCmd.Flags().BoolVar(&employeeListAll, "all", false, "Fetch every employee instead of one page")
	employeeListCmd.Flags().BoolVar(&employeeListJSON, "json", false, "Output in JSON format")

	employeeCreateCmd.Flags().StringVarP(&employeeFile, "file", "f", "", "YAML file with the employee record (required)")
	_ = employeeCreateCmd.MarkFlagRequired("file")
	employeeUpdateCmd.Flags().StringVarP(&employeeFile, "file", "f", "", "YAML file with the employee record (required)")
	_ = employeeUpdateCmd.MarkFlagRequired("file")

	docUploadCmd.Flags().StringVar(&docName, "name", "", "Document name (required)")
	docUploadCmd.Flags().StringVar(&docType, "type", "", "Document type, e.g. Identification, Contract (required)")
	docUploadCmd.Flags().StringVar(&docDescription, "description", "", "Document description")
	_ = docUploadCmd.MarkFlagRequired("name")
	_ = docUploadCmd.MarkFlagRequired("type")

	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docUploadCmd)
	docCmd.AddCommand(docDeleteCmd)

	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeGetCmd)
	employeeCmd.AddCommand(employeeCreateCmd)
	employeeCmd.AddCommand(employeeUpdateCmd)
	employeeCmd.AddCommand(employeeDeleteCmd)
	employeeCmd.AddCommand(employeeImportCmd)
	employeeCmd.AddCommand(docCmd)
	rootCmd.AddCommand(employeeCmd)
}

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"emp"},
	Short:   "Manage employee records",
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("view employees", auth.Role.CanAccessEmployeeManagement); err != nil {
			return err
		}
		ec := hris.NewEmployeeClient(client)

		if employeeListAll {
			emps, err := ec.List(cmd.Context())
			if err != nil {
				return err
			}
			return printEmployees(cmd, emps, employeeListJSON)
		}

		page, err := ec.ListPaginated(cmd.Context(), hris.ListParams{
			PageNumber: employeeListPage,
			PageSize:   employeeListSize,
			Search:     employeeListSearch,
		})
		if err != nil {
			return err
		}
		if err := printEmployees(cmd, page.Items, employeeListJSON); err != nil {
			return err
		}
		if !employeeListJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d employees total)\n",
				page.PageNumber, page.TotalPages, page.TotalCount)
		}
		return nil
	},
}

func printEmployees(cmd *cobra.Command, emps []hris.Employee, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(emps, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	if len(emps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No employees found.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tNAME\tDEPARTMENT\tJOB TITLE\tSTATUS")
	for _, e := range emps {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			e.EmployeeNumber, e.FirstName, e.LastName, e.DepartmentName, e.JobTitleName, e.EmploymentStatus)
	}
	return w.Flush()
}

var employeeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("view employees", auth.Role.CanAccessEmployeeManagement); err != nil {
			return err
		}
		emp, err := hris.NewEmployeeClient(client).GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if emp == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No employee with id %s.\n", args[0])
			return nil
		}
		out, err := json.MarshalIndent(emp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

// readEmployeeFile decodes a single-record YAML file. The field names match
// the entries of an import file, so the same document works in both places.
func readEmployeeFile(path string) (hris.EmployeeInput, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hris.EmployeeInput{}, "", fmt.Errorf("reading %s: %w", path, err)
	}
	var rec importer.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return hris.EmployeeInput{}, "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec.Input(), rec.ID, nil
}

var employeeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employee from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("create employees", auth.Role.CanEditEmployee); err != nil {
			return err
		}
		in, _, err := readEmployeeFile(employeeFile)
		if err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return err
		}
		emp, err := hris.NewEmployeeClient(client).Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created employee %s (%s %s)\n", emp.ID, emp.FirstName, emp.LastName)
		return nil
	},
}

var employeeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an employee from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("update employees", auth.Role.CanEditEmployee); err != nil {
			return err
		}
		in, _, err := readEmployeeFile(employeeFile)
		if err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return err
		}
		emp, err := hris.NewEmployeeClient(client).Update(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated employee %s (%s %s)\n", emp.ID, emp.FirstName, emp.LastName)
		return nil
	},
}

var employeeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employee record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("delete employees", auth.Role.CanDeleteEmployee); err != nil {
			return err
		}
		if err := hris.NewEmployeeClient(client).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted employee %s\n", args[0])
		return nil
	},
}

var employeeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk-import employees from a YAML or JSON file",
	Long: `Validate an import file against the bundled schema and push its records to
the backend. Records carrying an id field are updates; the rest are creates.
A rejected record does not stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("import employees", auth.Role.CanEditEmployee); err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		f, issues, err := importer.Parse(data)
		if err != nil {
			return err
		}
		if len(issues) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not a valid import file:\n", filepath.Base(args[0]))
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", issue)
			}
			return fmt.Errorf("%d validation issue(s)", len(issues))
		}

		report := importer.Apply(cmd.Context(), hris.NewEmployeeClient(client), f)
		for _, out := range report.Outcomes {
			if out.Err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: FAILED: %s\n", out.EmployeeNumber, out.Err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s): %d created, %d updated, %d failed\n",
			len(report.Outcomes), report.Created, report.Updated, report.Failed)
		if report.Failed > 0 {
			return fmt.Errorf("%d record(s) failed", report.Failed)
		}
		return nil
	},
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage employee documents",
}

var docListCmd = &cobra.Command{
	Use:   "list <employee-id>",
	Short: "List an employee's documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("view employee documents", auth.Role.CanAccessEmployeeManagement); err != nil {
			return err
		}
		docs, err := hris.NewEmployeeClient(client).Documents(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents on file.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tUPLOADED")
		for _, d := range docs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.DocumentName, d.DocumentType, d.UploadedDate)
		}
		return w.Flush()
	},
}

var docUploadCmd = &cobra.Command{
	Use:   "upload <employee-id> <file>",
	Short: "Attach a document to an employee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("upload employee documents", auth.Role.CanEditEmployee); err != nil {
			return err
		}

		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[1], err)
		}
		defer f.Close()

		doc, err := hris.NewEmployeeClient(client).UploadDocument(cmd.Context(), hris.DocumentUpload{
			DocumentName:        docName,
			DocumentType:        docType,
			DocumentDescription: docDescription,
			FileName:            filepath.Base(args[1]),
			Content:             f,
			EmployeeID:          args[0],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (id %s)\n", doc.DocumentName, doc.ID)
		return nil
	},
}

var docDeleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability("delete employee documents", auth.Role.CanEditEmployee); err != nil {
			return err
		}
		if err := hris.NewEmployeeClient(client).DeleteDocument(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted document %s\n", args[0])
		return nil
	},
}
