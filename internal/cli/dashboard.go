package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hrctl-labs/hrctl/internal/hris"
)

var (
	dashCompanyID string
	dashLimit     int
	dashDays      int
)

// numberPrinter formats counts with locale-aware separators.
var numberPrinter = message.NewPrinter(language.English)

func init() {
	dashboardCmd.PersistentFlags().StringVar(&dashCompanyID, "company", "", "Scope to one company id")
	dashActivityCmd.Flags().IntVar(&dashLimit, "limit", 10, "Maximum events to show")
	dashBirthdaysCmd.Flags().IntVar(&dashDays, "days", 30, "Lookahead window in days")

	dashboardCmd.AddCommand(dashStatsCmd)
	dashboardCmd.AddCommand(dashActivityCmd)
	dashboardCmd.AddCommand(dashBirthdaysCmd)
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "HR dashboard: headcount, activity, and birthdays",
}

func trendSuffix(t hris.DashboardTrend) string {
	if t.Change == 0 && t.Description == "" {
		return ""
	}
	arrow := "down"
	if t.IsIncrease {
		arrow = "up"
	}
	return numberPrinter.Sprintf(" (%s %.1f%% %s)", arrow, t.Change, t.Description)
}

var dashStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the headcount breakdown by employment status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		stats, err := hris.NewDashboardClient(client).Stats(cmd.Context(), dashCompanyID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		row := func(label string, count int, trend hris.DashboardTrend) {
			numberPrinter.Fprintf(w, "%s:\t%d%s\n", label, count, trendSuffix(trend))
		}
		row("Total employees", stats.TotalEmployees, stats.TotalEmployeesTrend)
		row("Regular", stats.RegularEmployees, stats.RegularEmployeesTrend)
		row("Probationary", stats.ProbationaryEmployees, stats.ProbationaryEmployeesTrend)
		row("Contractual", stats.ContractualEmployees, stats.ContractualEmployeesTrend)
		numberPrinter.Fprintf(w, "Project-based:\t%d\n", stats.ProjectBasedEmployees)
		numberPrinter.Fprintf(w, "Resigned:\t%d\n", stats.ResignedEmployees)
		numberPrinter.Fprintf(w, "Terminated:\t%d\n", stats.TerminatedEmployees)
		return w.Flush()
	},
}

var dashActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent HR events",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		acts, err := hris.NewDashboardClient(client).RecentActivities(cmd.Context(), dashLimit, dashCompanyID)
		if err != nil {
			return err
		}
		if len(acts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recent activity.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "WHEN\tEMPLOYEE\tEVENT")
		for _, a := range acts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Timestamp, a.EmployeeName, a.Action)
		}
		return w.Flush()
	},
}

var dashBirthdaysCmd = &cobra.Command{
	Use:   "birthdays",
	Short: "Show upcoming employee birthdays",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}
		bds, err := hris.NewDashboardClient(client).UpcomingBirthdays(cmd.Context(), dashDays, dashCompanyID)
		if err != nil {
			return err
		}
		if len(bds) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No birthdays in the next %d days.\n", dashDays)
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "EMPLOYEE\tDEPARTMENT\tBIRTHDAY\tIN")
		for _, b := range bds {
			when := fmt.Sprintf("%d day(s)", b.DaysUntil)
			if b.IsToday {
				when = "today"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.EmployeeName, b.Department, b.NextBirthday, when)
		}
		return w.Flush()
	},
}
