package hris

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hrctl-labs/hrctl/internal/api"
)

const dashboardPath = "/api/Dashboard"

// DashboardTrend describes the movement of one stat since the prior period.
type DashboardTrend struct {
	Change      float64 `json:"change"`
	IsIncrease  bool    `json:"isIncrease"`
	Description string  `json:"description"`
}

// DashboardStats is the headcount breakdown by employment status.
type DashboardStats struct {
	TotalEmployees        int `json:"totalEmployees"`
	RegularEmployees      int `json:"regularEmployees"`
	ProbationaryEmployees int `json:"probationaryEmployees"`
	ContractualEmployees  int `json:"contractualEmployees"`
	ProjectBasedEmployees int `json:"projectBasedEmployees"`
	ResignedEmployees     int `json:"resignedEmployees"`
	TerminatedEmployees   int `json:"terminatedEmployees"`

	TotalEmployeesTrend        DashboardTrend `json:"totalEmployeesTrend"`
	RegularEmployeesTrend      DashboardTrend `json:"regularEmployeesTrend"`
	ProbationaryEmployeesTrend DashboardTrend `json:"probationaryEmployeesTrend"`
	ContractualEmployeesTrend  DashboardTrend `json:"contractualEmployeesTrend"`
}

// Activity is one recent HR event (hire, status change, document, leave...).
type Activity struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	EmployeeID       string  `json:"employeeId"`
	Action           string  `json:"action"`
	Status           *string `json:"status"`
	Timestamp        string  `json:"timestamp"`
	CreatedAt        string  `json:"createdAt"`
	EmployeeName     string  `json:"employeeName"`
	EmployeePosition string  `json:"employeePosition"`
}

// UpcomingBirthday is one employee birthday inside the lookahead window.
type UpcomingBirthday struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	JobTitle     string `json:"jobTitle"`
	Department   string `json:"department"`
	BirthDate    string `json:"birthDate"`
	NextBirthday string `json:"nextBirthday"`
	DaysUntil    int    `json:"daysUntil"`
	Age          int    `json:"age"`
	IsToday      bool   `json:"isToday"`
	IsThisWeek   bool   `json:"isThisWeek"`
}

// DashboardClient drives /api/Dashboard.
type DashboardClient struct {
	c *api.Client
}

func NewDashboardClient(c *api.Client) *DashboardClient {
	return &DashboardClient{c: c}
}

// Stats fetches the headcount stats, optionally scoped to one company.
func (dc *DashboardClient) Stats(ctx context.Context, companyID string) (*DashboardStats, error) {
	q := url.Values{}
	if companyID != "" {
		q.Set("companyId", companyID)
	}
	return api.Get[DashboardStats](ctx, dc.c, dashboardPath+"/Stats", q)
}

// RecentActivities fetches up to limit recent events.
func (dc *DashboardClient) RecentActivities(ctx context.Context, limit int, companyID string) ([]Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if companyID != "" {
		q.Set("companyId", companyID)
	}
	acts, err := api.Get[[]Activity](ctx, dc.c, dashboardPath+"/RecentActivities", q)
	if err != nil {
		return nil, err
	}
	return *acts, nil
}

// UpcomingBirthdays fetches birthdays within the next days.
func (dc *DashboardClient) UpcomingBirthdays(ctx context.Context, days int, companyID string) ([]UpcomingBirthday, error) {
	if days <= 0 {
		days = 30
	}
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	if companyID != "" {
		q.Set("companyId", companyID)
	}
	bds, err := api.Get[[]UpcomingBirthday](ctx, dc.c, dashboardPath+"/UpcomingBirthdays", q)
	if err != nil {
		return nil, err
	}
	return *bds, nil
}
