package hris

import (
	"context"

	"github.com/hrctl-labs/hrctl/internal/api"
)

const (
	departmentPath    = "/api/Department"
	deptHRManagerPath = "/api/DepartmentHrManager"
)

// Department is one organizational unit, with the display fields the
// backend denormalizes in.
type Department struct {
	ID             string
	Name           string
	Description    string
	CompanyID      string
	HeadEmployeeID string
	CompanyName    string
	EmployeeCount  int
	HRManagers     []DepartmentHRManagerRef
	CreatedAt      string
	UpdatedAt      string
}

// DepartmentHRManagerRef is the compact HR-manager reference embedded in a
// department read.
type DepartmentHRManagerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type wireDepartment struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Description    *string                  `json:"description"`
	CompanyID      string                   `json:"companyId"`
	HeadEmployeeID *string                  `json:"headEmployeeId"`
	CompanyName    *string                  `json:"companyName"`
	EmployeeCount  *int                     `json:"employeeCount"`
	HRManagers     []DepartmentHRManagerRef `json:"hrManagers"`
}

func mapDepartment(w wireDepartment) Department {
	now := nowRFC3339()
	count := 0
	if w.EmployeeCount != nil {
		count = *w.EmployeeCount
	}
	return Department{
		ID:             w.ID,
		Name:           w.Name,
		Description:    deref(w.Description),
		CompanyID:      w.CompanyID,
		HeadEmployeeID: deref(w.HeadEmployeeID),
		CompanyName:    deref(w.CompanyName),
		EmployeeCount:  count,
		HRManagers:     w.HRManagers,
		// The department read carries no timestamps; keep the invariant
		// that domain timestamps are always populated.
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DepartmentInput is the write shape for create/update.
type DepartmentInput struct {
	Name           string `validate:"required"`
	Description    string `validate:"-"`
	CompanyID      string `validate:"required"`
	HeadEmployeeID string `validate:"-"`
}

func (in DepartmentInput) Validate() error {
	return validateInput(in)
}

type departmentPayload struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	CompanyID      string  `json:"companyId"`
	HeadEmployeeID *string `json:"headEmployeeId"`
}

func buildDepartmentPayload(in DepartmentInput, id string) departmentPayload {
	return departmentPayload{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		CompanyID:   in.CompanyID,
		// Explicit null clears the head assignment; blank never becomes "".
		HeadEmployeeID: optionalString(in.HeadEmployeeID),
	}
}

// DepartmentHRManager is one HR-manager assignment row.
type DepartmentHRManager struct {
	ID             string `json:"id"`
	DepartmentID   string `json:"departmentId"`
	EmployeeID     string `json:"employeeId"`
	EmployeeName   string `json:"employeeName"`
	EmployeeEmail  string `json:"employeeEmail"`
	EmployeeNumber string `json:"employeeNumber"`
	AssignedAt     string `json:"assignedAt"`
}

// DepartmentClient drives /api/Department and /api/DepartmentHrManager.
type DepartmentClient struct {
	c *api.Client
}

func NewDepartmentClient(c *api.Client) *DepartmentClient {
	return &DepartmentClient{c: c}
}

// Managed lists the departments visible to the logged-in user.
func (dc *DepartmentClient) Managed(ctx context.Context) ([]Department, error) {
	w, err := api.Get[[]wireDepartment](ctx, dc.c, departmentPath+"/GetManagedDepartments", nil)
	if err != nil {
		return nil, err
	}
	depts := make([]Department, 0, len(*w))
	for _, d := range *w {
		depts = append(depts, mapDepartment(d))
	}
	return depts, nil
}

func (dc *DepartmentClient) Create(ctx context.Context, in DepartmentInput) (*Department, error) {
	w, err := api.Post[wireDepartment](ctx, dc.c, departmentPath, buildDepartmentPayload(in, ""))
	if err != nil {
		return nil, err
	}
	dept := mapDepartment(*w)
	return &dept, nil
}

func (dc *DepartmentClient) Update(ctx context.Context, id string, in DepartmentInput) (*Department, error) {
	w, err := api.Put[wireDepartment](ctx, dc.c, departmentPath, buildDepartmentPayload(in, id))
	if err != nil {
		return nil, err
	}
	dept := mapDepartment(*w)
	return &dept, nil
}

func (dc *DepartmentClient) Delete(ctx context.Context, id string) error {
	return api.Delete(ctx, dc.c, departmentPath+"/"+id)
}

type assignHRManagersPayload struct {
	DepartmentID string   `json:"departmentId"`
	EmployeeIDs  []string `json:"employeeIds"`
}

// AssignHRManagers grants HR-manager visibility over a department to the
// given employees.
func (dc *DepartmentClient) AssignHRManagers(ctx context.Context, departmentID string, employeeIDs []string) error {
	return api.PostVoid(ctx, dc.c, departmentPath+"/hr-managers/assign", assignHRManagersPayload{
		DepartmentID: departmentID,
		EmployeeIDs:  employeeIDs,
	})
}

// HRManagers lists the HR-manager assignments for a department.
func (dc *DepartmentClient) HRManagers(ctx context.Context, departmentID string) ([]DepartmentHRManager, error) {
	rows, err := api.Get[[]DepartmentHRManager](ctx, dc.c, deptHRManagerPath+"/department/"+departmentID, nil)
	if err != nil {
		return nil, err
	}
	return *rows, nil
}

// RemoveHRManager deletes one HR-manager assignment by its row id.
func (dc *DepartmentClient) RemoveHRManager(ctx context.Context, assignmentID string) error {
	return api.Delete(ctx, dc.c, deptHRManagerPath+"/"+assignmentID)
}
