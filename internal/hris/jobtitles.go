package hris

import (
	"context"

	"github.com/hrctl-labs/hrctl/internal/api"
)

const jobTitlePath = "/api/JobTitle"

// JobTitle is one position definition within a department.
type JobTitle struct {
	ID             string
	Title          string
	Description    string
	DepartmentID   string
	CompanyID      string
	DepartmentName string
	CompanyName    string
	CreatedAt      string
	UpdatedAt      string
}

type wireJobTitle struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	DepartmentID   *string `json:"departmentId"`
	CompanyID      *string `json:"companyId"`
	DepartmentName *string `json:"departmentName"`
	CompanyName    *string `json:"companyName"`
	CreatedAt      *string `json:"createdAt"`
	UpdatedAt      *string `json:"updatedAt"`
}

func mapJobTitle(w wireJobTitle) JobTitle {
	now := nowRFC3339()
	return JobTitle{
		ID:             w.ID,
		Title:          w.Title,
		Description:    deref(w.Description),
		DepartmentID:   deref(w.DepartmentID),
		CompanyID:      deref(w.CompanyID),
		DepartmentName: deref(w.DepartmentName),
		CompanyName:    deref(w.CompanyName),
		CreatedAt:      orString(deref(w.CreatedAt), now),
		UpdatedAt:      orString(deref(w.UpdatedAt), now),
	}
}

// JobTitleInput is the write shape for create/update.
type JobTitleInput struct {
	Title        string `validate:"required"`
	Description  string `validate:"-"`
	DepartmentID string `validate:"-"`
	CompanyID    string `validate:"-"`
}

func (in JobTitleInput) Validate() error {
	return validateInput(in)
}

type jobTitlePayload struct {
	ID           string  `json:"id,omitempty"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	DepartmentID *string `json:"departmentId"`
	CompanyID    *string `json:"companyId"`
}

func buildJobTitlePayload(in JobTitleInput, id string) jobTitlePayload {
	return jobTitlePayload{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		DepartmentID: optionalString(in.DepartmentID),
		CompanyID:    optionalString(in.CompanyID),
	}
}

// JobTitleClient drives /api/JobTitle.
type JobTitleClient struct {
	c *api.Client
}

func NewJobTitleClient(c *api.Client) *JobTitleClient {
	return &JobTitleClient{c: c}
}

func (jc *JobTitleClient) ListPaginated(ctx context.Context, params ListParams) (*Page[JobTitle], error) {
	w, err := api.Get[wirePage[wireJobTitle]](ctx, jc.c, jobTitlePath, params.query())
	if err != nil {
		return nil, err
	}
	return mapPage(w, mapJobTitle), nil
}

func (jc *JobTitleClient) List(ctx context.Context) ([]JobTitle, error) {
	page, err := jc.ListPaginated(ctx, ListParams{PageNumber: 1, PageSize: fetchAllPageSize})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetByID probes for one job title; a 404 is a valid empty result.
func (jc *JobTitleClient) GetByID(ctx context.Context, id string) (*JobTitle, error) {
	w, err := api.Get[wireJobTitle](ctx, jc.c, jobTitlePath+"/"+id, nil, api.AllowNotFound())
	if err != nil || w == nil {
		return nil, err
	}
	jt := mapJobTitle(*w)
	return &jt, nil
}

func (jc *JobTitleClient) Create(ctx context.Context, in JobTitleInput) (*JobTitle, error) {
	w, err := api.Post[wireJobTitle](ctx, jc.c, jobTitlePath, buildJobTitlePayload(in, ""))
	if err != nil {
		return nil, err
	}
	jt := mapJobTitle(*w)
	return &jt, nil
}

func (jc *JobTitleClient) Update(ctx context.Context, id string, in JobTitleInput) (*JobTitle, error) {
	w, err := api.Put[wireJobTitle](ctx, jc.c, jobTitlePath, buildJobTitlePayload(in, id))
	if err != nil {
		return nil, err
	}
	jt := mapJobTitle(*w)
	return &jt, nil
}

func (jc *JobTitleClient) Delete(ctx context.Context, id string) error {
	return api.Delete(ctx, jc.c, jobTitlePath+"/"+id)
}
