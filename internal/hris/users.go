package hris

import (
	"context"
	"strings"

	"github.com/hrctl-labs/hrctl/internal/api"
)

const userPath = "/api/User"

// SystemUser is a login account linked to an employee record.
type SystemUser struct {
	ID             string
	UserName       string
	Email          string
	EmployeeID     string
	FirstName      string
	LastName       string
	MiddleName     string
	EmployeeNumber string
}

type wireUser struct {
	ID             string  `json:"id"`
	UserName       string  `json:"userName"`
	Email          string  `json:"email"`
	EmployeeID     string  `json:"employeeId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	MiddleName     *string `json:"middleName"`
	EmployeeNumber string  `json:"employeeNumber"`
}

func mapUser(w wireUser) SystemUser {
	return SystemUser{
		ID:             w.ID,
		UserName:       w.UserName,
		Email:          w.Email,
		EmployeeID:     w.EmployeeID,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		MiddleName:     deref(w.MiddleName),
		EmployeeNumber: w.EmployeeNumber,
	}
}

// UserInput is the write shape for system-user accounts. Password is required
// on create; on update a blank password is omitted and the account keeps its
// current one.
type UserInput struct {
	UserName   string `json:"userName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"-"`
	EmployeeID string `json:"employeeId" validate:"required"`
}

func (in UserInput) Validate() error {
	return validateInput(in)
}

// UserClient drives /api/User.
type UserClient struct {
	c *api.Client
}

func NewUserClient(c *api.Client) *UserClient {
	return &UserClient{c: c}
}

func (uc *UserClient) ListPaginated(ctx context.Context, params ListParams) (*Page[SystemUser], error) {
	w, err := api.Get[wirePage[wireUser]](ctx, uc.c, userPath, params.query())
	if err != nil {
		return nil, err
	}
	return mapPage(w, mapUser), nil
}

func (uc *UserClient) List(ctx context.Context) ([]SystemUser, error) {
	page, err := uc.ListPaginated(ctx, ListParams{PageNumber: 1, PageSize: fetchAllPageSize})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (uc *UserClient) Create(ctx context.Context, in UserInput) (*SystemUser, error) {
	if strings.TrimSpace(in.Password) == "" {
		return nil, &api.ValidationError{
			Message: "Validation failed",
			Fields:  []api.FieldError{{Field: "Password", Message: "Password is required"}},
		}
	}
	w, err := api.Post[wireUser](ctx, uc.c, userPath, in)
	if err != nil {
		return nil, err
	}
	u := mapUser(*w)
	return &u, nil
}

func (uc *UserClient) Update(ctx context.Context, id string, in UserInput) (*SystemUser, error) {
	w, err := api.Put[wireUser](ctx, uc.c, userPath+"/"+id, in)
	if err != nil {
		return nil, err
	}
	u := mapUser(*w)
	return &u, nil
}

func (uc *UserClient) Delete(ctx context.Context, id string) error {
	return api.Delete(ctx, uc.c, userPath+"/"+id)
}
