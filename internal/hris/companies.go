package hris

import (
	"context"

	"github.com/hrctl-labs/hrctl/internal/api"
)

const companyPath = "/api/Company"

// Company is one legal entity employees belong to.
type Company struct {
	ID           string
	Name         string
	Description  string
	Address      string
	ContactEmail string
	ContactPhone string
	CreatedAt    string
	UpdatedAt    string
}

type wireCompany struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	ContactEmail *string `json:"contactEmail"`
	ContactPhone *string `json:"contactPhone"`
	CreatedAt    *string `json:"createdAt"`
	UpdatedAt    *string `json:"updatedAt"`
}

func mapCompany(w wireCompany) Company {
	now := nowRFC3339()
	return Company{
		ID:           w.ID,
		Name:         w.Name,
		Description:  deref(w.Description),
		Address:      deref(w.Address),
		ContactEmail: deref(w.ContactEmail),
		ContactPhone: deref(w.ContactPhone),
		CreatedAt:    orString(deref(w.CreatedAt), now),
		UpdatedAt:    orString(deref(w.UpdatedAt), now),
	}
}

// CompanyInput is the write shape. The company endpoint expects blank
// optionals as empty strings rather than omitted fields.
type CompanyInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
}

func (in CompanyInput) Validate() error {
	return validateInput(in)
}

type companyPayload struct {
	ID string `json:"id,omitempty"`
	CompanyInput
}

// CompanyClient drives /api/Company.
type CompanyClient struct {
	c *api.Client
}

func NewCompanyClient(c *api.Client) *CompanyClient {
	return &CompanyClient{c: c}
}

func (cc *CompanyClient) List(ctx context.Context) ([]Company, error) {
	w, err := api.Get[[]wireCompany](ctx, cc.c, companyPath, nil)
	if err != nil {
		return nil, err
	}
	companies := make([]Company, 0, len(*w))
	for _, c := range *w {
		companies = append(companies, mapCompany(c))
	}
	return companies, nil
}

// GetByID probes for one company; a 404 is a valid empty result.
func (cc *CompanyClient) GetByID(ctx context.Context, id string) (*Company, error) {
	w, err := api.Get[wireCompany](ctx, cc.c, companyPath+"/"+id, nil, api.AllowNotFound())
	if err != nil || w == nil {
		return nil, err
	}
	company := mapCompany(*w)
	return &company, nil
}

func (cc *CompanyClient) Create(ctx context.Context, in CompanyInput) (*Company, error) {
	w, err := api.Post[wireCompany](ctx, cc.c, companyPath, companyPayload{CompanyInput: in})
	if err != nil {
		return nil, err
	}
	company := mapCompany(*w)
	return &company, nil
}

func (cc *CompanyClient) Update(ctx context.Context, id string, in CompanyInput) (*Company, error) {
	w, err := api.Put[wireCompany](ctx, cc.c, companyPath, companyPayload{ID: id, CompanyInput: in})
	if err != nil {
		return nil, err
	}
	company := mapCompany(*w)
	return &company, nil
}

func (cc *CompanyClient) Delete(ctx context.Context, id string) error {
	return api.Delete(ctx, cc.c, companyPath+"/"+id)
}
