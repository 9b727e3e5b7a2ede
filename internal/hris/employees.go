package hris

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/hrctl-labs/hrctl/internal/api"
)

const (
	employeePath    = "/api/Employee"
	employeeDocPath = "/api/EmployeeDoc"
)

// Employee is the domain shape: enumerations as named variants, blank
// optionals as empty strings, reference display names denormalized in, and
// CreatedAt/UpdatedAt always populated.
type Employee struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	MiddleName string

	BirthDate   string
	Gender      Gender
	CivilStatus CivilStatus

	Email       string
	PhoneNumber string
	Address     string

	SSSNumber        string
	PhilHealthNumber string
	PagIbigNumber    string
	TIN              string

	EmployeeNumber   string
	DateHired        string
	CompanyID        string
	DepartmentID     string
	JobTitleID       string
	EmploymentStatus EmploymentStatus

	CompanyName    string
	DepartmentName string
	JobTitleName   string

	Avatar    string
	CreatedAt string
	UpdatedAt string
}

type wireEmployee struct {
	ID               string   `json:"id"`
	UserID           string   `json:"userId"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	MiddleName       *string  `json:"middleName"`
	Email            string   `json:"email"`
	BirthDate        string   `json:"birthDate"`
	Gender           enumCode `json:"gender"`
	CivilStatus      enumCode `json:"civilStatus"`
	PhoneNumber      string   `json:"phoneNumber"`
	Address          string   `json:"address"`
	SSSNumber        *string  `json:"sssNumber"`
	PhilHealthNumber *string  `json:"philHealthNumber"`
	PagIbigNumber    *string  `json:"pagIbigNumber"`
	TIN              *string  `json:"tin"`
	EmployeeNumber   string   `json:"employeeNumber"`
	DateHired        string   `json:"dateHired"`
	CompanyID        string   `json:"companyId"`
	DepartmentID     string   `json:"departmentId"`
	JobTitleID       string   `json:"jobTitleId"`
	EmploymentStatus enumCode `json:"employmentStatus"`
	Avatar           *string  `json:"avatar"`
	CompanyName      *string  `json:"companyName"`
	DepartmentName   *string  `json:"departmentName"`
	JobTitleName     *string  `json:"jobTitleName"`
	CreatedAt        *string  `json:"createdAt"`
	UpdatedAt        *string  `json:"updatedAt"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapEmployee(w wireEmployee) Employee {
	now := nowRFC3339()
	return Employee{
		ID:               w.ID,
		UserID:           w.UserID,
		FirstName:        w.FirstName,
		LastName:         w.LastName,
		MiddleName:       deref(w.MiddleName),
		BirthDate:        w.BirthDate,
		Gender:           mapGender(w.Gender),
		CivilStatus:      mapCivilStatus(w.CivilStatus),
		Email:            w.Email,
		PhoneNumber:      w.PhoneNumber,
		Address:          w.Address,
		SSSNumber:        deref(w.SSSNumber),
		PhilHealthNumber: deref(w.PhilHealthNumber),
		PagIbigNumber:    deref(w.PagIbigNumber),
		TIN:              deref(w.TIN),
		EmployeeNumber:   w.EmployeeNumber,
		DateHired:        w.DateHired,
		CompanyID:        w.CompanyID,
		DepartmentID:     w.DepartmentID,
		JobTitleID:       w.JobTitleID,
		EmploymentStatus: mapEmploymentStatus(w.EmploymentStatus),
		CompanyName:      orString(deref(w.CompanyName), "Unknown Company"),
		DepartmentName:   orString(deref(w.DepartmentName), "Unknown Department"),
		JobTitleName:     orString(deref(w.JobTitleName), "Unknown Job Title"),
		Avatar:           deref(w.Avatar),
		CreatedAt:        orString(deref(w.CreatedAt), now),
		UpdatedAt:        orString(deref(w.UpdatedAt), now),
	}
}

// EmployeeInput is the domain-shaped write input. Validate runs the struct
// tags before anything is sent.
type EmployeeInput struct {
	UserID           string           `validate:"required"`
	FirstName        string           `validate:"required"`
	LastName         string           `validate:"required"`
	MiddleName       string           `validate:"-"`
	Email            string           `validate:"required,email"`
	BirthDate        string           `validate:"required"`
	Gender           Gender           `validate:"required,oneof=Male Female Other"`
	CivilStatus      CivilStatus      `validate:"required,oneof=Single Married Divorced Widowed Separated"`
	PhoneNumber      string           `validate:"required"`
	Address          string           `validate:"required"`
	SSSNumber        string           `validate:"-"`
	PhilHealthNumber string           `validate:"-"`
	PagIbigNumber    string           `validate:"-"`
	TIN              string           `validate:"-"`
	EmployeeNumber   string           `validate:"required"`
	DateHired        string           `validate:"required"`
	CompanyID        string           `validate:"required"`
	DepartmentID     string           `validate:"required"`
	JobTitleID       string           `validate:"required"`
	EmploymentStatus EmploymentStatus `validate:"required,oneof=Probationary Regular Contractual ProjectBased Resigned Terminated"`
	Avatar           string           `validate:"-"`
}

// Validate reports client-side validation problems in the same shape the
// backend uses, so the caller renders them identically.
func (in EmployeeInput) Validate() error {
	return validateInput(in)
}

// employeePayload is the backend's flat PascalCase write shape. Optional
// fields are omitted when blank after trimming rather than sent empty.
type employeePayload struct {
	ID               string  `json:"Id,omitempty"`
	UserID           string  `json:"UserId"`
	FirstName        string  `json:"FirstName"`
	LastName         string  `json:"LastName"`
	MiddleName       *string `json:"MiddleName,omitempty"`
	Email            string  `json:"Email"`
	BirthDate        string  `json:"BirthDate"`
	Gender           int     `json:"Gender"`
	CivilStatus      int     `json:"CivilStatus"`
	PhoneNumber      string  `json:"PhoneNumber"`
	Address          string  `json:"Address"`
	SSSNumber        *string `json:"SssNumber,omitempty"`
	PhilHealthNumber *string `json:"PhilHealthNumber,omitempty"`
	PagIbigNumber    *string `json:"PagIbigNumber,omitempty"`
	TIN              *string `json:"Tin,omitempty"`
	EmployeeNumber   string  `json:"EmployeeNumber"`
	DateHired        string  `json:"DateHired"`
	CompanyID        string  `json:"CompanyId"`
	DepartmentID     string  `json:"DepartmentId"`
	JobTitleID       string  `json:"JobTitleId"`
	EmploymentStatus int     `json:"EmploymentStatus"`
	Avatar           *string `json:"Avatar,omitempty"`
}

func buildEmployeePayload(in EmployeeInput, id string) employeePayload {
	return employeePayload{
		ID:               id,
		UserID:           in.UserID,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		MiddleName:       optionalString(in.MiddleName),
		Email:            in.Email,
		BirthDate:        normalizeDate(in.BirthDate),
		Gender:           in.Gender.code(),
		CivilStatus:      in.CivilStatus.code(),
		PhoneNumber:      in.PhoneNumber,
		Address:          in.Address,
		SSSNumber:        optionalString(in.SSSNumber),
		PhilHealthNumber: optionalString(in.PhilHealthNumber),
		PagIbigNumber:    optionalString(in.PagIbigNumber),
		TIN:              optionalString(in.TIN),
		EmployeeNumber:   in.EmployeeNumber,
		DateHired:        normalizeDate(in.DateHired),
		CompanyID:        in.CompanyID,
		DepartmentID:     in.DepartmentID,
		JobTitleID:       in.JobTitleID,
		EmploymentStatus: in.EmploymentStatus.code(),
		Avatar:           optionalString(in.Avatar),
	}
}

// EmployeeClient drives /api/Employee and /api/EmployeeDoc.
type EmployeeClient struct {
	c *api.Client
}

func NewEmployeeClient(c *api.Client) *EmployeeClient {
	return &EmployeeClient{c: c}
}

// ListPaginated fetches one page of employees.
func (ec *EmployeeClient) ListPaginated(ctx context.Context, params ListParams) (*Page[Employee], error) {
	w, err := api.Get[wirePage[wireEmployee]](ctx, ec.c, employeePath, params.query())
	if err != nil {
		return nil, err
	}
	return mapPage(w, mapEmployee), nil
}

// List fetches the first page with a size large enough to emulate "all".
func (ec *EmployeeClient) List(ctx context.Context) ([]Employee, error) {
	page, err := ec.ListPaginated(ctx, ListParams{PageNumber: 1, PageSize: fetchAllPageSize})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetByID probes for one employee; a 404 is a valid empty result.
func (ec *EmployeeClient) GetByID(ctx context.Context, id string) (*Employee, error) {
	w, err := api.Get[wireEmployee](ctx, ec.c, employeePath+"/"+id, nil, api.AllowNotFound())
	if err != nil || w == nil {
		return nil, err
	}
	emp := mapEmployee(*w)
	return &emp, nil
}

func (ec *EmployeeClient) Create(ctx context.Context, in EmployeeInput) (*Employee, error) {
	w, err := api.Post[wireEmployee](ctx, ec.c, employeePath, buildEmployeePayload(in, ""))
	if err != nil {
		return nil, err
	}
	emp := mapEmployee(*w)
	return &emp, nil
}

func (ec *EmployeeClient) Update(ctx context.Context, id string, in EmployeeInput) (*Employee, error) {
	w, err := api.Put[wireEmployee](ctx, ec.c, employeePath, buildEmployeePayload(in, id))
	if err != nil {
		return nil, err
	}
	emp := mapEmployee(*w)
	return &emp, nil
}

func (ec *EmployeeClient) Delete(ctx context.Context, id string) error {
	return api.Delete(ctx, ec.c, employeePath+"/"+id)
}

// EmployeeDocument is a stored document attached to an employee record.
type EmployeeDocument struct {
	ID                  string `json:"id"`
	DocumentName        string `json:"documentName"`
	DocumentType        string `json:"documentType"`
	DocumentDescription string `json:"documentDescription"`
	DocumentPath        string `json:"documentPath"`
	EmployeeID          string `json:"employeeId"`
	FilePath            string `json:"filePath"`
	FileSize            int64  `json:"fileSize"`
	UploadedDate        string `json:"uploadedDate"`
	EmployeeName        string `json:"employeeName"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

// DocumentUpload describes one document to attach to an employee.
type DocumentUpload struct {
	DocumentName        string `validate:"required"`
	DocumentType        string `validate:"required"`
	DocumentDescription string `validate:"-"`
	FileName            string `validate:"required"`
	Content             io.Reader
	EmployeeID          string `validate:"required"`
}

// UploadDocument sends the document as multipart form data. The content
// type comes from the multipart writer so the boundary survives intact.
func (ec *EmployeeClient) UploadDocument(ctx context.Context, up DocumentUpload) (*EmployeeDocument, error) {
	if err := validateInput(up); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"DocumentName":        up.DocumentName,
		"DocumentType":        up.DocumentType,
		"DocumentDescription": up.DocumentDescription,
		"EmployeeId":          up.EmployeeID,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", name, err)
		}
	}

	part, err := mw.CreateFormFile("Document", up.FileName)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return nil, fmt.Errorf("copying document content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	return api.PostMultipart[EmployeeDocument](ctx, ec.c, employeeDocPath, &buf, mw.FormDataContentType())
}

// Documents lists the documents stored for one employee.
func (ec *EmployeeClient) Documents(ctx context.Context, employeeID string) ([]EmployeeDocument, error) {
	docs, err := api.Get[[]EmployeeDocument](ctx, ec.c, employeeDocPath+"/employee/"+employeeID, nil)
	if err != nil {
		return nil, err
	}
	return *docs, nil
}

// DeleteDocument removes one stored document by its id.
func (ec *EmployeeClient) DeleteDocument(ctx context.Context, documentID string) error {
	return api.Delete(ctx, ec.c, employeeDocPath+"/"+documentID)
}
