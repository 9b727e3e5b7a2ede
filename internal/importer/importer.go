// Package importer loads employee records in bulk from a YAML or JSON file.
// Files are schema-checked before anything is sent, so a malformed file never
// results in a half-applied import of well-formed leading records followed by
// a string of backend rejections.
package importer

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hrctl-labs/hrctl/internal/hris"
)

//go:embed schema/employee-import.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single schema violation found in an import file.
type Issue struct {
	Path    string
	Message string
	Keyword string
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	return path + ": " + i.Message
}

// File is the parsed shape of an import file. Records carrying an ID are
// updates; the rest are creates.
type File struct {
	Employees []Record `yaml:"employees" json:"employees"`
}

// Record is one employee entry in an import file.
type Record struct {
	ID               string `yaml:"id" json:"id"`
	UserID           string `yaml:"userId" json:"userId"`
	FirstName        string `yaml:"firstName" json:"firstName"`
	LastName         string `yaml:"lastName" json:"lastName"`
	MiddleName       string `yaml:"middleName" json:"middleName"`
	Email            string `yaml:"email" json:"email"`
	BirthDate        string `yaml:"birthDate" json:"birthDate"`
	Gender           string `yaml:"gender" json:"gender"`
	CivilStatus      string `yaml:"civilStatus" json:"civilStatus"`
	PhoneNumber      string `yaml:"phoneNumber" json:"phoneNumber"`
	Address          string `yaml:"address" json:"address"`
	SSSNumber        string `yaml:"sssNumber" json:"sssNumber"`
	PhilHealthNumber string `yaml:"philHealthNumber" json:"philHealthNumber"`
	PagIbigNumber    string `yaml:"pagIbigNumber" json:"pagIbigNumber"`
	TIN              string `yaml:"tin" json:"tin"`
	EmployeeNumber   string `yaml:"employeeNumber" json:"employeeNumber"`
	DateHired        string `yaml:"dateHired" json:"dateHired"`
	CompanyID        string `yaml:"companyId" json:"companyId"`
	DepartmentID     string `yaml:"departmentId" json:"departmentId"`
	JobTitleID       string `yaml:"jobTitleId" json:"jobTitleId"`
	EmploymentStatus string `yaml:"employmentStatus" json:"employmentStatus"`
}

// Input converts the record to the write shape the employee client takes.
func (r Record) Input() hris.EmployeeInput {
	return hris.EmployeeInput{
		UserID:           r.UserID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		MiddleName:       r.MiddleName,
		Email:            r.Email,
		BirthDate:        r.BirthDate,
		Gender:           hris.Gender(r.Gender),
		CivilStatus:      hris.CivilStatus(r.CivilStatus),
		PhoneNumber:      r.PhoneNumber,
		Address:          r.Address,
		SSSNumber:        r.SSSNumber,
		PhilHealthNumber: r.PhilHealthNumber,
		PagIbigNumber:    r.PagIbigNumber,
		TIN:              r.TIN,
		EmployeeNumber:   r.EmployeeNumber,
		DateHired:        r.DateHired,
		CompanyID:        r.CompanyID,
		DepartmentID:     r.DepartmentID,
		JobTitleID:       r.JobTitleID,
		EmploymentStatus: hris.EmploymentStatus(r.EmploymentStatus),
	}
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("employee-import.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("employee-import.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Parse decodes and schema-checks an import file. YAML is the primary format;
// because JSON is valid YAML, .json files decode on the same path. A non-nil
// issue slice with a nil error means the file parsed but failed validation.
func Parse(data []byte) (*File, []Issue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parsing import file: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		return nil, extractIssues(validationErr), nil
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("decoding import file: %w", err)
	}
	return &f, nil, nil
}

// extractIssues walks the error tree and returns leaf-level issues with
// specific property information, deduplicated.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return dedupeIssues(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}
		// Container keywords carry no property-level detail.
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

func dedupeIssues(issues []Issue) []Issue {
	seen := make(map[string]bool)
	var result []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// Outcome is what happened to one record during Apply.
type Outcome struct {
	Index          int
	EmployeeNumber string
	Created        bool
	Updated        bool
	Err            error
}

// Report summarizes an Apply run.
type Report struct {
	Outcomes []Outcome
	Created  int
	Updated  int
	Failed   int
}

// Apply pushes each record to the backend in file order, records with an id
// as updates and the rest as creates. One rejected record does not stop the
// run; the report carries every per-record outcome.
func Apply(ctx context.Context, ec *hris.EmployeeClient, f *File) *Report {
	report := &Report{}
	for i, rec := range f.Employees {
		out := Outcome{Index: i, EmployeeNumber: rec.EmployeeNumber}
		if rec.ID != "" {
			_, err := ec.Update(ctx, rec.ID, rec.Input())
			out.Updated = err == nil
			out.Err = err
		} else {
			_, err := ec.Create(ctx, rec.Input())
			out.Created = err == nil
			out.Err = err
		}
		switch {
		case out.Err != nil:
			report.Failed++
		case out.Updated:
			report.Updated++
		default:
			report.Created++
		}
		report.Outcomes = append(report.Outcomes, out)
	}
	return report
}
