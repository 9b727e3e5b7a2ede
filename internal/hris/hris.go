// Package hris holds the domain model and the six resource clients
// (employees, departments, companies, job titles, users, dashboard). Each
// client translates between the backend's wire shapes (enumerations as small
// integers, PascalCase write payloads, paginated envelopes) and the domain
// types the rest of the program works with.
package hris

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hrctl-labs/hrctl/internal/api"
)

// fetchAllPageSize emulates "fetch all" on endpoints that only paginate.
const fetchAllPageSize = 1000

var (
	validate   = validator.New(validator.WithRequiredStructEnabled())
	fieldCaser = cases.Title(language.English)
)

// Page is the pagination envelope shared by every list endpoint.
// len(Items) never exceeds PageSize; HasPrevious/HasNext mirror the
// 1-based PageNumber against TotalPages.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	PageNumber  int
	PageSize    int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

type wirePage[T any] struct {
	Items       []T  `json:"items"`
	TotalCount  int  `json:"totalCount"`
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

func mapPage[W, D any](w *wirePage[W], mapItem func(W) D) *Page[D] {
	items := make([]D, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, mapItem(it))
	}
	return &Page[D]{
		Items:       items,
		TotalCount:  w.TotalCount,
		PageNumber:  w.PageNumber,
		PageSize:    w.PageSize,
		TotalPages:  w.TotalPages,
		HasPrevious: w.HasPrevious,
		HasNext:     w.HasNext,
	}
}

// ListParams are the shared pagination/search query parameters. PageNumber
// is 1-based. A blank or whitespace-only Search is omitted from the query
// entirely, so "no filter" never turns into "filter on empty string".
type ListParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.PageNumber > 0 {
		q.Set("pageNumber", strconv.Itoa(p.PageNumber))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

// optionalString trims a value and returns nil when nothing remains, so
// blank optionals are omitted from write payloads instead of being sent as
// empty strings.
func optionalString(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// orString returns s, or fallback when s is empty.
func orString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// nowRFC3339 is the fallback timestamp mappers use when the backend omits
// createdAt/updatedAt; domain timestamps are always populated.
func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// normalizeDate upgrades a date-only string to RFC3339; values that already
// carry a time component, or fail to parse, pass through unchanged.
func normalizeDate(value string) string {
	if value == "" || strings.Contains(value, "T") {
		return value
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return parsed.UTC().Format(time.RFC3339)
}

// validateInput runs the struct tags and converts failures into the same
// *api.ValidationError shape backend validation produces, so the caller
// renders local and remote field errors identically.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]api.FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, api.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return &api.ValidationError{Message: "Validation failed", Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldCaser.String(strings.ReplaceAll(fe.Field(), "_", " "))
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "oneof":
		return name + " must be one of: " + fe.Param()
	default:
		return name + " is invalid"
	}
}
