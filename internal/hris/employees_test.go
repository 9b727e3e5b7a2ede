package hris

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrctl-labs/hrctl/internal/api"
)

func envelope(data any) string {
	raw, _ := json.Marshal(map[string]any{
		"success": true,
		"message": "ok",
		"data":    data,
	})
	return string(raw)
}

func employeePage(totalCount int, items ...map[string]any) map[string]any {
	return map[string]any{
		"items":       items,
		"totalCount":  totalCount,
		"pageNumber":  1,
		"pageSize":    10,
		"totalPages":  (totalCount + 9) / 10,
		"hasPrevious": false,
		"hasNext":     totalCount > 10,
	}
}

func wireEmp(id, first, last string) map[string]any {
	return map[string]any{
		"id":               id,
		"userId":           "u-" + id,
		"firstName":        first,
		"lastName":         last,
		"email":            strings.ToLower(first) + "@co.com",
		"gender":           0,
		"civilStatus":      1,
		"employmentStatus": 1,
		"companyName":      "Acme Corp",
		"departmentName":   "Engineering",
		"jobTitleName":     "Engineer",
		"createdAt":        "2024-01-01T00:00:00Z",
		"updatedAt":        "2024-01-02T00:00:00Z",
	}
}

func TestEmployeeListPaginated(t *testing.T) {
	var gotQuery string
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Employee", r.URL.Path)
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, envelope(employeePage(23, wireEmp("1", "Juan", "Dela Cruz"), wireEmp("2", "Ana", "Reyes"))))
	}))
	ec := NewEmployeeClient(client)

	page, err := ec.ListPaginated(context.Background(), ListParams{PageNumber: 1, PageSize: 10, Search: " cruz "})
	require.NoError(t, err)

	assert.Equal(t, "pageNumber=1&pageSize=10&search=cruz", gotQuery)
	assert.Equal(t, 23, page.TotalCount)
	assert.True(t, page.HasNext)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Juan", page.Items[0].FirstName)
	assert.Equal(t, GenderMale, page.Items[0].Gender)
	assert.Equal(t, CivilMarried, page.Items[0].CivilStatus)
	assert.Equal(t, EmploymentRegular, page.Items[0].EmploymentStatus)
	assert.Equal(t, "Acme Corp", page.Items[0].CompanyName)

	// The reported total stays stable across consecutive identical calls.
	again, err := ec.ListPaginated(context.Background(), ListParams{PageNumber: 1, PageSize: 10, Search: " cruz "})
	require.NoError(t, err)
	assert.Equal(t, page.TotalCount, again.TotalCount)
}

func TestEmployeeList_FetchesOneLargePage(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("pageNumber"))
		assert.Equal(t, "1000", r.URL.Query().Get("pageSize"))
		assert.Empty(t, r.URL.Query().Get("search"))
		fmt.Fprint(w, envelope(employeePage(1, wireEmp("1", "Juan", "Dela Cruz"))))
	}))

	emps, err := NewEmployeeClient(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, emps, 1)
}

func TestEmployeeGetByID_NotFoundIsNil(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	emp, err := NewEmployeeClient(client).GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, emp)
}

func TestEmployeeGetByID_Found(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Employee/emp-1", r.URL.Path)
		fmt.Fprint(w, envelope(wireEmp("emp-1", "Juan", "Dela Cruz")))
	}))

	emp, err := NewEmployeeClient(client).GetByID(context.Background(), "emp-1")
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.Equal(t, "emp-1", emp.ID)
}

func TestEmployeeUpdate_SendsIDInBody(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/Employee", r.URL.Path, "the id travels in the body, not the path")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, envelope(wireEmp("emp-1", "Juan", "Dela Cruz")))
	}))

	in := EmployeeInput{
		UserID: "u1", FirstName: "Juan", LastName: "Dela Cruz",
		Email: "juan@co.com", BirthDate: "1990-05-15",
		Gender: GenderMale, CivilStatus: CivilMarried,
		PhoneNumber: "123", Address: "Makati",
		EmployeeNumber: "EMP001", DateHired: "2023-01-15",
		CompanyID: "c1", DepartmentID: "d1", JobTitleID: "j1",
		EmploymentStatus: EmploymentRegular,
	}
	_, err := NewEmployeeClient(client).Update(context.Background(), "emp-1", in)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", gotBody["Id"])
	assert.Equal(t, float64(0), gotBody["Gender"])
	assert.Equal(t, "2023-01-15T00:00:00Z", gotBody["DateHired"])
}

func TestEmployeeDelete(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/Employee/emp-1", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"message":"deleted","data":null}`)
	}))

	require.NoError(t, NewEmployeeClient(client).Delete(context.Background(), "emp-1"))
}

func TestUploadDocument_MultipartFields(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Government ID", r.FormValue("DocumentName"))
		assert.Equal(t, "Identification", r.FormValue("DocumentType"))
		assert.Equal(t, "front and back", r.FormValue("DocumentDescription"))
		assert.Equal(t, "emp-1", r.FormValue("EmployeeId"))

		file, header, err := r.FormFile("Document")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "id.pdf", header.Filename)

		fmt.Fprint(w, envelope(map[string]any{
			"id": "doc-1", "documentName": "Government ID", "employeeId": "emp-1",
		}))
	}))

	doc, err := NewEmployeeClient(client).UploadDocument(context.Background(), DocumentUpload{
		DocumentName:        "Government ID",
		DocumentType:        "Identification",
		DocumentDescription: "front and back",
		FileName:            "id.pdf",
		Content:             strings.NewReader("%PDF-1.4 fake"),
		EmployeeID:          "emp-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
}

func TestUploadDocument_RejectsIncompleteInput(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent for invalid input")
	}))

	_, err := NewEmployeeClient(client).UploadDocument(context.Background(), DocumentUpload{
		DocumentName: "Government ID",
	})
	var valErr *api.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestEmployeeDocuments(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/EmployeeDoc/employee/emp-1", r.URL.Path)
		fmt.Fprint(w, envelope([]map[string]any{
			{"id": "doc-1", "documentName": "Government ID"},
			{"id": "doc-2", "documentName": "Contract"},
		}))
	}))

	docs, err := NewEmployeeClient(client).Documents(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Contract", docs[1].DocumentName)
}
