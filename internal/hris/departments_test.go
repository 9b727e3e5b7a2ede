package hris

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentManaged(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Department/GetManagedDepartments", r.URL.Path)
		fmt.Fprint(w, envelope([]map[string]any{
			{
				"id": "d1", "name": "Engineering", "companyId": "c1",
				"companyName": "Acme Corp", "employeeCount": 12,
				"hrManagers": []map[string]any{{"id": "e9", "name": "Ana Reyes", "email": "ana@co.com"}},
			},
			{"id": "d2", "name": "Finance", "companyId": "c1"},
		}))
	}))

	depts, err := NewDepartmentClient(client).Managed(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.Equal(t, 12, depts[0].EmployeeCount)
	require.Len(t, depts[0].HRManagers, 1)
	assert.Equal(t, "Ana Reyes", depts[0].HRManagers[0].Name)
	assert.Equal(t, 0, depts[1].EmployeeCount, "missing counts read as zero")
	assert.NotEmpty(t, depts[1].CreatedAt, "timestamps are always populated")
}

func TestDepartmentPayload_HeadEmployeeNull(t *testing.T) {
	raw, err := json.Marshal(buildDepartmentPayload(DepartmentInput{
		Name: "Engineering", CompanyID: "c1",
	}, ""))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "id")
	require.Contains(t, m, "headEmployeeId")
	assert.Nil(t, m["headEmployeeId"], "blank head is an explicit null, never an empty string")
	assert.Equal(t, "", m["description"], "description is sent even when blank")
}

func TestDepartmentUpdate_SendsIDInBody(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/Department", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, envelope(map[string]any{"id": "d1", "name": "Engineering", "companyId": "c1"}))
	}))

	_, err := NewDepartmentClient(client).Update(context.Background(), "d1", DepartmentInput{
		Name: "Engineering", CompanyID: "c1", HeadEmployeeID: "emp-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "d1", gotBody["id"])
	assert.Equal(t, "emp-1", gotBody["headEmployeeId"])
}

func TestAssignHRManagers(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/Department/hr-managers/assign", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		// The assign endpoint acknowledges with a null data payload.
		fmt.Fprint(w, `{"success":true,"message":"assigned","data":null}`)
	}))

	err := NewDepartmentClient(client).AssignHRManagers(context.Background(), "d1", []string{"e1", "e2"})
	require.NoError(t, err)
	assert.Equal(t, "d1", gotBody["departmentId"])
	assert.Equal(t, []any{"e1", "e2"}, gotBody["employeeIds"])
}

func TestDepartmentHRManagers(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/DepartmentHrManager/department/d1", r.URL.Path)
		fmt.Fprint(w, envelope([]map[string]any{
			{"id": "a1", "departmentId": "d1", "employeeId": "e1", "employeeName": "Ana Reyes"},
		}))
	}))

	rows, err := NewDepartmentClient(client).HRManagers(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Reyes", rows[0].EmployeeName)
}

func TestRemoveHRManager(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/DepartmentHrManager/a1", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"message":"removed","data":null}`)
	}))

	require.NoError(t, NewDepartmentClient(client).RemoveHRManager(context.Background(), "a1"))
}
