package hris

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrctl-labs/hrctl/internal/api"
)

func TestUserCreate(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/User", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, envelope(map[string]any{
			"id": "u2", "userName": "areyes", "email": "ana@co.com", "employeeId": "e1",
		}))
	}))

	u, err := NewUserClient(client).Create(context.Background(), UserInput{
		UserName: "areyes", Email: "ana@co.com", Password: "hunter22", EmployeeID: "e1",
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", u.ID)
	assert.Equal(t, "hunter22", gotBody["password"])
	assert.Equal(t, "e1", gotBody["employeeId"])
}

func TestUserUpdate_SendsIDInPath(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/User/u2", r.URL.Path, "user updates address the record by path, unlike employees")
		fmt.Fprint(w, envelope(map[string]any{"id": "u2", "userName": "areyes"}))
	}))

	_, err := NewUserClient(client).Update(context.Background(), "u2", UserInput{
		UserName: "areyes", Email: "ana@co.com", Password: "hunter22", EmployeeID: "e1",
	})
	require.NoError(t, err)
}

func TestUserListPaginated(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(map[string]any{
			"items": []map[string]any{
				{"id": "u1", "userName": "jcruz", "middleName": nil},
			},
			"totalCount": 1, "pageNumber": 1, "pageSize": 10, "totalPages": 1,
		}))
	}))

	page, err := NewUserClient(client).ListPaginated(context.Background(), ListParams{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "", page.Items[0].MiddleName)
}

func TestUserInputValidate(t *testing.T) {
	err := UserInput{UserName: "areyes", Email: "bad"}.Validate()
	require.Error(t, err)
	assert.NoError(t, UserInput{
		UserName: "areyes", Email: "ana@co.com", Password: "hunter22", EmployeeID: "e1",
	}.Validate())
	assert.NoError(t, UserInput{
		UserName: "areyes", Email: "ana@co.com", EmployeeID: "e1",
	}.Validate(), "password is optional at the struct level; Create enforces it")
}

func TestUserCreate_RequiresPassword(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be sent without a password")
	}))

	_, err := NewUserClient(client).Create(context.Background(), UserInput{
		UserName: "areyes", Email: "ana@co.com", EmployeeID: "e1",
	})
	var valErr *api.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestUserUpdate_BlankPasswordOmitted(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, envelope(map[string]any{"id": "u2", "userName": "areyes"}))
	}))

	_, err := NewUserClient(client).Update(context.Background(), "u2", UserInput{
		UserName: "areyes", Email: "ana@co.com", EmployeeID: "e1",
	})
	require.NoError(t, err)
	assert.NotContains(t, gotBody, "password")
}
