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

func TestCompanyList(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Company", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery, "the company list is not paginated")
		fmt.Fprint(w, envelope([]map[string]any{
			{"id": "c1", "name": "Acme Corp", "createdAt": "2024-01-01T00:00:00Z"},
			{"id": "c2", "name": "Globex"},
		}))
	}))

	companies, err := NewCompanyClient(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "2024-01-01T00:00:00Z", companies[0].CreatedAt)
	assert.NotEmpty(t, companies[1].CreatedAt, "missing timestamps fall back to now")
}

func TestCompanyGetByID_NotFoundIsNil(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	company, err := NewCompanyClient(client).GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, company)
}

func TestCompanyCreate_SendsBlankOptionalsAsEmpty(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, envelope(map[string]any{"id": "c1", "name": "Acme Corp"}))
	}))

	company, err := NewCompanyClient(client).Create(context.Background(), CompanyInput{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, "c1", company.ID)

	assert.NotContains(t, gotBody, "id")
	assert.Equal(t, "", gotBody["description"], "blank optionals travel as empty strings here")
	assert.Equal(t, "", gotBody["contactEmail"])
}

func TestCompanyUpdate_SendsIDInBody(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/Company", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, envelope(map[string]any{"id": "c1", "name": "Acme Corporation"}))
	}))

	_, err := NewCompanyClient(client).Update(context.Background(), "c1", CompanyInput{Name: "Acme Corporation"})
	require.NoError(t, err)
	assert.Equal(t, "c1", gotBody["id"])
}

func TestCompanyInputValidate(t *testing.T) {
	assert.Error(t, CompanyInput{}.Validate())
	assert.Error(t, CompanyInput{Name: "Acme", ContactEmail: "nope"}.Validate())
	assert.NoError(t, CompanyInput{Name: "Acme"}.Validate(), "contact email is optional")
	assert.NoError(t, CompanyInput{Name: "Acme", ContactEmail: "hr@acme.com"}.Validate())
}
