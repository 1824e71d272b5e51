package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUser_AndGet(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/users", map[string]any{
		"nickname": "Pastor Mike",
		"email":    "mike@gracechapel.example",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResult(t, rec)
	require.Equal(t, "Leader", created["role"])
	require.Equal(t, "active", created["status"])

	id := created["userId"].(string)
	rec = api.do(t, http.MethodGet, "/api/v1/users/"+id, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Pastor Mike", decodeResult(t, rec)["nickname"])
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/users", map[string]any{
		"email": "mike@gracechapel.example",
		"role":  "Superuser",
	}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers_RoleFilter(t *testing.T) {
	api := newTestAPI(t)

	for _, u := range []map[string]any{
		{"nickname": "Pastor Mike", "email": "mike@gracechapel.example", "role": "Leader"},
		{"nickname": "Admin Abena", "email": "abena@gracechapel.example", "role": "MinistryAdmin"},
	} {
		rec := api.do(t, http.MethodPost, "/api/v1/users", u, true)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := api.do(t, http.MethodGet, "/api/v1/users?role=Leader", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeResult(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, "Pastor Mike", items[0].(map[string]any)["nickname"])
}
