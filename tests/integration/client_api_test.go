// Package integration tests for the client (brand owner) API endpoints
// against a real database.
package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAPI_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)

	var createdID string

	t.Run("Create client", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/clients", map[string]interface{}{
			"name": "Acme Distributors",
		})
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		createdID = data["id"].(string)
		assert.NotEmpty(t, createdID)
		assert.Equal(t, "Acme Distributors", data["name"])
	})

	t.Run("Get client by ID", func(t *testing.T) {
		require.NotEmpty(t, createdID)

		w := ts.Request(http.MethodGet, "/api/v1/clients/"+createdID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, createdID, data["id"])
		assert.Equal(t, "Acme Distributors", data["name"])
	})

	t.Run("Duplicate name is rejected", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/clients", map[string]interface{}{
			"name": "Acme Distributors",
		})
		require.Equal(t, http.StatusConflict, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	})

	t.Run("Update client", func(t *testing.T) {
		w := ts.Request(http.MethodPut, "/api/v1/clients/"+createdID, map[string]interface{}{
			"name": "Acme Distributors Ltd",
		})
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Acme Distributors Ltd", data["name"])
	})

	t.Run("Rename onto another client is rejected", func(t *testing.T) {
		other := ts.CreateTestClient(t, "Bulk Traders")

		w := ts.Request(http.MethodPut, "/api/v1/clients/"+other, map[string]interface{}{
			"name": "Acme Distributors Ltd",
		})
		assert.Equal(t, http.StatusConflict, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("List clients with pagination meta", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/clients?page=1&page_size=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
		assert.Equal(t, 10, resp.Meta.PageSize)
		assert.Len(t, resp.Data.([]interface{}), 2)
	})

	t.Run("Delete client", func(t *testing.T) {
		w := ts.Request(http.MethodDelete, "/api/v1/clients/"+createdID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(http.MethodGet, "/api/v1/clients/"+createdID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClientAPI_Validation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)

	t.Run("missing name", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/clients", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank name", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/clients", map[string]interface{}{
			"name": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/clients/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/clients/00000000-0000-0000-0000-000000000001", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
