// Package integration tests for the product catalog API endpoints against a
// real database, including the bulk TSV import.
package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductAPI_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)
	clientID := ts.CreateTestClient(t, "Acme Distributors")

	var createdID string

	t.Run("Create product", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/products", map[string]interface{}{
			"barcode":   "8901001",
			"client_id": clientID,
			"name":      "Soap Bar",
			"mrp":       "40.00",
		})
		require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		createdID = data["id"].(string)
		assert.NotEmpty(t, createdID)
		assert.Equal(t, "8901001", data["barcode"])
		assert.Equal(t, clientID, data["client_id"])
	})

	t.Run("Creation provisions a zero-quantity inventory record", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/inventory/"+createdID, nil)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(0), data["quantity"])
	})

	t.Run("Duplicate barcode is rejected", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/products", map[string]interface{}{
			"barcode":   "8901001",
			"client_id": clientID,
			"name":      "Another Soap",
			"mrp":       "45.00",
		})
		require.Equal(t, http.StatusConflict, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("Unknown client is rejected", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/products", map[string]interface{}{
			"barcode":   "8901002",
			"client_id": "00000000-0000-0000-0000-000000000001",
			"name":      "Orphan Product",
			"mrp":       "10.00",
		})
		assert.Equal(t, http.StatusNotFound, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("Get product by barcode", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/products/barcode/8901001", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, createdID, data["id"])
		assert.Equal(t, "Soap Bar", data["name"])
	})

	t.Run("Update product", func(t *testing.T) {
		w := ts.Request(http.MethodPut, "/api/v1/products/"+createdID, map[string]interface{}{
			"name": "Soap Bar Premium",
			"mrp":  "45.00",
		})
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Soap Bar Premium", data["name"])
		// The barcode never changes on update
		assert.Equal(t, "8901001", data["barcode"])
	})

	t.Run("Set product image", func(t *testing.T) {
		w := ts.Request(http.MethodPut, "/api/v1/products/"+createdID+"/image", map[string]interface{}{
			"image_url": "https://img.example.com/soap.jpg",
		})
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "https://img.example.com/soap.jpg", data["image_url"])
	})

	t.Run("List products filtered by client", func(t *testing.T) {
		other := ts.CreateTestClient(t, "Bulk Traders")
		ts.CreateTestProduct(t, other, "8902001", "Tea 250g", "155.00")

		w := ts.Request(http.MethodGet, "/api/v1/products?client_id="+clientID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)

		items := resp.Data.([]interface{})
		require.Len(t, items, 1)
		assert.Equal(t, createdID, items[0].(map[string]interface{})["id"])
	})

	t.Run("Delete product", func(t *testing.T) {
		w := ts.Request(http.MethodDelete, "/api/v1/products/"+createdID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(http.MethodGet, "/api/v1/products/"+createdID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductAPI_ImportTSV(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)
	clientID := ts.CreateTestClient(t, "Acme Distributors")

	t.Run("valid file imports every row", func(t *testing.T) {
		content := "barcode\tclient_id\tname\tmrp\timage_url\n" +
			"8901001\t" + clientID + "\tSoap Bar\t40.00\t\n" +
			"8901002\t" + clientID + "\tTea 250g\t155.00\thttps://img.example.com/tea.jpg\n"

		w := ts.Upload(t, "/api/v1/products/import", "products.tsv", content)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(2), data["total_rows"])
		assert.Equal(t, float64(2), data["imported"])

		w = ts.Request(http.MethodGet, "/api/v1/products/barcode/8901002", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("any bad row aborts the whole upload", func(t *testing.T) {
		content := "barcode\tclient_id\tname\tmrp\timage_url\n" +
			"8901003\t" + clientID + "\tValid Row\t25.00\t\n" +
			"8901001\t" + clientID + "\tDuplicate Barcode\t30.00\t\n" +
			"\t" + clientID + "\tMissing Barcode\t30.00\t\n"

		w := ts.Upload(t, "/api/v1/products/import", "products.tsv", content)
		require.Equal(t, http.StatusBadRequest, w.Code, "Body: %s", w.Body.String())

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION", resp.Error.Code)

		// The row-error report rides along with the error envelope
		require.NotNil(t, resp.Data)
		report := resp.Data.(map[string]interface{})
		assert.Len(t, report["errors"].([]interface{}), 2)

		// The valid row was not applied either
		w = ts.Request(http.MethodGet, "/api/v1/products/barcode/8901003", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong header is rejected", func(t *testing.T) {
		w := ts.Upload(t, "/api/v1/products/import", "products.tsv", "sku\tname\n123\tX\n")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
