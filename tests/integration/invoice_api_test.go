// Package integration tests for the invoice endpoints: generation stores
// the rendered document once, regeneration serves the stored bytes.
package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T, ts *TestServer) string {
	t.Helper()

	clientID := ts.CreateTestClient(t, "Acme Distributors")
	productID := ts.CreateTestProduct(t, clientID, "8901001", "Soap Bar", "40.00")
	ts.AddStock(t, productID, 10)

	w := ts.Request(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			orderLine("8901001", 2, "38.50"),
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, "Body: %s", w.Body.String())
	return decodeOrderView(t, w).ID
}

func TestInvoiceAPI_GenerateAndServe(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)
	orderID := createTestOrder(t, ts)

	t.Run("Get before generation is not found", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/orders/"+orderID+"/invoice", nil)
		require.Equal(t, http.StatusNotFound, w.Code, "Body: %s", w.Body.String())
	})

	var firstPDF []byte

	t.Run("Generate renders and stores the document", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/orders/"+orderID+"/invoice", nil)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())

		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), orderID)

		firstPDF = w.Body.Bytes()
		assert.Contains(t, string(firstPDF), "%PDF")
		assert.Contains(t, string(firstPDF), orderID)
	})

	t.Run("Regeneration serves the stored document", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/orders/"+orderID+"/invoice", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, firstPDF, w.Body.Bytes())
	})

	t.Run("Get serves the stored document", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/orders/"+orderID+"/invoice", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, firstPDF, w.Body.Bytes())
	})

	t.Run("Generate for unknown order", func(t *testing.T) {
		w := ts.Request(http.MethodPost,
			"/api/v1/orders/00000000-0000-0000-0000-000000000001/invoice", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
