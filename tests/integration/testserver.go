package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/slippery-operator/pos-sub001/internal/application/catalog"
	inventoryapp "github.com/slippery-operator/pos-sub001/internal/application/inventory"
	invoiceapp "github.com/slippery-operator/pos-sub001/internal/application/invoice"
	orderapp "github.com/slippery-operator/pos-sub001/internal/application/order"
	partnerapp "github.com/slippery-operator/pos-sub001/internal/application/partner"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/auth"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/cache"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/config"
	"github.com/slippery-operator/pos-sub001/internal/infrastructure/persistence"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/handler"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/router"
	"github.com/slippery-operator/pos-sub001/internal/invoice"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Test operator credentials
const (
	testUsername = "operator"
	testPassword = "admin123"
)

// testPasswordHash is computed once; bcrypt is deliberately slow.
var testPasswordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

// stubRenderer is a deterministic stand-in for the Chrome-backed invoice
// renderer. Integration tests cover storage and the write-once rule, not
// PDF fidelity.
type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, req *invoice.Request) ([]byte, error) {
	return []byte("%PDF-1.4 stub invoice for order " + req.OrderID), nil
}

// TestServer wraps the test database and a fully wired HTTP server
type TestServer struct {
	DB     *TestDB
	Engine *gin.Engine
	Token  string
}

// NewTestServer builds the complete API stack against a fresh test database
// and logs in, so requests carry a valid session token by default.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	testDB := NewTestDB(t)
	log := zap.NewNop()

	// Repositories
	clientRepo := persistence.NewGormClientRepository(testDB.DB)
	productRepo := persistence.NewGormProductRepository(testDB.DB)
	recordRepo := persistence.NewGormRecordRepository(testDB.DB)
	orderRepo := persistence.NewGormOrderRepository(testDB.DB)
	txScope := persistence.NewGormTransactionScope(testDB.DB)

	// Services
	clientService := partnerapp.NewClientService(clientRepo)
	productService := catalogapp.NewProductService(productRepo, clientRepo, recordRepo)
	resolver := catalogapp.NewProductResolver(productRepo)
	inventoryService := inventoryapp.NewInventoryService(recordRepo, productRepo)
	orderService := orderapp.NewOrderService(
		resolver, productRepo, recordRepo, orderRepo, txScope,
		cache.NewInMemoryIdempotencyStore(), log)
	invoiceService := invoiceapp.NewInvoiceService(
		orderRepo, orderService, stubRenderer{}, t.TempDir(), log)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "integration-test-secret",
		Expiration: time.Hour,
		Issuer:     "pos-backoffice",
	})
	verifier := auth.NewCredentialVerifier(config.AuthConfig{
		Username:     testUsername,
		PasswordHash: testPasswordHash,
	})

	engine := router.Setup(router.Handlers{
		System:    handler.NewSystemHandler(&persistence.Database{DB: testDB.DB}),
		Auth:      handler.NewAuthHandler(verifier, jwtService),
		Client:    handler.NewClientHandler(clientService),
		Product:   handler.NewProductHandler(productService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Order:     handler.NewOrderHandler(orderService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
	}, jwtService, log)

	ts := &TestServer{DB: testDB, Engine: engine}
	ts.Token = ts.login(t)
	return ts
}

// login obtains a session token through the real login endpoint
func (ts *TestServer) login(t *testing.T) string {
	t.Helper()

	w := ts.request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": testUsername,
		"password": testPassword,
	}, "", nil)
	require.Equal(t, http.StatusOK, w.Code, "Login failed: %s", w.Body.String())

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token, "Login returned no token")
	return token
}

// Request makes an authenticated JSON request to the test server
func (ts *TestServer) Request(method, path string, body interface{}) *httptest.ResponseRecorder {
	return ts.request(method, path, body, ts.Token, nil)
}

// RequestWithHeaders makes an authenticated JSON request with extra headers
func (ts *TestServer) RequestWithHeaders(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	return ts.request(method, path, body, ts.Token, headers)
}

// RequestWithoutAuth makes a request with no Authorization header
func (ts *TestServer) RequestWithoutAuth(method, path string, body interface{}) *httptest.ResponseRecorder {
	return ts.request(method, path, body, "", nil)
}

func (ts *TestServer) request(method, path string, body interface{}, token string, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

// Upload posts a TSV file as a multipart form to an import endpoint
func (ts *TestServer) Upload(t *testing.T, path, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.Token)

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

// GormDB exposes the raw database handle for direct seeding
func (ts *TestServer) GormDB() *gorm.DB {
	return ts.DB.DB
}

// APIResponse represents the standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error,omitempty"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta,omitempty"`
}

// decodeResponse unmarshals the recorded body into an APIResponse
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Body: %s", w.Body.String())
	return resp
}

// CreateTestClient creates a client through the API and returns its ID
func (ts *TestServer) CreateTestClient(t *testing.T, name string) string {
	t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name": name,
	})
	require.Equal(t, http.StatusCreated, w.Code, "Create client failed: %s", w.Body.String())

	resp := decodeResponse(t, w)
	return resp.Data.(map[string]interface{})["id"].(string)
}

// CreateTestProduct creates a product through the API and returns its ID
func (ts *TestServer) CreateTestProduct(t *testing.T, clientID, barcode, name, mrp string) string {
	t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"barcode":   barcode,
		"client_id": clientID,
		"name":      name,
		"mrp":       mrp,
	})
	require.Equal(t, http.StatusCreated, w.Code, "Create product failed: %s", w.Body.String())

	resp := decodeResponse(t, w)
	return resp.Data.(map[string]interface{})["id"].(string)
}

// AddStock increments a product's stock through the API
func (ts *TestServer) AddStock(t *testing.T, productID string, quantity int64) {
	t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/inventory/"+productID+"/increment",
		map[string]interface{}{"quantity": quantity})
	require.Equal(t, http.StatusOK, w.Code, "Add stock failed: %s", w.Body.String())
}
