package invoice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the invoice rendering service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new invoice service client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Render sends the order snapshot to the invoice service and returns the
// decoded PDF bytes
func (c *Client) Render(ctx context.Context, req *Request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoice", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("invoice service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("invoice service returned %d: %s", resp.StatusCode, payload)
	}

	var rendered Response
	if err := json.NewDecoder(resp.Body).Decode(&rendered); err != nil {
		return nil, fmt.Errorf("failed to decode invoice response: %w", err)
	}

	pdf, err := base64.StdEncoding.DecodeString(rendered.PDFBase64)
	if err != nil {
		return nil, fmt.Errorf("invoice service returned invalid base64: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("invoice service returned an empty document")
	}
	return pdf, nil
}
