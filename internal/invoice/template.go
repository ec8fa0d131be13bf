package invoice

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// Item is one invoice line
type Item struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Request is the payload the invoice service renders. It carries a
// consistent, already-committed order snapshot; the service itself holds
// no state and consults no database.
type Request struct {
	OrderID   string    `json:"order_id" binding:"required"`
	CreatedAt time.Time `json:"created_at" binding:"required"`
	Items     []Item    `json:"items" binding:"required,min=1"`
	Total     decimal.Decimal `json:"total" binding:"required"`
	Currency  string    `json:"currency"`
}

// Response carries the rendered document as base64-encoded PDF
type Response struct {
	PDFBase64 string `json:"pdf_base64"`
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.OrderID}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 22px; border-bottom: 2px solid #222; padding-bottom: 8px; }
  .meta { margin: 16px 0; font-size: 13px; color: #555; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th { text-align: left; font-size: 12px; text-transform: uppercase; color: #777;
       border-bottom: 1px solid #ccc; padding: 6px 4px; }
  td { padding: 8px 4px; border-bottom: 1px solid #eee; font-size: 13px; }
  td.num, th.num { text-align: right; }
  tr.total td { border-top: 2px solid #222; border-bottom: none;
                font-weight: bold; font-size: 15px; }
</style>
</head>
<body>
<h1>Invoice</h1>
<div class="meta">
  Order: {{.OrderID}}<br>
  Date: {{.CreatedAt.Format "02 Jan 2006 15:04"}}
</div>
<table>
  <tr>
    <th>Barcode</th><th>Product</th>
    <th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Amount</th>
  </tr>
  {{range .Items}}
  <tr>
    <td>{{.Barcode}}</td><td>{{.Name}}</td>
    <td class="num">{{.Quantity}}</td>
    <td class="num">{{.UnitPrice.StringFixed 2}}</td>
    <td class="num">{{.LineTotal.StringFixed 2}}</td>
  </tr>
  {{end}}
  <tr class="total">
    <td colspan="4">Total ({{.Currency}})</td>
    <td class="num">{{.Total.StringFixed 2}}</td>
  </tr>
</table>
</body>
</html>`))

// RenderHTML renders the invoice template for the given request
func RenderHTML(req *Request) (string, error) {
	if req.Currency == "" {
		req.Currency = "INR"
	}
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
