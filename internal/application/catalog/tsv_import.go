package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slippery-operator/pos-sub001/internal/domain/catalog"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared/valueobject"
)

// RowError reports a single failed row in a bulk upload. Row numbers are
// 1-based and count the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk upload
type ImportResult struct {
	TotalRows int        `json:"total_rows"`
	Imported  int        `json:"imported"`
	Errors    []RowError `json:"errors,omitempty"`
}

// productImportColumns is the expected TSV header
var productImportColumns = []string{"barcode", "client_id", "name", "mrp", "image_url"}

// ImportTSV bulk-creates products from a tab-separated stream with a header
// row. The upload is all-or-nothing: every row is validated first and any
// failure aborts the import with the complete error list, so the operator
// fixes one file instead of untangling a half-applied upload.
func (s *ProductService) ImportTSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Upload is empty or unreadable")
	}
	if err := checkHeader(header, productImportColumns); err != nil {
		return nil, err
	}

	type parsedRow struct {
		row     int
		barcode string
		client  uuid.UUID
		name    string
		mrp     decimal.Decimal
		image   string
	}

	var rows []parsedRow
	var rowErrors []RowError
	seenBarcodes := make(map[string]int)
	rowNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Malformed row"})
			continue
		}
		if len(record) < 4 {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Expected at least 4 columns"})
			continue
		}

		barcode := strings.TrimSpace(record[0])
		if barcode == "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Barcode cannot be empty"})
			continue
		}
		if prev, dup := seenBarcodes[barcode]; dup {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: fmt.Sprintf("Duplicate barcode, first seen on row %d", prev)})
			continue
		}
		seenBarcodes[barcode] = rowNum

		clientID, err := uuid.Parse(strings.TrimSpace(record[1]))
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Invalid client id"})
			continue
		}

		name := strings.TrimSpace(record[2])
		if name == "" || len(name) > 200 {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Name must be 1-200 characters"})
			continue
		}

		mrp, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil || !mrp.IsPositive() {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "MRP must be a positive decimal"})
			continue
		}

		image := ""
		if len(record) > 4 {
			image = strings.TrimSpace(record[4])
		}

		rows = append(rows, parsedRow{
			row:     rowNum,
			barcode: barcode,
			client:  clientID,
			name:    name,
			mrp:     mrp,
			image:   image,
		})
	}

	result := &ImportResult{TotalRows: rowNum - 1}

	// Check the whole batch against existing barcodes in one query
	if len(rows) > 0 {
		barcodes := make([]string, len(rows))
		for i, row := range rows {
			barcodes[i] = row.barcode
		}
		existing, err := s.productRepo.FindByBarcodes(ctx, barcodes)
		if err != nil {
			return nil, err
		}
		taken := make(map[string]bool, len(existing))
		for i := range existing {
			taken[existing[i].Barcode] = true
		}
		kept := rows[:0]
		for _, row := range rows {
			if taken[row.barcode] {
				rowErrors = append(rowErrors, RowError{Row: row.row, Message: "Product with this barcode already exists"})
				continue
			}
			kept = append(kept, row)
		}
		rows = kept
	}

	if len(rowErrors) > 0 {
		result.Errors = rowErrors
		return result, shared.NewDomainError(shared.CodeValidation, "Upload rejected, no rows imported")
	}

	for _, row := range rows {
		product, err := catalog.NewProduct(row.barcode, row.client, row.name, valueobject.NewMoneyINR(row.mrp))
		if err != nil {
			return nil, err
		}
		if row.image != "" {
			product.SetImageURL(row.image)
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		if err := s.inventoryRepo.EnsureExists(ctx, product.ID); err != nil {
			return nil, err
		}
		result.Imported++
	}

	return result, nil
}

func checkHeader(header, expected []string) error {
	if len(header) < len(expected)-1 {
		return shared.NewDomainError(shared.CodeValidation,
			"Unexpected header, want: "+strings.Join(expected, "\t"))
	}
	for i := range header {
		if i >= len(expected) {
			break
		}
		if !strings.EqualFold(strings.TrimSpace(header[i]), expected[i]) {
			return shared.NewDomainError(shared.CodeValidation,
				"Unexpected header, want: "+strings.Join(expected, "\t"))
		}
	}
	return nil
}
