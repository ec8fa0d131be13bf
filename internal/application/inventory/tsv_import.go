package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// RowError reports a single failed row in a bulk upload. Row numbers are
// 1-based and count the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk restock upload
type ImportResult struct {
	TotalRows int        `json:"total_rows"`
	Imported  int        `json:"imported"`
	Errors    []RowError `json:"errors,omitempty"`
}

// ImportTSV bulk-increments stock from a tab-separated stream with a
// "barcode<TAB>quantity" header. Rows are validated first; any failure
// aborts the upload with the complete error list and no stock is touched.
func (s *InventoryService) ImportTSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Upload is empty or unreadable")
	}
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "barcode") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "quantity") {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unexpected header, want: barcode\tquantity")
	}

	type parsedRow struct {
		row     int
		barcode string
		qty     int64
	}

	var rows []parsedRow
	var rowErrors []RowError
	seen := make(map[string]int)
	rowNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil || len(record) < 2 {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Malformed row"})
			continue
		}

		barcode := strings.TrimSpace(record[0])
		if barcode == "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Barcode cannot be empty"})
			continue
		}
		if prev, dup := seen[barcode]; dup {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: fmt.Sprintf("Duplicate barcode, first seen on row %d", prev)})
			continue
		}
		seen[barcode] = rowNum

		qty, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil || qty <= 0 {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Quantity must be a positive integer"})
			continue
		}

		rows = append(rows, parsedRow{row: rowNum, barcode: barcode, qty: qty})
	}

	result := &ImportResult{TotalRows: rowNum - 1}

	// Resolve the whole batch in one query; unknown barcodes become row errors
	idByBarcode := make(map[string]uuid.UUID)
	if len(rows) > 0 {
		barcodes := make([]string, len(rows))
		for i, row := range rows {
			barcodes[i] = row.barcode
		}
		products, err := s.productRepo.FindByBarcodes(ctx, barcodes)
		if err != nil {
			return nil, err
		}
		for i := range products {
			idByBarcode[products[i].Barcode] = products[i].ID
		}
		for _, row := range rows {
			if _, ok := idByBarcode[row.barcode]; !ok {
				rowErrors = append(rowErrors, RowError{Row: row.row, Message: "Unknown barcode"})
			}
		}
	}

	if len(rowErrors) > 0 {
		result.Errors = rowErrors
		return result, shared.NewDomainError(shared.CodeValidation, "Upload rejected, no rows imported")
	}

	for _, row := range rows {
		productID := idByBarcode[row.barcode]
		if err := s.recordRepo.EnsureExists(ctx, productID); err != nil {
			return nil, err
		}
		if err := s.recordRepo.AdjustQuantity(ctx, productID, row.qty); err != nil {
			return nil, err
		}
		result.Imported++
	}

	return result, nil
}
