package dto

import (
	"net/http"

	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
)

// HTTP-layer error codes that have no domain counterpart
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Insufficient stock is a business rule rejection of a well-formed
// request, hence 422 rather than 400.
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:        http.StatusBadRequest,
	shared.CodeNotFound:          http.StatusNotFound,
	shared.CodeAlreadyExists:     http.StatusConflict,
	shared.CodeConflict:          http.StatusConflict,
	shared.CodeInsufficientStock: http.StatusUnprocessableEntity,
	shared.CodeInternal:          http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
