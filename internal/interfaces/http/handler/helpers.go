package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slippery-operator/pos-sub001/internal/domain/shared"
	"github.com/slippery-operator/pos-sub001/internal/interfaces/http/dto"
)

// openUpload fetches the "file" form field of a multipart upload,
// enforcing the size cap
func openUpload(c *gin.Context) (multipart.File, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("missing file upload field")
	}
	if header.Size > maxUploadBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)
	}
	return header.Open()
}

// respondImportFailure sends a rejected bulk upload. The row-level error
// report rides along in the data field so the operator sees every bad
// row, not just the rejection.
func respondImportFailure(c *gin.Context, result any, err error) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(shared.CodeInternal, "An unexpected error occurred"))
		return
	}

	resp := dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, domainErr.Details)
	if result != nil {
		resp.Data = result
	}
	c.JSON(dto.GetHTTPStatus(domainErr.Code), resp)
}
