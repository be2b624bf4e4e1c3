package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"gamecatalog/backend/internal/validation"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// ValidationErrorResponse carries the full list of field violations so a
// client can fix every problem from one failed request.
type ValidationErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

// DeleteResponse acknowledges a successful delete.
type DeleteResponse struct {
	OK bool `json:"ok" example:"true"`
}

func respondValidation(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs})
}

// mergeViolations appends entries from errs whose field is not already
// reported in base, so a missing field is not also flagged as out of range.
func mergeViolations(base, errs validation.Errors) validation.Errors {
	seen := make(map[string]bool, len(base))
	for _, fe := range base {
		seen[fe.Field] = true
	}
	for _, fe := range errs {
		if !seen[fe.Field] {
			base = append(base, fe)
		}
	}
	return base
}

// bindError turns a JSON binding failure into a field violation. Type
// mismatches name the offending field; anything else is reported on the body.
func bindError(err error) validation.Errors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validation.Errors{{Field: typeErr.Field, Message: "is invalid"}}
	}
	return validation.Errors{{Field: "body", Message: "is not valid JSON"}}
}
