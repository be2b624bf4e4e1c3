package handler

import (
	"strconv"

	"gamecatalog/backend/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// listParams is the offset/limit window shared by every listing endpoint.
type listParams struct {
	Offset int
	Limit  int
}

// parseListParams validates the offset and limit query parameters. Out of
// range or non-numeric values are reported as violations rather than being
// clamped, so callers get the same 422 contract as body validation.
func parseListParams(c *gin.Context) (listParams, validation.Errors) {
	params := listParams{Offset: 0, Limit: defaultLimit}
	var errs validation.Errors

	if raw, ok := c.GetQuery("offset"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs = append(errs, validation.FieldError{Field: "offset", Message: "must be an integer >= 0"})
		} else {
			params.Offset = v
		}
	}

	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxLimit {
			errs = append(errs, validation.FieldError{Field: "limit", Message: "must be an integer between 1 and 100"})
		} else {
			params.Limit = v
		}
	}

	return params, errs
}

// queryFloat parses an optional float query parameter constrained to
// [min, max]. Returns nil when the parameter is absent; records a violation
// when it is present but unusable.
func queryFloat(c *gin.Context, key string, min, max float64, errs *validation.Errors) *float64 {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < min || v > max {
		*errs = append(*errs, validation.FieldError{Field: key, Message: "must be a number between 0 and 5"})
		return nil
	}
	return &v
}

// queryID parses an optional positive integer query parameter.
func queryID(c *gin.Context, key string, errs *validation.Errors) *uint {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v < 1 {
		*errs = append(*errs, validation.FieldError{Field: key, Message: "must be a positive integer"})
		return nil
	}
	id := uint(v)
	return &id
}
