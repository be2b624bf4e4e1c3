// Package validation enforces the field and cross-field invariants of games
// and reviews before anything is written to storage. Checks run against the
// full candidate record, so partial updates must be merged first; every
// violation is reported, not just the first one found.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"gamecatalog/backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the full list of violations for one request.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + " " + fe.Message
	}
	return strings.Join(parts, "; ")
}

type gameCandidate struct {
	Name       string `json:"name" validate:"required"`
	Duration   int    `json:"duration" validate:"gte=0"`
	MinAge     *int   `json:"min_age" validate:"omitempty,gte=0"`
	MinPlayers int    `json:"min_players" validate:"gte=0"`
	MaxPlayers int    `json:"max_players" validate:"gte=0"`
}

// Whether game_id points at an existing game is referential integrity, not
// field validation; the storage lookup decides that and reports not-found.
type reviewCandidate struct {
	Rating int `json:"rating" validate:"gte=1,lte=5"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report the wire name instead of the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		g := sl.Current().Interface().(gameCandidate)
		if g.MaxPlayers < g.MinPlayers {
			sl.ReportError(g.MaxPlayers, "max_players", "MaxPlayers", "gteminplayers", "")
		}
	}, gameCandidate{})
}

// ValidateGame checks a fully merged game record against the create rules.
// Returns nil when the record is valid.
func ValidateGame(g *models.Game) Errors {
	return run(gameCandidate{
		Name:       g.Name,
		Duration:   g.Duration,
		MinAge:     g.MinAge,
		MinPlayers: g.MinPlayers,
		MaxPlayers: g.MaxPlayers,
	})
}

// ValidateReview checks a fully merged review record.
func ValidateReview(r *models.Review) Errors {
	return run(reviewCandidate{
		Rating: r.Rating,
	})
}

func run(candidate interface{}) Errors {
	err := validate.Struct(candidate)
	if err == nil {
		return nil
	}

	var errs Errors
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "gteminplayers":
		return "must be >= min_players"
	default:
		return "is invalid"
	}
}
