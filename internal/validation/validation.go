package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single violated constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (f FieldError) Error() string {
	return fmt.Sprintf("field '%s': %s", f.Field, f.Message)
}

// FieldErrors is the full set of violations for one request body. Every
// violated field is reported, not just the first.
type FieldErrors []FieldError

// Validation wraps a validator.Validate instance so handlers never see the
// library's error types directly.
type Validation struct {
	validate *validator.Validate
}

// New creates a Validation using JSON tag names for field paths, so error
// details refer to "stock_quantity" rather than "StockQuantity".
func New() *Validation {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	return &Validation{validate: v}
}

// Validate checks the struct's validate tags and returns one FieldError per
// violation, or nil when the value is valid.
func (v *Validation) Validate(i interface{}) FieldErrors {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var errs FieldErrors
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return errs
}

func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' constraint", fe.Tag())
	}
}
