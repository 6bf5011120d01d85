// Package validation checks catalog entities for required fields, length
// bounds and enumerated choices before they are written.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("loan_status", validateLoanStatus)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateLoanStatus(fl validator.FieldLevel) bool {
	return models.LoanStatus(fl.Field().String()).Valid()
}

// Struct validates s and returns an *apperr.Error of kind validation listing
// every failing field, or nil.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	details := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperr.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return apperr.Validation("validation failed", details...)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "loan_status":
		return fmt.Sprintf("%s must be one of maintenance, on-loan, available, reserved", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
