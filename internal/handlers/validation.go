package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var periodLabelPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// RegisterCustomValidations attaches the binding-level validations used by the
// request DTOs. Must run once before routes are registered.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("periodlabel", validatePeriodLabel)
	}
}

// validatePeriodLabel accepts YYYY-MM labels only.
func validatePeriodLabel(fl validator.FieldLevel) bool {
	return periodLabelPattern.MatchString(fl.Field().String())
}
