package middleware

import (
	"fmt"
	"strings"

	"tour_sales_backend/internal/reconcile"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules used by request DTOs to gin's validator:
// "reporter" (store or guide) and "sale_status" (approved, pending or cancelled).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("reporter", validReporter); err != nil {
		return err
	}
	return v.RegisterValidation("sale_status", validSaleStatus)
}

func validReporter(fl validator.FieldLevel) bool {
	return reconcile.ReporterType(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
}

func validSaleStatus(fl validator.FieldLevel) bool {
	return reconcile.Status(strings.ToLower(strings.TrimSpace(fl.Field().String()))).Valid()
}
