package validator

import (
	"log"
	"strings"

	"studio_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// ошибка времени запуска, приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("notblank", validateNotBlank)
	mustRegister("is-order-status", validateOrderStatus)
	mustRegister("is-package-type", validatePackageType)
}

// validateNotBlank rejects strings made only of whitespace. Nil pointers are
// left to 'required'/'omitempty'.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // для этого есть 'required'
	}
	return models.OrderStatus(value).Valid()
}

func validatePackageType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PackageType(value).Valid()
}
