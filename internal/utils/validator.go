package utils

import (
	"reflect"
	"strings"

	"khadija-recipes/internal/i18n"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
	_ = Validate.RegisterValidation("default_lang", hasDefaultLanguage)
}

// hasDefaultLanguage accepts a language map holding a non-blank value for
// the default language.
func hasDefaultLanguage(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Map || field.Type().Key().Kind() != reflect.String {
		return false
	}
	v := field.MapIndex(reflect.ValueOf(i18n.Default()))
	if !v.IsValid() || v.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(v.String()) != ""
}
