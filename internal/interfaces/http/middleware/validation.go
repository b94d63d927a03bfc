package middleware

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// master codes: letters, digits, dot, underscore, hyphen
var masterCodePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// SetupValidator registers custom validators and makes validation errors
// report json field names instead of struct field names.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("mastercode", func(fl validator.FieldLevel) bool {
		return masterCodePattern.MatchString(fl.Field().String())
	})
}
