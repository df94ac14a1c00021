package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator checks request bodies and path ids against struct tags.
// Field errors are keyed by the JSON name the client sent.
type Validator struct {
	validate *validator.Validate
}

var sharedValidator = sync.OnceValue(newValidator)

func newValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("snowflake", validateSnowflake)
	return &Validator{validate: v}
}

// GetValidator returns the process-wide validator.
func GetValidator() *Validator {
	return sharedValidator()
}

func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

func (v *Validator) ValidateVar(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// fieldMessages maps validator tags to client-facing text. A %s is filled
// with the tag parameter.
var fieldMessages = map[string]string{
	"required":  "This field is required",
	"snowflake": "Must be a numeric Discord id",
	"gte":       "Must be at least %s",
	"min":       "Must be at least %s",
	"lte":       "Must be at most %s",
	"max":       "Must be at most %s",
}

// FormatValidationError flattens validator errors into field -> message.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "Invalid value"
		} else if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, fe.Param())
		}
		out[fe.Field()] = msg
	}
	return out
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

// validateSnowflake accepts an empty value or a decimal Discord id.
func validateSnowflake(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if len(id) > MaxIDLength {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
