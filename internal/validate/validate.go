// Package validate wraps go-playground/validator with the tags and messages used across
// request types.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRe = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	slotRe  = regexp.MustCompile(`^([01]\d|2[0-3]):(00|30)$`)

	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
			return slotRe.MatchString(fl.Field().String())
		})
	})
	return v
}

// Struct validates s and returns the first failure as a *internaltypes.ValidationError.
func Struct(s any) error {
	return StructWith(s, nil)
}

// StructWith is Struct with caller-supplied messages keyed by "field.tag" (or "field").
func StructWith(s any, messages map[string]string) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fe.Field()
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return internaltypes.Invalid(field, msg)
	}
	if msg, ok := messages[field]; ok {
		return internaltypes.Invalid(field, msg)
	}
	return internaltypes.Invalid(field, message(fe))
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", f)
	case "email":
		return "Invalid email format."
	case "phone":
		return "Phone number must be in the format 555-123-4567."
	case "slot":
		return fmt.Sprintf("%s must be a half-hour time (HH:MM).", f)
	case "datetime":
		return fmt.Sprintf("%s must be formatted as %s.", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", f, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s.", f, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s.", f, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", f, fe.Param())
	}
	return fmt.Sprintf("%s is invalid.", f)
}
