// Package validation wraps go-playground/validator with a lazily built singleton
// and the custom rules used by request payloads.
//
// Custom tags:
//   - account_email: the address pattern accepted for account registration
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"location-service/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var accountEmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		if err := validate.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
			return IsAccountEmail(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register account_email: %v", err))
		}
	})
	return validate
}

// IsAccountEmail reports whether s matches the registration address pattern.
func IsAccountEmail(s string) bool {
	return accountEmailPattern.MatchString(s)
}

// ValidateStruct validates s and returns an apperr validation error describing the
// first failing field, or nil.
func ValidateStruct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation("Invalid request")
	}
	return apperr.Validation(message(verrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "account_email":
		return fmt.Sprintf("%v is not a valid email address", fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
