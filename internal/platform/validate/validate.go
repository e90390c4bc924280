package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"hrpay/internal/apperr"
)

const DateOfBirthLayout = "02/01/2006"

var (
	employeeIDPattern = regexp.MustCompile(`^[1-9][0-9]{4}$`)
	usernamePattern   = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	once     sync.Once
	instance *validator.Validate
)

// Instance returns the shared validator with the custom rules registered:
// employee_id, username, ddmmyyyy.
func Instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("employee_id", func(fl validator.FieldLevel) bool {
			return employeeIDPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateOfBirthLayout, fl.Field().String())
			return err == nil
		})
		instance = v
	})
	return instance
}

// Struct validates s and reports the first failing field as an
// apperr.ValidationError.
func Struct(s any) error {
	err := Instance().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation("", err.Error())
	}
	fe := fieldErrs[0]
	return apperr.Validation(fe.Field(), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "employee_id":
		return "must be a 5-digit number not starting with 0"
	case "username":
		return "may contain only letters, digits, dot, dash and underscore"
	case "ddmmyyyy":
		return "must be a date in DD/MM/YYYY format"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}
