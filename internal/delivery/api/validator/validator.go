// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	domainerrors "contacts/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// TagContactEmail validates addresses with the pattern the API has always accepted.
const TagContactEmail = "contactemail"

var contactEmailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their json names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation(TagContactEmail, func(fl validator.FieldLevel) bool {
		return contactEmailPattern.MatchString(fl.Field().String())
	})

	return &CustomValidator{validate: v}
}

// Validate returns nil or a wrapped domainerrors.ErrValidationFailed whose
// message names the first offending field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}

	return errors.WithStack(domainerrors.ErrValidationFailed.
		WithMessage(messages[0]).
		WithDetails(strings.Join(messages, "; ")))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email", TagContactEmail:
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%q failed on the %q rule", field, fe.Tag())
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}
