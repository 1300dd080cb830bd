package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9\-+\s]{7,20}$`)

const (
	loginEmailForbidden    = `'"=*;`
	loginPasswordForbidden = `'"=*.;`
)

type ContactInput struct {
	RecaptchaToken string `json:"recaptchaToken" validate:"required"`
	Nombre         string `json:"nombre" validate:"required,min=2,max=100"`
	Telefono       string `json:"telefono" validate:"required,telefono"`
	Correo         string `json:"correo" validate:"required,max=254,email"`
	Mensaje        string `json:"mensaje" validate:"required,min=5,max=1000"`
	Terminos       *bool  `json:"terminos" validate:"required,eq=true"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,max=254,email,login_email"`
	Password string `json:"password" validate:"required,min=8,max=100,login_password"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("telefono", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("login_email", func(fl validator.FieldLevel) bool {
		local, domain, ok := strings.Cut(fl.Field().String(), "@")
		return ok && isSafeToken(local, loginEmailForbidden) && isSafeToken(domain, loginEmailForbidden)
	})
	_ = v.RegisterValidation("login_password", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), loginPasswordForbidden)
	})

	return v
}

func isSafeToken(s, forbidden string) bool {
	if s == "" || strings.ContainsAny(s, forbidden) {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}

// ValidateContactInput trims the free-text fields and checks them in wire
// order, failing on the first violation.
func ValidateContactInput(input ContactInput) (ContactInput, error) {
	input.Nombre = strings.TrimSpace(input.Nombre)
	input.Telefono = strings.TrimSpace(input.Telefono)
	input.Correo = strings.TrimSpace(input.Correo)
	input.Mensaje = strings.TrimSpace(input.Mensaje)

	if err := firstViolation(validate.Struct(input)); err != nil {
		return input, err
	}
	return input, nil
}

func ValidateLoginInput(input LoginInput) (LoginInput, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := firstViolation(validate.Struct(input)); err != nil {
		return input, err
	}
	return input, nil
}

func firstViolation(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError("invalid input")
	}
	return newValidationError(describeViolation(fieldErrs[0]))
}

func describeViolation(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "telefono":
		return fmt.Sprintf("%s with value %q fails to match the required pattern: /%s/", field, fe.Value(), phonePattern.String())
	case "eq":
		return fmt.Sprintf("%s must be [%s]", field, fe.Param())
	case "login_email", "login_password":
		return field + " contains invalid characters"
	default:
		return field + " is invalid"
	}
}
