package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Binding errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrBinding    = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// json or form tag names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}

				if name != "" {
					return name
				}
			}

			return fld.Name
		})
	})

	return validate
}

// Validate checks v's struct tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindJSON decodes the request body into v. Field rules for dedications live
// in the app validator, so only the JSON shape is checked here.
func BindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return nil
}

// BindQueryAndValidate binds query parameters into v and validates them.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors returns a field → message map for a validator error.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, fe := range errs {
			out[fe.Field()] = validationMessage(fe)
		}
	}

	return out
}

var validationMessages = map[string]string{
	"required": "This field is required",
	"url":      "Please enter a valid link",
	"oneof":    "Must be one of: {param}",
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "Invalid value"
}
