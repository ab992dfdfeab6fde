package app

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// submission mirrors the user-editable fields of a dedication with their rules.
type submission struct {
	SenderName     string `json:"senderName"     validate:"notblank"`
	SenderClass    string `json:"senderClass"    validate:"notblank"`
	RecipientName  string `json:"recipientName"  validate:"notblank"`
	RecipientClass string `json:"recipientClass" validate:"notblank"`
	Message        string `json:"message"        validate:"notblank,maxwords=30"`
}

// requiredMessages is the user-facing text for a blank field.
var requiredMessages = map[string]string{
	"senderName":     "Sender name is required",
	"senderClass":    "Sender class is required",
	"recipientName":  "Recipient name is required",
	"recipientClass": "Recipient class is required",
	"message":        "Message is required",
}

// Validator checks a dedication before it is stored.
// Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the dedication rules registered.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	mustRegister(v, "notblank", validateNotBlank)
	mustRegister(v, "maxwords", validateMaxWords)

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("app: registering %q validation: %v", tag, err))
	}
}

// Validate returns nil when d is acceptable, otherwise a domain.FieldErrors
// holding one message per failed field.
func (v *Validator) Validate(d domain.Dedication) error {
	err := v.validate.Struct(submission{
		SenderName:     d.SenderName,
		SenderClass:    d.SenderClass,
		RecipientName:  d.RecipientName,
		RecipientClass: d.RecipientClass,
		Message:        d.Message,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating dedication: %w", err)
	}

	result := make(domain.FieldErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		result[fe.Field()] = fieldMessage(fe, d)
	}

	return result
}

func fieldMessage(fe validator.FieldError, d domain.Dedication) string {
	if fe.Tag() == "maxwords" {
		return fmt.Sprintf("Message exceeds %s words (current: %d)", fe.Param(), d.WordCount())
	}

	if msg, ok := requiredMessages[fe.Field()]; ok {
		return msg
	}

	return "failed validation: " + fe.Tag()
}

// validateNotBlank rejects strings that are empty after trimming.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateMaxWords rejects text with more whitespace-separated words than the param.
func validateMaxWords(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return domain.CountWords(fl.Field().String()) <= limit
}
