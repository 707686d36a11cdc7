package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

var createFields = []string{"fullName", "email", "phone", "service", "message"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// DecodeCreate reads a JSON submission from r, normalizes it, and validates it.
//
// The body must be a single JSON object holding only the CreateCommand properties, each a string.
// Values are trimmed and the email is lower-cased before validation. Every violation is
// reported in a *ValidationError. A body exceeding an http.MaxBytesReader limit yields
// ErrBodyTooLarge.
func DecodeCreate(r io.Reader) (CreateCommand, error) {
	dec := json.NewDecoder(r)

	var raw map[string]json.RawMessage
	err := dec.Decode(&raw)
	if err == nil {
		if extra := dec.Decode(&struct{}{}); extra != io.EOF {
			err = fmt.Errorf("trailing data after JSON object: %w", extra)
		}
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return CreateCommand{}, fmt.Errorf("%w: %w", ErrBodyTooLarge, err)
		}
		return CreateCommand{}, &ValidationError{
			Messages: []string{"request body must be a JSON object"},
		}
	}

	var msgs []string

	unknown := make([]string, 0)
	for key := range raw {
		if !slices.Contains(createFields, key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	for _, key := range unknown {
		msgs = append(msgs, fmt.Sprintf("property %s should not exist", key))
	}

	values := make(map[string]string, len(createFields))
	mistyped := make(map[string]bool)
	for _, field := range createFields {
		data, ok := raw[field]
		if !ok {
			continue
		}
		var s *string
		if err := json.Unmarshal(data, &s); err != nil {
			mistyped[field] = true
			msgs = append(msgs, fmt.Sprintf("%s must be a string", field))
			continue
		}
		if s != nil {
			values[field] = *s
		}
	}

	cmd := CreateCommand{
		FullName: strings.TrimSpace(values["fullName"]),
		Email:    strings.ToLower(strings.TrimSpace(values["email"])),
		Phone:    strings.TrimSpace(values["phone"]),
		Service:  strings.TrimSpace(values["service"]),
		Message:  strings.TrimSpace(values["message"]),
	}

	if err := validate.Struct(cmd); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return CreateCommand{}, err
		}
		for _, fe := range fieldErrs {
			if mistyped[fe.Field()] {
				continue
			}
			msgs = append(msgs, validationMessage(fe))
		}
	}

	if len(msgs) > 0 {
		return CreateCommand{}, &ValidationError{Messages: msgs}
	}
	return cmd, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be an email", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
	case "phone":
		return fmt.Sprintf("%s must contain only digits and valid phone symbols", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
