// Package validation turns raw JSON payloads into typed, constraint-checked values.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error carries the ordered, human-readable messages of a rejected payload.
type Error struct {
	Messages []string
}

// Error returns the first message, which is what callers surface to clients.
func (e *Error) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return e.Messages[0]
}

func newError(messages ...string) *Error {
	return &Error{Messages: messages}
}

// Validator wraps a go-playground validator that reports JSON field names.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate decodes raw into a T and checks its struct tags.
// An empty body is treated as an empty object. Any failure is returned as *Error.
func Validate[T any](v *Validator, raw []byte) (*T, error) {
	var out T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, decodeError(err)
	}
	if err := v.validate.Struct(&out); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			messages := make([]string, 0, len(vErrs))
			for _, fe := range vErrs {
				messages = append(messages, message(fe))
			}
			return nil, newError(messages...)
		}
		return nil, fmt.Errorf("failed to validate payload: %w", err)
	}
	return &out, nil
}

// decodeError maps a json decoding failure to a field-level message where possible.
func decodeError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		t := typeErr.Type
		for t != nil && t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t == nil {
			return newError(fmt.Sprintf("%s is invalid", typeErr.Field))
		}
		switch t.Kind() {
		case reflect.String:
			return newError(fmt.Sprintf("%s must be a string", typeErr.Field))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return newError(fmt.Sprintf("%s must be an integer number", typeErr.Field))
		case reflect.Float32, reflect.Float64:
			return newError(fmt.Sprintf("%s must be a number conforming to the specified constraints", typeErr.Field))
		default:
			return newError(fmt.Sprintf("%s is invalid", typeErr.Field))
		}
	}
	return newError("invalid request body")
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s should not be empty", field)
		}
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
