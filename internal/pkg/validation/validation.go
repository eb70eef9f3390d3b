package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
)

// Shoe sizes run from 5 to 15 in half sizes.
const (
	MinShoeSize = 5.0
	MaxShoeSize = 15.0
)

var (
	once     sync.Once
	instance *validator.Validate
)

// FieldError is a single failed rule, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator returns the shared validator with the band rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		if err := v.RegisterValidation("shoe_size", isShoeSize); err != nil {
			panic(err)
		}
		instance = v
	})
	return instance
}

// isShoeSize accepts 5, 5.5 ... 15.
func isShoeSize(fl validator.FieldLevel) bool {
	size, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil || size < MinShoeSize || size > MaxShoeSize {
		return false
	}
	return size*2 == float64(int(size*2))
}

// Struct validates s and wraps failures in apperrors.ErrValidationFailed.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return &Error{Fields: fields, msg: strings.Join(msgs, "; ")}
}

// Error carries every failed field of one validation pass.
type Error struct {
	Fields []FieldError
	msg    string
}

// Error lists the failed fields.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", apperrors.ErrValidationFailed, e.msg)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *Error) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// FieldErrors flattens validator errors into FieldError values.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		var own *Error
		if errors.As(err, &own) {
			return own.Fields
		}
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: formatValidationError(fe)})
	}
	return out
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "shoe_size":
		return e.Field() + " must be a shoe size from 5 to 15 in half sizes"
	case "datetime":
		return e.Field() + " must be a date formatted as " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
