// Package validation checks request inputs with struct tags and normalizes
// customer phone numbers.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// Error lists the failing field names with the rule each one broke.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	return "validation failed: " + e.Detail()
}

// Detail renders the fields as "Field=rule" pairs in a stable order.
func (e *Error) Detail() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + e.Fields[name]
	}
	return strings.Join(parts, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Decimals are compared as floats so gt/gte/lte tags work on money fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Struct validates v against its `validate` tags.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = fe.Tag()
	}
	return out
}

// NormalizePhone parses number for region and returns it in E.164.
func NormalizePhone(number, region string) (string, error) {
	p, err := libphonenumber.Parse(number, region)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", ErrInvalidPhone
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
