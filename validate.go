package stax

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// rule checks a single constraint on a set of Params. A rule returns nil if
// the constraint holds.
type rule func(Params) *Error

var (
	validate = newValidator()

	phoneRegexp = regexp.MustCompile(`^\+?[0-9][0-9\s().\-]{6,19}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()

		if !phoneRegexp.MatchString(s) {
			return false
		}

		digits := 0

		for _, r := range s {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		return digits >= 7 && digits <= 15
	})

	if err != nil {
		panic(err)
	}
	return v
}

// check runs the given rules against the Params in order, and returns the
// first violation as an *Error.
func check(p Params, rules ...rule) error {
	for _, r := range rules {
		if err := r(p); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, format string, args ...interface{}) *Error {
	return &Error{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// lookup returns the value for the given key, which may be a dotted path into
// nested Params.
func lookup(p Params, key string) (interface{}, bool) {
	parts := strings.Split(key, ".")

	var cur interface{} = p

	for _, part := range parts {
		m, ok := asParams(cur)

		if !ok {
			return nil, false
		}

		cur, ok = m[part]

		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func blank(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func isSlice(v interface{}) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Slice
}

func sliceOf(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	s := make([]interface{}, 0, rv.Len())

	for i := 0; i < rv.Len(); i++ {
		s = append(s, rv.Index(i).Interface())
	}
	return s
}

// required checks that each of the given fields is set and not blank.
func required(fields ...string) rule {
	return func(p Params) *Error {
		for _, field := range fields {
			v, ok := lookup(p, field)

			if !ok || blank(v) {
				return invalid(field, "The %s field is required", field)
			}
		}
		return nil
	}
}

// requireOne checks that at least one of the given fields is set.
func requireOne(fields ...string) rule {
	return func(p Params) *Error {
		for _, field := range fields {
			if v, ok := lookup(p, field); ok && !blank(v) {
				return nil
			}
		}
		return invalid(fields[0], "At least one of %s is required", strings.Join(fields, ", "))
	}
}

// varRule checks a string field, if set, against the given validator tag.
func varRule(field, tag, format string, args ...interface{}) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		s, ok := v.(string)

		if !ok {
			if _, num := toDecimal(v); num {
				s, ok = fmt.Sprintf("%v", v), true
			}
		}

		if !ok || validate.Var(s, tag) != nil {
			return invalid(field, format, args...)
		}
		return nil
	}
}

func email(field string) rule {
	return varRule(field, "email", "The %s must be a valid email address", field)
}

func phone(field string) rule {
	return varRule(field, "phone", "The %s must be a valid phone number", field)
}

func length(field string, n int) rule {
	return varRule(field, "len="+strconv.Itoa(n), "The %s must be %d characters", field, n)
}

func maxLength(field string, n int) rule {
	return varRule(field, "max="+strconv.Itoa(n), "The %s may not be greater than %d characters", field, n)
}

func datetime(field string) rule {
	return varRule(field, "datetime="+TimestampLayout, "The %s must be in the format YYYY-MM-DD HH:MM:SS", field)
}

func digits(field string, min, max int) rule {
	tag := fmt.Sprintf("number,min=%d,max=%d", min, max)

	if min == max {
		return varRule(field, tag, "The %s must be %d digits", field, min)
	}
	return varRule(field, tag, "The %s must be between %d and %d digits", field, min, max)
}

func link(field string) rule {
	return varRule(field, "url", "The %s must be a valid URL", field)
}

// oneOf checks that the field, if set, is one of the given values.
func oneOf(field string, vals ...string) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		s := fmt.Sprintf("%v", v)

		for _, val := range vals {
			if s == val {
				return nil
			}
		}
		return invalid(field, "The %s must be one of: %s", field, strings.Join(vals, ", "))
	}
}

// emails checks that the field, if set, is an array of valid email addresses.
func emails(field string) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		if !isSlice(v) {
			return invalid(field, "The %s field must be an array", field)
		}

		for i, addr := range sliceOf(v) {
			s, ok := addr.(string)

			if !ok || validate.Var(s, "email") != nil {
				return invalid(field, "The %s.%d must be a valid email address", field, i)
			}
		}
		return nil
	}
}

func array(field string) rule {
	return func(p Params) *Error {
		if v, ok := lookup(p, field); ok && !isSlice(v) {
			return invalid(field, "The %s field must be an array", field)
		}
		return nil
	}
}

func object(field string) rule {
	return func(p Params) *Error {
		if v, ok := lookup(p, field); ok {
			if _, ok := asParams(v); !ok {
				return invalid(field, "The %s field must be an object", field)
			}
		}
		return nil
	}
}

func boolean(field string) rule {
	return func(p Params) *Error {
		if v, ok := lookup(p, field); ok {
			if _, ok := v.(bool); !ok {
				return invalid(field, "The %s field must be true or false", field)
			}
		}
		return nil
	}
}

// flag checks that the field, if set, is a boolean or the integer 0 or 1.
func flag(field string) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		if _, ok := v.(bool); ok {
			return nil
		}

		if _, ok := v.(string); !ok {
			if d, ok := toDecimal(v); ok && (d.Equal(decimal.Zero) || d.Equal(decimal.NewFromInt(1))) {
				return nil
			}
		}
		return invalid(field, "The %s field must be true, false, 0, or 1", field)
	}
}

// positive checks that the field, if set, is a number greater than zero.
// Numeric strings are accepted.
func positive(field string) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		d, ok := toDecimal(v)

		if !ok {
			return invalid(field, "The %s must be a number", field)
		}

		if !d.IsPositive() {
			return invalid(field, "The %s must be greater than 0", field)
		}
		return nil
	}
}

// between checks that the field, if set, is an integer within the given
// range.
func between(field string, min, max int) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		d, ok := toDecimal(v)

		if !ok || !d.IsInteger() || validate.Var(d.IntPart(), fmt.Sprintf("min=%d,max=%d", min, max)) != nil {
			return invalid(field, "The %s must be between %d and %d", field, min, max)
		}
		return nil
	}
}

// fullName checks that the field, if set, holds both a first and last name.
func fullName(field string) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		s, _ := v.(string)

		if len(strings.Fields(s)) < 2 {
			return invalid(field, "The %s must contain a first and last name", field)
		}
		return nil
	}
}

// funding checks that the field, if set, is an array of funding sources each
// with an account_id and a numeric amount.
func funding(field string) rule {
	return func(p Params) *Error {
		v, ok := lookup(p, field)

		if !ok {
			return nil
		}

		if !isSlice(v) {
			return invalid(field, "The %s field must be an array", field)
		}

		for i, item := range sliceOf(v) {
			src, _ := asParams(item)

			if id, ok := src["account_id"]; !ok || blank(id) {
				return invalid(field, "The %s.%d.account_id field is required", field, i)
			}

			if _, ok := toDecimal(src["amount"]); !ok {
				return invalid(field, "The %s.%d.amount must be a number", field, i)
			}
		}
		return nil
	}
}

// when runs the given rules only if the condition holds for the Params.
func when(cond func(Params) bool, rules ...rule) rule {
	return func(p Params) *Error {
		if !cond(p) {
			return nil
		}

		for _, r := range rules {
			if err := r(p); err != nil {
				return err
			}
		}
		return nil
	}
}

func equals(field, val string) func(Params) bool {
	return func(p Params) bool {
		v, ok := lookup(p, field)
		return ok && fmt.Sprintf("%v", v) == val
	}
}
