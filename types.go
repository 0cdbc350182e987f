package stax

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Flag is a boolean that the API may send as true/false, 1/0, or as a
// string of either.
type Flag bool

// Timestamp is a time sent by the API, usually in the form
// YYYY-MM-DD HH:MM:SS. A null or empty time decodes to the zero Timestamp.
type Timestamp struct {
	time.Time
}

// Amount is a monetary value that the API may send as a number, a numeric
// string, or null. Valid is false if the value was null or missing.
type Amount struct {
	decimal.Decimal

	Valid bool
}

// Text is a string that the API may send as a number.
type Text string

const TimestampLayout = "2006-01-02 15:04:05"

var timestampLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func unquote(b []byte) string { return strings.TrimSpace(strings.Trim(string(b), `"`)) }

func (f *Flag) UnmarshalJSON(b []byte) error {
	s := strings.ToLower(unquote(b))

	switch s {
	case "true", "1", "yes":
		*f = true
	case "false", "0", "no", "", "null":
		*f = false
	default:
		n, err := strconv.ParseFloat(s, 64)

		if err != nil {
			return fmt.Errorf("stax: invalid flag %s", b)
		}
		*f = n != 0
	}
	return nil
}

// ParseTimestamp parses the given string in any of the time formats the API
// uses.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)

	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return Timestamp{}, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("stax: invalid timestamp %q", s)
}

// UnmarshalJSON decodes the timestamp in any of the layouts ParseTimestamp
// accepts. A timestamp in an unknown layout decodes as the zero Timestamp,
// the original value is still available from the Raw object of the record.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := unquote(b)

	if s == "null" {
		*t = Timestamp{}
		return nil
	}

	t1, err := ParseTimestamp(s)

	if err != nil {
		t1 = Timestamp{}
	}

	*t = t1
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

// Valid reports whether the Timestamp was set.
func (t Timestamp) Valid() bool { return !t.IsZero() }

// NewAmount returns the Amount for the given value, which may be any number
// type, a numeric string, or a decimal. Valid is false if the value could not
// be read as a number.
func NewAmount(v interface{}) Amount {
	d, ok := toDecimal(v)

	return Amount{
		Decimal: d,
		Valid:   ok,
	}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := unquote(b)

	if s == "" || s == "null" {
		*a = Amount{}
		return nil
	}

	d, err := decimal.NewFromString(s)

	if err != nil {
		return fmt.Errorf("stax: invalid amount %s: %w", b, err)
	}

	*a = Amount{
		Decimal: d,
		Valid:   true,
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

// Dollars returns the Amount rounded to cents.
func (a Amount) Dollars() decimal.Decimal { return a.Decimal.Round(2) }

func (t *Text) UnmarshalJSON(b []byte) error {
	s := unquote(b)

	if s == "null" {
		s = ""
	}

	*t = Text(s)
	return nil
}

func (t Text) String() string { return string(t) }

// toDecimal reads the given value as a decimal. The bool is false if the value
// is not a number or numeric string.
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch v := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case Amount:
		return v.Decimal, v.Valid
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromInt(int64(rv.Uint())), true
	}
	return decimal.Zero, false
}
