package stax

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Result is the decoded body of a successful response. Value holds the JSON
// body with snake cased keys, the raw body as a string if it could not be
// decoded, or nil if the body was empty.
type Result struct {
	Value interface{}
	Raw   []byte
}

// Object is a decoded JSON object with snake cased keys.
type Object map[string]interface{}

// Record holds the raw fields a model was decoded from, so that fields
// without a typed counterpart can still be read.
type Record struct {
	Raw Object `json:"-"`
}

type record interface {
	setRaw(Object)
}

func decodeJSON(b []byte) (interface{}, error) {
	if !json.Valid(b) {
		return nil, fmt.Errorf("stax: invalid json body")
	}

	var v interface{}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return Snakeize(v), nil
}

func decodeResult(b []byte) Result {
	r := Result{
		Raw: b,
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return r
	}

	v, err := decodeJSON(b)

	if err != nil {
		r.Value = string(b)
		return r
	}

	r.Value = v
	return r
}

// Object returns the Result as an Object, or nil if the body was not a JSON
// object.
func (r Result) Object() Object {
	if m, ok := r.Value.(map[string]interface{}); ok {
		return Object(m)
	}
	return nil
}

// Array returns the Result as a slice of Objects, skipping any non-object
// elements. This returns nil if the body was not a JSON array.
func (r Result) Array() []Object {
	s, ok := r.Value.([]interface{})

	if !ok {
		return nil
	}
	return objects(s)
}

// String returns the raw body of the Result.
func (r Result) String() string { return string(r.Raw) }

// unwrap returns the object under the given key. The API is not consistent in
// wrapping single resources, so if there is no such key then the whole body
// is returned.
func (r Result) unwrap(key string) Object {
	obj := r.Object()

	if inner := obj.Object(key); inner != nil {
		return inner
	}
	return obj
}

// list returns the items of a list response along with its pagination. Items
// are read from the data key, then the given key, and then from the body
// itself if it is an array.
func (r Result) list(key string) ([]Object, Pagination) {
	if items := r.Array(); items != nil {
		return items, pageOf(items)
	}

	obj := r.Object()

	if obj == nil {
		return []Object{}, Pagination{}
	}

	raw, ok := obj["data"].([]interface{})

	if !ok {
		raw, _ = obj[key].([]interface{})
	}

	items := objects(raw)

	if _, ok := obj["total"]; !ok {
		return items, pageOf(items)
	}
	return items, newPagination(obj)
}

func objects(s []interface{}) []Object {
	objs := make([]Object, 0, len(s))

	for _, v := range s {
		if m, ok := v.(map[string]interface{}); ok {
			objs = append(objs, Object(m))
		}
	}
	return objs
}

// decode decodes the Object into the given model. The Object is kept as the
// model's raw record.
func (o Object) decode(v interface{}) error {
	b, err := json.Marshal(o)

	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("stax: decode %T: %w", v, err)
	}

	if r, ok := v.(record); ok {
		r.setRaw(o)
	}
	return nil
}

func decodeAll[T any, PT interface{ *T }](objs []Object) ([]PT, error) {
	items := make([]PT, 0, len(objs))

	for _, o := range objs {
		v := PT(new(T))

		if err := o.decode(v); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// UnmarshalJSON decodes a JSON object into the Object. The API sends an empty
// array in place of an empty object, which decodes to an empty Object.
func (o *Object) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) == 0 || b[0] == '[' || string(b) == "null" {
		*o = Object{}
		return nil
	}

	var m map[string]interface{}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	if err := dec.Decode(&m); err != nil {
		return err
	}

	*o = Object(m)
	return nil
}

// Get returns the raw value for the given key.
func (o Object) Get(key string) interface{} { return o[key] }

// Object returns the nested object for the given key, or nil.
func (o Object) Object(key string) Object {
	if m, ok := o[key].(map[string]interface{}); ok {
		return Object(m)
	}
	if m, ok := o[key].(Object); ok {
		return m
	}
	return nil
}

// String returns the value for the given key as a string. Numbers and bools
// are formatted, and nil becomes the empty string.
func (o Object) String(key string) string {
	switch v := o[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the value for the given key as an int, or 0 if it is not a
// number.
func (o Object) Int(key string) int {
	switch v := o[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		f, _ := v.Float64()
		return int(f)
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}

// Bool reports whether the value for the given key is truthy, that is true,
// a non-zero number, or the strings "1" and "true".
func (o Object) Bool(key string) bool {
	switch v := o[key].(type) {
	case bool:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f != 0
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		v = strings.ToLower(v)
		return v == "1" || v == "true"
	}
	return false
}

func (r *Record) setRaw(o Object) { r.Raw = o }

// Get returns the raw value for the given key of the record.
func (r Record) Get(key string) interface{} { return r.Raw[key] }
