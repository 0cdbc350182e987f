package stax

import "github.com/iancoleman/strcase"

// Camelize returns a copy of the given value with every map key rewritten
// from snake_case to lowerCamelCase. Maps nested in maps and slices are
// rewritten too. Any other value is returned as is.
func Camelize(v interface{}) interface{} { return convertKeys(v, strcase.ToLowerCamel) }

// Snakeize returns a copy of the given value with every map key rewritten to
// snake_case, the inverse of Camelize.
func Snakeize(v interface{}) interface{} { return convertKeys(v, strcase.ToSnake) }

func convertMap(m map[string]interface{}, fn func(string) string) map[string]interface{} {
	m1 := make(map[string]interface{}, len(m))

	for k, v := range m {
		m1[fn(k)] = convertKeys(v, fn)
	}
	return m1
}

func convertKeys(v interface{}, fn func(string) string) interface{} {
	switch v := v.(type) {
	case Params:
		return Params(convertMap(v, fn))
	case Object:
		return Object(convertMap(v, fn))
	case map[string]interface{}:
		return convertMap(v, fn)
	case []Params:
		s := make([]Params, 0, len(v))

		for _, p := range v {
			s = append(s, Params(convertMap(p, fn)))
		}
		return s
	case []map[string]interface{}:
		s := make([]map[string]interface{}, 0, len(v))

		for _, m := range v {
			s = append(s, convertMap(m, fn))
		}
		return s
	case []interface{}:
		s := make([]interface{}, 0, len(v))

		for _, v1 := range v {
			s = append(s, convertKeys(v1, fn))
		}
		return s
	}
	return v
}

// Camelize returns a copy of the Params with camel cased keys. This is what
// is sent in the query string of GET and DELETE requests.
func (p Params) Camelize() Params { return Params(convertMap(p, strcase.ToLowerCamel)) }

// Snakeize returns a copy of the Params with snake cased keys.
func (p Params) Snakeize() Params { return Params(convertMap(p, strcase.ToSnake)) }
