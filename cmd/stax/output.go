package main

import (
	"fmt"
	"io"

	"github.com/andrewpillar/stax"
	"github.com/goccy/go-json"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// plain converts the decoded numbers in v into ints and floats, so they are
// not quoted when encoded as YAML.
func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case stax.Object:
		return plain(map[string]interface{}(v))
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))

		for k, v1 := range v {
			m[k] = plain(v1)
		}
		return m
	case []stax.Object:
		s := make([]interface{}, 0, len(v))

		for _, o := range v {
			s = append(s, plain(o))
		}
		return s
	case []interface{}:
		s := make([]interface{}, 0, len(v))

		for _, v1 := range v {
			s = append(s, plain(v1))
		}
		return s
	}
	return v
}

// write encodes v to w in the format given by the --output flag.
func write(w io.Writer, v *viper.Viper, val interface{}) error {
	val = plain(val)

	switch format := v.GetString("output"); format {
	case "", "json":
		b, err := json.MarshalIndent(val, "", "  ")

		if err != nil {
			return err
		}

		_, err = w.Write(append(b, '\n'))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(val); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// records returns the raw records of the given models, in the order given.
func records[T any](items []T, raw func(T) stax.Object) []stax.Object {
	objs := make([]stax.Object, 0, len(items))

	for _, it := range items {
		objs = append(objs, raw(it))
	}
	return objs
}
