package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrewpillar/stax"
)

// parseParams parses the given key=value pairs into Params. Dotted keys set
// nested Params, so meta.memo=hi sets the memo of the meta param. A key ending
// in [] is appended to a list. Values that look like bools or numbers are
// sent as such. Keys may be given in camel case, perPage=2 is the same as
// per_page=2.
func parseParams(pairs []string) (stax.Params, error) {
	p := make(stax.Params)

	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")

		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", pair)
		}

		parts := strings.Split(key, ".")
		cur := p

		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(stax.Params)

			if !ok {
				if _, set := cur[part]; set {
					return nil, fmt.Errorf("invalid param %q, %s is not an object", pair, part)
				}

				next = make(stax.Params)
				cur[part] = next
			}
			cur = next
		}

		last := parts[len(parts)-1]

		if name, list := strings.CutSuffix(last, "[]"); list {
			s, _ := cur[name].([]interface{})
			cur[name] = append(s, paramValue(val))
			continue
		}
		cur[last] = paramValue(val)
	}
	return p.Snakeize(), nil
}

func paramValue(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}

	// Leading zeros are kept, card_exp=0427 is not a number.
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return s
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}

	if !strings.ContainsAny(s, "0123456789") {
		return s
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
