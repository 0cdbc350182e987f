package stax

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var (
	ErrMissingAPIKey = errors.New("stax: API authentication incomplete, an API key is required")

	// ErrValidation matches any Error raised before a request was sent.
	ErrValidation = errors.New("stax: invalid parameters")

	// ErrNotFound matches any Error for a 404 response.
	ErrNotFound = errors.New("stax: not found")

	// ErrUnauthorized matches any Error for a 401 or 403 response.
	ErrUnauthorized = errors.New("stax: unauthorized")
)

// Error is the error returned for both a non-2xx response from the Stax API,
// and for invalid parameters caught before a request is made. The latter will
// have a StatusCode of 0, and the Field that failed validation.
type Error struct {
	StatusCode int
	Field      string
	Message    string

	// Body is the decoded error body with snake cased keys, or the raw body
	// as a string if it was not valid JSON.
	Body interface{}
}

func newError(resp *Response) *Error {
	e := &Error{
		StatusCode: resp.StatusCode,
	}

	raw := string(bytes.TrimSpace(resp.Body))

	if raw == "" {
		e.Message = "HTTP Status: " + strconv.Itoa(resp.StatusCode)
		return e
	}

	v, err := decodeJSON(resp.Body)

	if err != nil {
		e.Body = raw
		e.Message = raw
		return e
	}

	e.Body = v
	e.Message = errorMessage(v, raw)
	return e
}

// errorMessage picks the message out of a decoded error body, preferring
// error.message, then message, then falling back to the raw body.
func errorMessage(v interface{}, raw string) string {
	obj, ok := v.(map[string]interface{})

	if !ok {
		return raw
	}

	switch err := obj["error"].(type) {
	case map[string]interface{}:
		if msg, ok := err["message"].(string); ok && msg != "" {
			return msg
		}
	case string:
		if err != "" {
			return err
		}
	}

	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg
	}
	return raw
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return "stax: " + e.Message
	}
	return fmt.Sprintf("stax: api error %d: %s", e.StatusCode, e.Message)
}

// Is reports whether the Error matches one of the sentinel errors
// ErrValidation, ErrNotFound, or ErrUnauthorized.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.StatusCode == 0
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// notFound rewrites the message of a 404 Error to name the resource that
// could not be found.
func notFound(err error, kind, id string) error {
	var e *Error

	if errors.As(err, &e) && e.StatusCode == http.StatusNotFound {
		e.Message = kind + " not found: " + id
	}
	return err
}
