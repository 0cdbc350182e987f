package stax

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	ProductionURL = "https://apiprod.fattlabs.com"
	SandboxURL    = "https://apidev.fattlabs.com"
)

// Environment is the deployment of the Stax API a Client talks to.
type Environment string

const (
	Production Environment = "production"
	Sandbox    Environment = "sandbox"
)

// Config configures a Client. Any field left empty is read from the
// environment when the Client is created, see New.
type Config struct {
	APIKey    string
	APISecret string // APISecret switches the Client from Bearer to Basic auth.

	BaseURL     string      // BaseURL overrides the URL derived from Environment.
	Environment Environment // Environment defaults to Production.

	Proxy   string
	Timeout time.Duration

	// HTTPClient is copied before use, so Proxy and Timeout never modify
	// the given client or its transport.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is a simple HTTP client for the Stax API. Each request made via this
// client will be configured with the authentication and content headers the
// API expects. A Client holds no state between requests.
type Client struct {
	rest     *resty.Client
	log      *slog.Logger
	endpoint string
}

// Response is the raw status and body of a single call to the API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Resource represents a resource that has been retrieved from Stax.
type Resource interface {
	// Endpoint will return the URI for the current Resource. The given uris
	// will be appended to the final endpoint. If the Resource does not have an
	// ID set on it, then the base endpoint for the Resource is returned.
	Endpoint(uris ...string) string

	// Load will use the given Client to load in the resource from the Stax
	// API using the Resource's endpoint. This overwrites the fields in the
	// Resource with the decoded response.
	Load(ctx context.Context, c *Client) error
}

type pair struct {
	key   string
	value interface{}
}

// Params is used for defining the parameters that are passed to a request
// made to the Stax API. For GET and DELETE requests these are encoded into the
// query string, otherwise they are sent as the JSON body.
type Params map[string]interface{}

// encodeSliceToPairs will encode an arbitrary slice of values into a slice of
// pairs. Each pair encoded will have a key of key[i] where key is the passed
// key argument, and i is the index of the pair's value in the slice.
func encodeSliceToPairs(key string, val reflect.Value) []pair {
	pairs := make([]pair, 0)

	for i := 0; i < val.Len(); i++ {
		k := key + "[" + strconv.FormatInt(int64(i), 10) + "]"
		v := val.Index(i).Interface()

		if p, ok := asParams(v); ok {
			pairs = append(pairs, p.encodeToPairs(k)...)
			continue
		}
		pairs = append(pairs, pair{
			key:   k,
			value: v,
		})
	}
	return pairs
}

func asParams(v interface{}) (Params, bool) {
	switch v := v.(type) {
	case Params:
		return v, true
	case Object:
		return Params(v), true
	case map[string]interface{}:
		return Params(v), true
	}
	return nil, false
}

func respCode2xx(code int) bool { return code >= 200 && code < 300 }

func (cfg *Config) fromEnv() {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("STAX_API_KEY")

		// The secret only pairs with a key that also came from the
		// environment.
		if cfg.APISecret == "" {
			cfg.APISecret = os.Getenv("STAX_API_SECRET")
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("STAX_BASE_URL")
	}

	if cfg.Environment == "" {
		cfg.Environment = Environment(os.Getenv("STAX_ENVIRONMENT"))
	}

	if cfg.Proxy == "" {
		cfg.Proxy = os.Getenv("STAX_PROXY")
	}
	if cfg.Proxy == "" {
		cfg.Proxy = os.Getenv("PROXY")
	}
}

func (cfg *Config) endpoint() (string, error) {
	if cfg.BaseURL != "" {
		return strings.TrimSuffix(cfg.BaseURL, "/"), nil
	}

	switch Environment(strings.ToLower(string(cfg.Environment))) {
	case "", Production:
		return ProductionURL, nil
	case Sandbox:
		return SandboxURL, nil
	}
	return "", fmt.Errorf("stax: unknown environment %q", cfg.Environment)
}

// New configures a new Client from the given Config. Empty fields are filled
// in from the environment, STAX_API_KEY, STAX_API_SECRET, STAX_BASE_URL,
// STAX_ENVIRONMENT, and STAX_PROXY (or PROXY). Explicitly configured fields
// always take precedence over the environment. ErrMissingAPIKey is returned
// if no API key could be found.
func New(cfg Config) (*Client, error) {
	cfg.fromEnv()

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint, err := cfg.endpoint()

	if err != nil {
		return nil, err
	}

	log := cfg.Logger

	if log == nil {
		log = discardLogger()
	}

	rest := resty.New()

	if cfg.HTTPClient != nil {
		hc := *cfg.HTTPClient

		if tr, ok := hc.Transport.(*http.Transport); ok {
			hc.Transport = tr.Clone()
		}
		rest = resty.NewWithClient(&hc)
	}

	rest.JSONMarshal = json.Marshal
	rest.JSONUnmarshal = json.Unmarshal

	rest.SetBaseURL(endpoint).
		SetLogger(restyLogger{log: log}).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.APISecret != "" {
		rest.SetBasicAuth(cfg.APIKey, cfg.APISecret)
	} else {
		rest.SetAuthToken(cfg.APIKey)
	}

	if cfg.Proxy != "" {
		rest.SetProxy(cfg.Proxy)
	}

	if cfg.Timeout > 0 {
		rest.SetTimeout(cfg.Timeout)
	}

	rest.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Debug("stax request",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return &Client{
		rest:     rest,
		log:      log,
		endpoint: endpoint,
	}, nil
}

// NewIdempotencyKey returns a random key for the idempotency_id parameter
// accepted by charges and invoice payments.
func NewIdempotencyKey() string { return uuid.NewString() }

func (p pair) encode() string { return p.key + "=" + url.QueryEscape(fmt.Sprintf("%v", p.value)) }

func (p Params) encodeToPairs(parent string) []pair {
	pairs := make([]pair, 0)

	for k, v := range p {
		if v == nil {
			continue
		}

		if parent != "" {
			k = parent + "[" + k + "]"
		}

		if p1, ok := asParams(v); ok {
			pairs = append(pairs, p1.encodeToPairs(k)...)
			continue
		}

		if reflect.TypeOf(v).Kind() == reflect.Slice {
			pairs = append(pairs, encodeSliceToPairs(k, reflect.ValueOf(v))...)
			continue
		}
		pairs = append(pairs, pair{
			key:   k,
			value: v,
		})
	}
	return pairs
}

// Encode encodes the current Params into a query string and returns it.
// Nested Params and slices are encoded with bracketed keys.
func (p Params) Encode() string {
	pairs := make([]string, 0)

	for _, pair := range p.encodeToPairs("") {
		pairs = append(pairs, pair.encode())
	}

	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}

// Values returns the current Params as url.Values, with the same bracketed
// keys that Encode produces.
func (p Params) Values() url.Values {
	vals := make(url.Values)

	for _, pair := range p.encodeToPairs("") {
		vals.Add(pair.key, fmt.Sprintf("%v", pair.value))
	}
	return vals
}

// Endpoint returns the base URL the Client sends requests to.
func (c *Client) Endpoint() string { return c.endpoint }

// Do sends a single request to the given URI of the Stax API. The query
// Params are encoded as given, and the body Params are sent as JSON if not
// nil. The raw status and body are returned as is, whatever the status. An
// error is only returned if the request could not be made at all.
func (c *Client) Do(ctx context.Context, method, uri string, query, body Params) (*Response, error) {
	req := c.rest.R().SetContext(ctx)

	if len(query) > 0 {
		req.SetQueryParamsFromValues(query.Values())
	}

	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, uri)

	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

func (c *Client) send(ctx context.Context, method, uri string, params Params) (Result, error) {
	var query, body Params

	switch method {
	case http.MethodGet, http.MethodDelete:
		query = params.Camelize()
	default:
		body = params

		if body == nil {
			body = Params{}
		}
	}

	resp, err := c.Do(ctx, method, uri, query, body)

	if err != nil {
		return Result{}, err
	}

	if !respCode2xx(resp.StatusCode) {
		return Result{}, c.Error(resp)
	}
	return decodeResult(resp.Body), nil
}

// Error decodes an error from the Stax API from the given Response and
// returns it as a pointer to Error.
func (c *Client) Error(resp *Response) error {
	err := newError(resp)

	c.log.Debug("stax error", "status", err.StatusCode, "message", err.Message)
	return err
}

// Get will send a GET request to the given URI of the Stax API. The keys of
// the given Params are camel cased and sent in the query string.
func (c *Client) Get(ctx context.Context, uri string, params Params) (Result, error) {
	return c.send(ctx, http.MethodGet, uri, params)
}

// Post will send a POST request to the given URI of the Stax API, with the
// given Params as the JSON body.
func (c *Client) Post(ctx context.Context, uri string, params Params) (Result, error) {
	return c.send(ctx, http.MethodPost, uri, params)
}

// Put will send a PUT request to the given URI of the Stax API, with the
// given Params as the JSON body.
func (c *Client) Put(ctx context.Context, uri string, params Params) (Result, error) {
	return c.send(ctx, http.MethodPut, uri, params)
}

// Delete will send a DELETE request to the given URI of the Stax API.
func (c *Client) Delete(ctx context.Context, uri string) (Result, error) {
	return c.send(ctx, http.MethodDelete, uri, nil)
}

func endpoint(base, id string, uris ...string) string {
	if id != "" {
		base += "/" + url.PathEscape(id)
	}

	if len(uris) > 0 {
		base += "/" + strings.Join(uris, "/")
	}
	return base
}

func requireID(field, id string) error {
	if id == "" {
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("The %s field is required", field),
		}
	}
	return nil
}
