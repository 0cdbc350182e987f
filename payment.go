package stax

import (
	"context"
	"net/http"
)

// Payment is the Payment resource from Stax. A Payment created with an
// authorization is captured or voided later.
type Payment struct {
	Record

	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	PaymentMethodID   string    `json:"payment_method_id"`
	PaymentMethodType string    `json:"payment_method_type"`
	Amount            Amount    `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	Description       string    `json:"description"`
	Metadata          Object    `json:"metadata"`
	CreatedAt         Timestamp `json:"created_at"`
	UpdatedAt         Timestamp `json:"updated_at"`
}

var (
	_ Resource = (*Payment)(nil)

	paymentEndpoint = "/payments"
)

func sendPayment(ctx context.Context, c *Client, method, uri string, params Params) (*Payment, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	p := &Payment{}

	err = res.unwrap("payment").decode(p)
	return p, err
}

// ListPayments returns a page of Payments matching the given Params.
func ListPayments(ctx context.Context, c *Client, params Params) ([]*Payment, Pagination, error) {
	if err := check(params, between("per_page", 1, 200)); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, paymentEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("payments")

	pp, err := decodeAll[Payment](objs)
	return pp, p, err
}

// RetrievePayment will get the Payment of the given ID from Stax and return
// it.
func RetrievePayment(ctx context.Context, c *Client, id string) (*Payment, error) {
	p := &Payment{
		ID: id,
	}

	if err := p.Load(ctx, c); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePayment creates a new Payment in Stax with the given Params.
func CreatePayment(ctx context.Context, c *Client, params Params) (*Payment, error) {
	err := check(params,
		positive("amount"),
		oneOf("currency", "USD"),
		object("metadata"),
	)

	if err != nil {
		return nil, err
	}
	return sendPayment(ctx, c, http.MethodPost, paymentEndpoint, params)
}

// Endpoint implements the Resource interface.
func (p *Payment) Endpoint(uris ...string) string {
	return endpoint(paymentEndpoint, p.ID, uris...)
}

// Load implements the Resource interface.
func (p *Payment) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", p.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, p.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Payment", p.ID)
	}
	return res.unwrap("payment").decode(p)
}

// Capture captures the current authorized Payment. An amount in the Params
// captures part of the authorization.
func (p *Payment) Capture(ctx context.Context, c *Client, params Params) error {
	if err := check(params, positive("amount")); err != nil {
		return err
	}
	return p.do(ctx, c, p.Endpoint("capture"), params)
}

// Void voids the current Payment.
func (p *Payment) Void(ctx context.Context, c *Client) error {
	return p.do(ctx, c, p.Endpoint("void"), nil)
}

func (p *Payment) do(ctx context.Context, c *Client, uri string, params Params) error {
	if err := requireID("id", p.ID); err != nil {
		return err
	}

	p1, err := sendPayment(ctx, c, http.MethodPost, uri, params)

	if err != nil {
		return err
	}
	(*p) = (*p1)
	return nil
}

// Pending reports whether the Payment is authorized but not captured.
func (p *Payment) Pending() bool { return p.Status == "pending" }

func (p *Payment) Completed() bool { return p.Status == "completed" }

func (p *Payment) Failed() bool { return p.Status == "failed" }

func (p *Payment) Voided() bool { return p.Status == "voided" }
