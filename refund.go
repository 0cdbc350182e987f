package stax

import (
	"context"
	"net/http"
)

// Refund is the Refund resource from Stax.
type Refund struct {
	Record

	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	Amount    Amount    `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	Metadata  Object    `json:"metadata"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

var (
	_ Resource = (*Refund)(nil)

	refundEndpoint = "/refunds"
)

// ListRefunds returns a page of Refunds matching the given Params.
func ListRefunds(ctx context.Context, c *Client, params Params) ([]*Refund, Pagination, error) {
	if err := check(params, between("per_page", 1, 200)); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, refundEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("refunds")

	rr, err := decodeAll[Refund](objs)
	return rr, p, err
}

// RetrieveRefund will get the Refund of the given ID from Stax and return it.
func RetrieveRefund(ctx context.Context, c *Client, id string) (*Refund, error) {
	r := &Refund{
		ID: id,
	}

	if err := r.Load(ctx, c); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRefund refunds the payment of the given ID. An optional amount in the
// Params refunds part of the payment.
func CreateRefund(ctx context.Context, c *Client, paymentID string, params Params) (*Refund, error) {
	if err := requireID("payment_id", paymentID); err != nil {
		return nil, err
	}

	if err := check(params, positive("amount")); err != nil {
		return nil, err
	}

	body := Params{
		"payment_id": paymentID,
	}

	for k, v := range params {
		body[k] = v
	}

	res, err := c.send(ctx, http.MethodPost, refundEndpoint, body)

	if err != nil {
		return nil, err
	}

	r := &Refund{}

	err = res.unwrap("refund").decode(r)
	return r, err
}

// Endpoint implements the Resource interface.
func (r *Refund) Endpoint(uris ...string) string {
	return endpoint(refundEndpoint, r.ID, uris...)
}

// Load implements the Resource interface.
func (r *Refund) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", r.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, r.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Refund", r.ID)
	}
	return res.unwrap("refund").decode(r)
}
