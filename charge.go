package stax

import (
	"context"
	"net/http"
)

const (
	chargeEndpoint = "/charge"
	verifyEndpoint = "/verify"
	creditEndpoint = "/creditRequest"
)

// paymentRules are the rules shared by charges, verifications, and credits.
// Each needs a payment method, a positive total, and metadata.
var paymentRules = []rule{
	required("payment_method_id", "total"),
	positive("total"),
	required("meta"),
	object("meta"),
}

// Charge charges the PaymentMethod given in the payment_method_id param, and
// returns the resulting Transaction. The meta param may carry the
// transaction_initiation_type (MIT or CIT) and transaction_schedule_type
// (scheduled or unscheduled) of the charge.
func Charge(ctx context.Context, c *Client, params Params) (*Transaction, error) {
	rules := append(append([]rule{}, paymentRules...),
		flag("pre_auth"),
		maxLength("idempotency_id", 255),
		oneOf("currency", "USD"),
		funding("funding"),
		oneOf("meta.transaction_initiation_type", "MIT", "CIT"),
		oneOf("meta.transaction_schedule_type", "scheduled", "unscheduled"),
	)

	if err := check(params, rules...); err != nil {
		return nil, err
	}
	return sendTransaction(ctx, c, http.MethodPost, chargeEndpoint, params)
}

// Verify verifies the PaymentMethod given in the payment_method_id param with
// a pre-authorization of the given total. The pre_auth param defaults to
// true.
func Verify(ctx context.Context, c *Client, params Params) (*Transaction, error) {
	rules := append(append([]rule{}, paymentRules...), flag("pre_auth"))

	if err := check(params, rules...); err != nil {
		return nil, err
	}

	body := make(Params, len(params)+1)

	for k, v := range params {
		body[k] = v
	}

	if _, ok := body["pre_auth"]; !ok {
		body["pre_auth"] = true
	}
	return sendTransaction(ctx, c, http.MethodPost, verifyEndpoint, body)
}

// Credit credits the given total to the PaymentMethod given in the
// payment_method_id param.
func Credit(ctx context.Context, c *Client, params Params) (*Transaction, error) {
	if err := check(params, paymentRules...); err != nil {
		return nil, err
	}
	return sendTransaction(ctx, c, http.MethodPost, creditEndpoint, params)
}
