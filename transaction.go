package stax

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// TransactionType is the type of a Transaction.
type TransactionType string

const (
	TransactionCharge        TransactionType = "charge"
	TransactionRefund        TransactionType = "refund"
	TransactionAuthorization TransactionType = "authorization"
	TransactionCapture       TransactionType = "capture"
	TransactionVoid          TransactionType = "void"
)

// Transaction is the Transaction resource from Stax. Refunds and voids of a
// Transaction are listed in its ChildTransactions.
type Transaction struct {
	Record

	ID                     string          `json:"id"`
	InvoiceID              string          `json:"invoice_id"`
	ReferenceID            string          `json:"reference_id"`
	RecurringTransactionID string          `json:"recurring_transaction_id"`
	MerchantID             string          `json:"merchant_id"`
	UserID                 string          `json:"user_id"`
	CustomerID             string          `json:"customer_id"`
	PaymentMethodID        string          `json:"payment_method_id"`
	Type                   TransactionType `json:"type"`
	Status                 string          `json:"status"`
	Source                 string          `json:"source"`
	Method                 string          `json:"method"`
	Message                string          `json:"message"`
	Currency               string          `json:"currency"`
	LastFour               Text            `json:"last_four"`
	GatewayID              string          `json:"gateway_id"`
	IssuerAuthCode         Text            `json:"issuer_auth_code"`
	Channel                string          `json:"channel"`
	Total                  Amount          `json:"total"`
	TotalRefunded          Amount          `json:"total_refunded"`
	Amount                 Amount          `json:"amount"`
	Meta                   Object          `json:"meta"`

	Success    Flag `json:"success"`
	Manual     Flag `json:"is_manual"`
	PreAuth    Flag `json:"pre_auth"`
	Captured   Flag `json:"is_captured"`
	Refundable Flag `json:"is_refundable"`
	Voidable   Flag `json:"is_voidable"`
	IsVoided   Flag `json:"is_voided"`

	Customer          *Customer      `json:"customer"`
	PaymentMethod     *PaymentMethod `json:"payment_method"`
	ChildTransactions []*Transaction `json:"child_transactions"`

	SettledAt      Timestamp `json:"settled_at"`
	ReceiptEmailAt Timestamp `json:"receipt_email_at"`
	ReceiptSMSAt   Timestamp `json:"receipt_sms_at"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

var (
	_ Resource = (*Transaction)(nil)

	transactionEndpoint = "/transaction"
)

func sendTransaction(ctx context.Context, c *Client, method, uri string, params Params) (*Transaction, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	t := &Transaction{}

	err = res.unwrap("transaction").decode(t)
	return t, err
}

func listTransactions(res Result) ([]*Transaction, Pagination, error) {
	objs, p := res.list("transactions")

	tt, err := decodeAll[Transaction](objs)
	return tt, p, err
}

// ListTransactions returns a page of Transactions matching the given Params.
func ListTransactions(ctx context.Context, c *Client, params Params) ([]*Transaction, Pagination, error) {
	if err := check(params, between("per_page", 1, 200)); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, transactionEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}
	return listTransactions(res)
}

// SearchTransactions returns a page of Transactions matching the given search
// Params.
func SearchTransactions(ctx context.Context, c *Client, params Params) ([]*Transaction, Pagination, error) {
	if err := check(params, between("per_page", 1, 200)); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Post(ctx, transactionEndpoint+"/search", params)

	if err != nil {
		return nil, Pagination{}, err
	}
	return listTransactions(res)
}

// TransactionSummary returns the summary of the Transactions matching the
// given Params.
func TransactionSummary(ctx context.Context, c *Client, params Params) (Object, error) {
	res, err := c.Get(ctx, transactionEndpoint+"/summary", params)

	if err != nil {
		return nil, err
	}
	return res.unwrap("summary"), nil
}

// ExportTransactions starts an export of the Transactions matching the given
// Params, and returns the URL the export can be downloaded from.
func ExportTransactions(ctx context.Context, c *Client, params Params) (string, error) {
	res, err := c.Post(ctx, transactionEndpoint+"/export", params)

	if err != nil {
		return "", err
	}
	return res.Object().String("export_url"), nil
}

// RetrieveTransaction will get the Transaction of the given ID from Stax and
// return it.
func RetrieveTransaction(ctx context.Context, c *Client, id string) (*Transaction, error) {
	t := &Transaction{
		ID: id,
	}

	if err := t.Load(ctx, c); err != nil {
		return nil, err
	}
	return t, nil
}

// Endpoint implements the Resource interface.
func (t *Transaction) Endpoint(uris ...string) string {
	return endpoint(transactionEndpoint, t.ID, uris...)
}

// Load implements the Resource interface.
func (t *Transaction) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", t.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, t.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Transaction", t.ID)
	}
	return res.unwrap("transaction").decode(t)
}

// Update will update the current Transaction in Stax with the given Params.
func (t *Transaction) Update(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", t.ID); err != nil {
		return err
	}

	t1, err := sendTransaction(ctx, c, http.MethodPut, t.Endpoint(), params)

	if err != nil {
		return err
	}
	(*t) = (*t1)
	return nil
}

// action posts the given Params to an action of the current Transaction, and
// returns the Transaction that Stax creates for it.
func (t *Transaction) action(ctx context.Context, c *Client, name string, params Params) (*Transaction, error) {
	if err := requireID("id", t.ID); err != nil {
		return nil, err
	}
	return sendTransaction(ctx, c, http.MethodPost, t.Endpoint(name), params)
}

// VoidOrRefund voids the current Transaction if it has not yet settled,
// otherwise it is refunded. An optional total refunds part of the
// Transaction.
func (t *Transaction) VoidOrRefund(ctx context.Context, c *Client, params Params) (*Transaction, error) {
	if err := check(params, positive("total")); err != nil {
		return nil, err
	}
	return t.action(ctx, c, "void-or-refund", params)
}

// Capture captures the current pre-authorized Transaction. An optional total
// captures part of the authorized amount.
func (t *Transaction) Capture(ctx context.Context, c *Client, params Params) (*Transaction, error) {
	if err := check(params, positive("total")); err != nil {
		return nil, err
	}
	return t.action(ctx, c, "capture", params)
}

// Void voids the current Transaction.
func (t *Transaction) Void(ctx context.Context, c *Client) (*Transaction, error) {
	return t.action(ctx, c, "void", nil)
}

// Refund refunds the given total of the current Transaction.
func (t *Transaction) Refund(ctx context.Context, c *Client, params Params) (*Transaction, error) {
	if err := check(params, required("total"), positive("total")); err != nil {
		return nil, err
	}
	return t.action(ctx, c, "refund", params)
}

// EmailReceipt emails a receipt for the current Transaction to the Customer.
func (t *Transaction) EmailReceipt(ctx context.Context, c *Client, params Params) (bool, error) {
	if err := check(params, email("email"), emails("cc_emails")); err != nil {
		return false, err
	}
	return t.notify(ctx, c, "email", params)
}

// SMSReceipt texts a receipt for the current Transaction to the Customer.
func (t *Transaction) SMSReceipt(ctx context.Context, c *Client, params Params) (bool, error) {
	if err := check(params, phone("phone")); err != nil {
		return false, err
	}
	return t.notify(ctx, c, "sms", params)
}

func (t *Transaction) notify(ctx context.Context, c *Client, name string, params Params) (bool, error) {
	if err := requireID("id", t.ID); err != nil {
		return false, err
	}

	res, err := c.Post(ctx, t.Endpoint(name), params)

	if err != nil {
		return false, err
	}
	return res.Object().Bool("success"), nil
}

// Funding returns the funding records of the current Transaction.
func (t *Transaction) Funding(ctx context.Context, c *Client) ([]Object, error) {
	if err := requireID("id", t.ID); err != nil {
		return nil, err
	}

	res, err := c.Get(ctx, t.Endpoint("funding"), nil)

	if err != nil {
		return nil, err
	}

	objs, _ := res.list("funding")
	return objs, nil
}

// Pending reports whether the Transaction has yet to settle.
func (t *Transaction) Pending() bool { return t.Status == "pending" }

// Completed reports whether the Transaction has settled.
func (t *Transaction) Completed() bool { return t.Status == "completed" }

// Failed reports whether the Transaction failed.
func (t *Transaction) Failed() bool { return t.Status == "failed" }

// Voided reports whether the Transaction has been voided.
func (t *Transaction) Voided() bool { return t.Status == "voided" || bool(t.IsVoided) }

// Refunded reports whether the Transaction has been refunded.
func (t *Transaction) Refunded() bool { return t.Status == "refunded" }

// IsCharge reports whether the Transaction is a charge.
func (t *Transaction) IsCharge() bool { return t.Type == TransactionCharge }

// IsRefund reports whether the Transaction is a refund.
func (t *Transaction) IsRefund() bool { return t.Type == TransactionRefund }

// IsAuthorization reports whether the Transaction is a pre-authorization.
func (t *Transaction) IsAuthorization() bool { return t.Type == TransactionAuthorization }

// IsCapture reports whether the Transaction captures a pre-authorization.
func (t *Transaction) IsCapture() bool { return t.Type == TransactionCapture }

// IsVoid reports whether the Transaction voids another.
func (t *Transaction) IsVoid() bool { return t.Type == TransactionVoid }

// Successful reports whether the gateway accepted the Transaction.
func (t *Transaction) Successful() bool { return bool(t.Success) }

// AmountInDollars returns the amount of the Transaction, which is in cents, as
// dollars. The bool is false if the Transaction has no amount.
func (t *Transaction) AmountInDollars() (decimal.Decimal, bool) {
	if !t.Amount.Valid {
		return decimal.Zero, false
	}
	return t.Amount.Div(decimal.NewFromInt(100)), true
}
