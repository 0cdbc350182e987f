package stax

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the status of an Invoice. Invoices move from DRAFT to SENT
// to PAID, and may be voided or deleted before being paid. Stax enforces
// these transitions, an Invoice only reports its current status.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceVoid    InvoiceStatus = "VOID"
	InvoiceDeleted InvoiceStatus = "DELETED"
)

// Invoice is the Invoice resource from Stax.
type Invoice struct {
	Record

	ID                    string        `json:"id"`
	MerchantID            string        `json:"merchant_id"`
	UserID                string        `json:"user_id"`
	CustomerID            string        `json:"customer_id"`
	PaymentMethodID       string        `json:"payment_method_id"`
	ScheduleID            string        `json:"schedule_id"`
	ReminderID            string        `json:"reminder_id"`
	Status                InvoiceStatus `json:"status"`
	Total                 Amount        `json:"total"`
	TotalPaid             Amount        `json:"total_paid"`
	BalanceDue            Amount        `json:"balance_due"`
	Meta                  InvoiceMeta   `json:"meta"`
	URL                   string        `json:"url"`
	Webpayment            Flag          `json:"is_webpayment"`
	PaymentAttemptFailed  Flag          `json:"payment_attempt_failed"`
	PaymentAttemptMessage string        `json:"payment_attempt_message"`

	Customer          *Customer      `json:"customer"`
	ChildTransactions []*Transaction `json:"child_transactions"`

	SentAt    Timestamp `json:"sent_at"`
	ViewedAt  Timestamp `json:"viewed_at"`
	PaidAt    Timestamp `json:"paid_at"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
	DeletedAt Timestamp `json:"deleted_at"`
}

// InvoiceMeta is the metadata of an Invoice, holding its line items and
// amounts.
type InvoiceMeta struct {
	Tax       Amount     `json:"tax"`
	Subtotal  Amount     `json:"subtotal"`
	Memo      string     `json:"memo"`
	Reference string     `json:"reference"`
	LineItems []LineItem `json:"line_items"`

	PartialPayment Flag `json:"is_partial_payment_enabled"`
}

type LineItem struct {
	ID       Text   `json:"id"`
	Item     string `json:"item"`
	Details  string `json:"details"`
	Quantity Amount `json:"quantity"`
	Price    Amount `json:"price"`
}

var (
	_ Resource = (*Invoice)(nil)

	invoiceEndpoint = "/invoice"

	invoiceStatuses = []string{
		string(InvoiceDraft),
		string(InvoiceSent),
		string(InvoicePaid),
		string(InvoiceVoid),
		string(InvoiceDeleted),
	}
)

func sendInvoice(ctx context.Context, c *Client, method, uri string, params Params) (*Invoice, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	inv := &Invoice{}

	err = res.unwrap("invoice").decode(inv)
	return inv, err
}

// UnmarshalJSON decodes the InvoiceMeta, treating an empty array as empty
// metadata.
func (m *InvoiceMeta) UnmarshalJSON(b []byte) error {
	type meta InvoiceMeta

	if len(b) > 0 && b[0] == '[' {
		*m = InvoiceMeta{}
		return nil
	}

	var m1 meta

	if err := json.Unmarshal(b, &m1); err != nil {
		return err
	}

	*m = InvoiceMeta(m1)
	return nil
}

// ListInvoices returns a page of Invoices matching the given Params, such as
// status, customer_id, page, and per_page.
func ListInvoices(ctx context.Context, c *Client, params Params) ([]*Invoice, Pagination, error) {
	err := check(params,
		between("per_page", 1, 200),
		between("limit", 1, 200),
		oneOf("status", invoiceStatuses...),
	)

	if err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, invoiceEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("invoices")

	invs, err := decodeAll[Invoice](objs)
	return invs, p, err
}

// RetrieveInvoice will get the Invoice of the given ID from Stax and return
// it.
func RetrieveInvoice(ctx context.Context, c *Client, id string) (*Invoice, error) {
	inv := &Invoice{
		ID: id,
	}

	if err := inv.Load(ctx, c); err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateInvoice creates a new Invoice in Stax with the given Params and
// returns it. The customer_id, total, and meta params are required.
func CreateInvoice(ctx context.Context, c *Client, params Params) (*Invoice, error) {
	err := check(params,
		required("customer_id", "total", "meta"),
		positive("total"),
		object("meta"),
		array("meta.line_items"),
		oneOf("status", invoiceStatuses...),
	)

	if err != nil {
		return nil, err
	}
	return sendInvoice(ctx, c, http.MethodPost, invoiceEndpoint, params)
}

// Endpoint implements the Resource interface.
func (inv *Invoice) Endpoint(uris ...string) string {
	return endpoint(invoiceEndpoint, inv.ID, uris...)
}

// Load implements the Resource interface.
func (inv *Invoice) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", inv.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, inv.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Invoice", inv.ID)
	}
	return res.unwrap("invoice").decode(inv)
}

// Update will update the current Invoice in Stax with the given Params.
func (inv *Invoice) Update(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", inv.ID); err != nil {
		return err
	}

	err := check(params,
		positive("total"),
		object("meta"),
		array("meta.line_items"),
		oneOf("status", invoiceStatuses...),
	)

	if err != nil {
		return err
	}
	return inv.do(ctx, c, http.MethodPut, inv.Endpoint(), params)
}

// Delete will delete the current Invoice in Stax, and update it with what
// Stax returns.
func (inv *Invoice) Delete(ctx context.Context, c *Client) error {
	if err := requireID("id", inv.ID); err != nil {
		return err
	}

	res, err := c.Delete(ctx, inv.Endpoint())

	if err != nil {
		return err
	}

	if obj := res.unwrap("invoice"); obj.String("id") != "" {
		return obj.decode(inv)
	}
	return nil
}

// Send sends the current Invoice to the Customer.
func (inv *Invoice) Send(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", inv.ID); err != nil {
		return err
	}
	return inv.do(ctx, c, http.MethodPost, inv.Endpoint("send"), params)
}

// SendEmail emails the current Invoice to the Customer, and to any addresses
// given in the cc_emails param.
func (inv *Invoice) SendEmail(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", inv.ID); err != nil {
		return err
	}

	if err := check(params, emails("cc_emails")); err != nil {
		return err
	}
	return inv.do(ctx, c, http.MethodPost, inv.Endpoint("send", "email"), params)
}

// SendSMS texts the current Invoice to the given phone number, with an
// optional message.
func (inv *Invoice) SendSMS(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", inv.ID); err != nil {
		return err
	}

	if err := check(params, required("phone"), phone("phone")); err != nil {
		return err
	}
	return inv.do(ctx, c, http.MethodPost, inv.Endpoint("send", "sms"), params)
}

// Pay pays the current Invoice with the PaymentMethod given in the
// payment_method_id param. The apply_balance param pays part of the Invoice,
// and idempotency_id guards against paying twice, see NewIdempotencyKey. The
// current Invoice is updated with what Stax returns.
func (inv *Invoice) Pay(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", inv.ID); err != nil {
		return err
	}

	err := check(params,
		required("payment_method_id"),
		positive("apply_balance"),
		boolean("email_receipt"),
		maxLength("idempotency_id", 255),
		object("meta"),
	)

	if err != nil {
		return err
	}
	return inv.do(ctx, c, http.MethodPost, inv.Endpoint("pay"), params)
}

func (inv *Invoice) do(ctx context.Context, c *Client, method, uri string, params Params) error {
	inv1, err := sendInvoice(ctx, c, method, uri, params)

	if err != nil {
		return err
	}

	if inv1.ID != "" {
		(*inv) = (*inv1)
	}
	return nil
}

// Draft reports whether the Invoice has not been sent yet.
func (inv *Invoice) Draft() bool { return inv.Status == InvoiceDraft }

// Sent reports whether the Invoice has been sent and is awaiting payment.
func (inv *Invoice) Sent() bool { return inv.Status == InvoiceSent }

// Paid reports whether the Invoice has been paid in full.
func (inv *Invoice) Paid() bool { return inv.Status == InvoicePaid }

// Voided reports whether the Invoice has been voided.
func (inv *Invoice) Voided() bool { return inv.Status == InvoiceVoid }

// Deleted reports whether the Invoice has been deleted.
func (inv *Invoice) Deleted() bool { return inv.Status == InvoiceDeleted || inv.DeletedAt.Valid() }

// PartiallyPaid reports whether some, but not all, of the Invoice has been
// paid.
func (inv *Invoice) PartiallyPaid() bool {
	return inv.TotalPaid.IsPositive() && inv.BalanceDue.IsPositive()
}

// PartialPaymentEnabled reports whether the Invoice accepts partial
// payments.
func (inv *Invoice) PartialPaymentEnabled() bool {
	return bool(inv.Meta.PartialPayment) || inv.Raw.Bool("is_partial_payment_enabled")
}

func (inv *Invoice) TotalInDollars() decimal.Decimal { return inv.Total.Dollars() }

func (inv *Invoice) TotalPaidInDollars() decimal.Decimal { return inv.TotalPaid.Dollars() }

func (inv *Invoice) BalanceDueInDollars() decimal.Decimal { return inv.BalanceDue.Dollars() }

// CustomerName returns the full name of the Invoice's Customer, if the
// Customer was included in the response.
func (inv *Invoice) CustomerName() string {
	if inv.Customer == nil {
		return ""
	}
	return inv.Customer.FullName()
}

func (inv *Invoice) LineItems() []LineItem { return inv.Meta.LineItems }

func (inv *Invoice) Memo() string { return strings.TrimSpace(inv.Meta.Memo) }
