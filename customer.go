package stax

import (
	"context"
	"net/http"
	"strings"
)

// Customer is the Customer resource from Stax.
type Customer struct {
	Record

	ID             string    `json:"id"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	CCEmails       []string  `json:"cc_emails"`
	CCSMS          []string  `json:"cc_sms"`
	Phone          Text      `json:"phone"`
	Address1       string    `json:"address_1"`
	Address2       string    `json:"address_2"`
	AddressCity    string    `json:"address_city"`
	AddressState   string    `json:"address_state"`
	AddressZip     Text      `json:"address_zip"`
	AddressCountry string    `json:"address_country"`
	Notes          string    `json:"notes"`
	Reference      string    `json:"reference"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
	DeletedAt      Timestamp `json:"deleted_at"`

	AllowInvoiceCreditCardPayments Flag `json:"allow_invoice_credit_card_payments"`
}

var (
	_ Resource = (*Customer)(nil)

	customerEndpoint = "/customer"

	customerRules = []rule{
		email("email"),
		emails("cc_emails"),
		array("cc_sms"),
		phone("phone"),
		length("address_state", 2),
		length("address_country", 3),
	}
)

func sendCustomer(ctx context.Context, c *Client, method, uri string, params Params) (*Customer, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	cu := &Customer{}

	err = res.unwrap("customer").decode(cu)
	return cu, err
}

// ListCustomers returns a page of Customers matching the given Params, such
// as keywords, sort_by, order, page, and per_page.
func ListCustomers(ctx context.Context, c *Client, params Params) ([]*Customer, Pagination, error) {
	if err := check(params, between("per_page", 1, 200), array("keywords")); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, customerEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("customers")

	cc, err := decodeAll[Customer](objs)
	return cc, p, err
}

// RetrieveCustomer will get the Customer of the given ID from Stax and return
// it.
func RetrieveCustomer(ctx context.Context, c *Client, id string) (*Customer, error) {
	cu := &Customer{
		ID: id,
	}

	if err := cu.Load(ctx, c); err != nil {
		return nil, err
	}
	return cu, nil
}

// CreateCustomer creates a new Customer in Stax with the given Params and
// returns it. At least one of firstname, lastname, email, or company must be
// given.
func CreateCustomer(ctx context.Context, c *Client, params Params) (*Customer, error) {
	rules := append([]rule{requireOne("firstname", "lastname", "email", "company")}, customerRules...)

	if err := check(params, rules...); err != nil {
		return nil, err
	}
	return sendCustomer(ctx, c, http.MethodPost, customerEndpoint, params)
}

// Endpoint implements the Resource interface.
func (cu *Customer) Endpoint(uris ...string) string {
	return endpoint(customerEndpoint, cu.ID, uris...)
}

// Load implements the Resource interface.
func (cu *Customer) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", cu.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, cu.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Customer", cu.ID)
	}
	return res.unwrap("customer").decode(cu)
}

// Update will update the current Customer in Stax with the given Params.
func (cu *Customer) Update(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", cu.ID); err != nil {
		return err
	}

	if err := check(params, customerRules...); err != nil {
		return err
	}

	cu1, err := sendCustomer(ctx, c, http.MethodPut, cu.Endpoint(), params)

	if err != nil {
		return err
	}
	(*cu) = (*cu1)
	return nil
}

// Delete will delete the current Customer in Stax. Customers are soft
// deleted, so the current Customer is updated with what Stax returns.
func (cu *Customer) Delete(ctx context.Context, c *Client) error {
	if err := requireID("id", cu.ID); err != nil {
		return err
	}

	res, err := c.Delete(ctx, cu.Endpoint())

	if err != nil {
		return err
	}

	if obj := res.unwrap("customer"); obj.String("id") != "" {
		return obj.decode(cu)
	}
	return nil
}

// PaymentMethods returns all of the PaymentMethods that belong to the current
// Customer.
func (cu *Customer) PaymentMethods(ctx context.Context, c *Client) ([]*PaymentMethod, error) {
	if err := requireID("id", cu.ID); err != nil {
		return nil, err
	}

	res, err := c.Get(ctx, cu.Endpoint("payment-method"), nil)

	if err != nil {
		return nil, err
	}

	objs, _ := res.list("payment_methods")
	return decodeAll[PaymentMethod](objs)
}

// FullName returns the first and last name of the Customer.
func (cu *Customer) FullName() string {
	return strings.TrimSpace(cu.Firstname + " " + cu.Lastname)
}

// HasAddress reports whether any part of the Customer's address is set.
func (cu *Customer) HasAddress() bool {
	return cu.Address1 != "" || cu.AddressCity != "" || cu.AddressState != "" || cu.AddressZip != ""
}

// MissingAddressComponents returns the names of the address fields required
// for a complete address that are not set.
func (cu *Customer) MissingAddressComponents() []string {
	fields := []struct {
		name  string
		value string
	}{
		{"address_1", cu.Address1},
		{"address_city", cu.AddressCity},
		{"address_state", cu.AddressState},
		{"address_zip", string(cu.AddressZip)},
	}

	missing := make([]string, 0, len(fields))

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// HasCompleteAddress reports whether the street, city, state, and zip of the
// Customer are all set.
func (cu *Customer) HasCompleteAddress() bool { return len(cu.MissingAddressComponents()) == 0 }

// FormattedAddress returns the Customer's address on a single line, skipping
// any parts that are not set.
func (cu *Customer) FormattedAddress() string {
	parts := make([]string, 0, 4)

	for _, s := range []string{cu.Address1, cu.Address2} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	if cu.AddressCity != "" {
		parts = append(parts, cu.AddressCity)
	}

	region := strings.TrimSpace(cu.AddressState + " " + string(cu.AddressZip))

	if region != "" {
		parts = append(parts, region)
	}

	if cu.AddressCountry != "" {
		parts = append(parts, cu.AddressCountry)
	}
	return strings.Join(parts, ", ")
}

// Deleted reports whether the Customer has been deleted.
func (cu *Customer) Deleted() bool { return cu.DeletedAt.Valid() }
