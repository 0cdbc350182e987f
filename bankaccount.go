package stax

import (
	"context"
	"net/http"
)

// BankAccount is a bank account stored against a Customer.
type BankAccount struct {
	Record

	ID                 string    `json:"id"`
	CustomerID         string    `json:"customer_id"`
	AccountType        string    `json:"account_type"`
	AccountNumberLast4 Text      `json:"account_number_last_4"`
	RoutingNumber      Text      `json:"routing_number"`
	BankName           string    `json:"bank_name"`
	AccountHolderName  string    `json:"account_holder_name"`
	Status             string    `json:"status"`
	Default            Flag      `json:"is_default"`
	CreatedAt          Timestamp `json:"created_at"`
	UpdatedAt          Timestamp `json:"updated_at"`
}

var (
	_ Resource = (*BankAccount)(nil)

	bankAccountRules = []rule{
		oneOf("account_type", "checking", "savings"),
		digits("routing_number", 9, 9),
		boolean("is_default"),
	}
)

func bankAccountsEndpoint(customerID string) string {
	return endpoint("/customers", customerID, "bank_accounts")
}

func sendBankAccount(ctx context.Context, c *Client, method, uri string, params Params) (*BankAccount, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	ba := &BankAccount{}

	err = res.unwrap("bank_account").decode(ba)
	return ba, err
}

// ListBankAccounts returns the BankAccounts of the Customer of the given ID.
func ListBankAccounts(ctx context.Context, c *Client, customerID string, params Params) ([]*BankAccount, Pagination, error) {
	if err := requireID("customer_id", customerID); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, bankAccountsEndpoint(customerID), params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("bank_accounts")

	bas, err := decodeAll[BankAccount](objs)
	return bas, p, err
}

// RetrieveBankAccount will get the BankAccount of the given ID for the given
// Customer.
func RetrieveBankAccount(ctx context.Context, c *Client, customerID, id string) (*BankAccount, error) {
	ba := &BankAccount{
		ID:         id,
		CustomerID: customerID,
	}

	if err := ba.Load(ctx, c); err != nil {
		return nil, err
	}
	return ba, nil
}

// CreateBankAccount stores a new BankAccount against the Customer of the
// given ID.
func CreateBankAccount(ctx context.Context, c *Client, customerID string, params Params) (*BankAccount, error) {
	if err := requireID("customer_id", customerID); err != nil {
		return nil, err
	}

	rules := append([]rule{required("account_number", "routing_number")}, bankAccountRules...)

	if err := check(params, rules...); err != nil {
		return nil, err
	}
	return sendBankAccount(ctx, c, http.MethodPost, bankAccountsEndpoint(customerID), params)
}

// Endpoint implements the Resource interface.
func (ba *BankAccount) Endpoint(uris ...string) string {
	return endpoint(bankAccountsEndpoint(ba.CustomerID), ba.ID, uris...)
}

// Load implements the Resource interface.
func (ba *BankAccount) Load(ctx context.Context, c *Client) error {
	if err := ba.ids(); err != nil {
		return err
	}

	res, err := c.Get(ctx, ba.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Bank account", ba.ID)
	}
	return res.unwrap("bank_account").decode(ba)
}

// Update will update the current BankAccount in Stax with the given Params.
func (ba *BankAccount) Update(ctx context.Context, c *Client, params Params) error {
	if err := check(params, bankAccountRules...); err != nil {
		return err
	}
	return ba.do(ctx, c, http.MethodPut, ba.Endpoint(), params)
}

// Verify verifies the current BankAccount, typically with the amounts of the
// micro-deposits made to it.
func (ba *BankAccount) Verify(ctx context.Context, c *Client, params Params) error {
	if err := check(params, array("amounts")); err != nil {
		return err
	}
	return ba.do(ctx, c, http.MethodPost, ba.Endpoint("verify"), params)
}

// Delete will delete the current BankAccount in Stax.
func (ba *BankAccount) Delete(ctx context.Context, c *Client) error {
	if err := ba.ids(); err != nil {
		return err
	}

	_, err := c.Delete(ctx, ba.Endpoint())
	return err
}

func (ba *BankAccount) do(ctx context.Context, c *Client, method, uri string, params Params) error {
	if err := ba.ids(); err != nil {
		return err
	}

	ba1, err := sendBankAccount(ctx, c, method, uri, params)

	if err != nil {
		return err
	}
	(*ba) = (*ba1)
	return nil
}

// Verified reports whether the BankAccount has been verified.
func (ba *BankAccount) Verified() bool { return ba.Status == "verified" }

func (ba *BankAccount) ids() error {
	if err := requireID("customer_id", ba.CustomerID); err != nil {
		return err
	}
	return requireID("id", ba.ID)
}
