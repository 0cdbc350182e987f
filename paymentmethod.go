package stax

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// PaymentMethod is the PaymentMethod resource from Stax. A PaymentMethod is
// either a card or a bank account, denoted by Method. The card fields are only
// meaningful for cards, and the bank fields for bank accounts.
type PaymentMethod struct {
	Record

	ID             string `json:"id"`
	CustomerID     string `json:"customer_id"`
	MerchantID     string `json:"merchant_id"`
	UserID         string `json:"user_id"`
	Nickname       string `json:"nickname"`
	Method         string `json:"method"`
	PersonName     string `json:"person_name"`
	Default        Flag   `json:"is_default"`
	HasCVV         Flag   `json:"has_cvv"`
	UsableInVT     Flag   `json:"is_usable_in_vt"`
	Tokenized      Flag   `json:"is_tokenized"`
	BinType        string `json:"bin_type"`
	CardType       string `json:"card_type"`
	CardLastFour   Text   `json:"card_last_four"`
	CardExp        Text   `json:"card_exp"`
	BankName       string `json:"bank_name"`
	BankType       string `json:"bank_type"`
	BankHolderType string `json:"bank_holder_type"`
	Address1       string `json:"address_1"`
	Address2       string `json:"address_2"`
	AddressCity    string `json:"address_city"`
	AddressState   string `json:"address_state"`
	AddressZip     Text   `json:"address_zip"`
	AddressCountry string `json:"address_country"`
	Meta           Object `json:"meta"`

	CardExpDatetime Timestamp `json:"card_exp_datetime"`
	PurgedAt        Timestamp `json:"purged_at"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
	DeletedAt       Timestamp `json:"deleted_at"`
}

// Surcharge is the result of reviewing the surcharge that would be applied to
// a PaymentMethod for a given total.
type Surcharge struct {
	Record

	BinType                  string `json:"bin_type"`
	SurchargeRate            Amount `json:"surcharge_rate"`
	SurchargeAmount          Amount `json:"surcharge_amount"`
	TotalWithSurchargeAmount Amount `json:"total_with_surcharge_amount"`
}

const (
	MethodCard = "card"
	MethodBank = "bank"
)

var (
	_ Resource = (*PaymentMethod)(nil)

	paymentMethodEndpoint = "/payment-method"
	surchargeEndpoint     = "/surcharge/review"

	paymentMethodAddressRules = []rule{
		length("address_state", 2),
		length("address_country", 3),
	}

	bankRules = []rule{
		oneOf("bank_type", "checking", "savings"),
		oneOf("bank_holder_type", "personal", "business"),
	}
)

func sendPaymentMethod(ctx context.Context, c *Client, method, uri string, params Params) (*PaymentMethod, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	pm := &PaymentMethod{}

	err = res.unwrap("payment_method").decode(pm)
	return pm, err
}

// ListPaymentMethods returns a page of PaymentMethods matching the given
// Params. The au_last_event filters narrow the list to PaymentMethods touched
// by the account updater.
func ListPaymentMethods(ctx context.Context, c *Client, params Params) ([]*PaymentMethod, Pagination, error) {
	err := check(params,
		between("per_page", 1, 200),
		oneOf("au_last_event", "ReplacePaymentMethod", "ContactCardHolder", "ClosePaymentMethod"),
		datetime("au_last_event_start_at"),
		datetime("au_last_event_end_at"),
		oneOf("status", "all", "deleted"),
	)

	if err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, paymentMethodEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("payment_methods")

	pms, err := decodeAll[PaymentMethod](objs)
	return pms, p, err
}

// RetrievePaymentMethod will get the PaymentMethod of the given ID from Stax
// and return it.
func RetrievePaymentMethod(ctx context.Context, c *Client, id string) (*PaymentMethod, error) {
	pm := &PaymentMethod{
		ID: id,
	}

	if err := pm.Load(ctx, c); err != nil {
		return nil, err
	}
	return pm, nil
}

// CreatePaymentMethod creates a new PaymentMethod in Stax for a customer. The
// person_name param must hold a first and last name. The method param must be
// either card or bank, which determines the other required params.
func CreatePaymentMethod(ctx context.Context, c *Client, params Params) (*PaymentMethod, error) {
	rules := []rule{
		required("customer_id", "method"),
		oneOf("method", MethodCard, MethodBank),
		required("person_name"),
		fullName("person_name"),
		when(equals("method", MethodCard),
			required("card_number", "card_exp"),
			digits("card_exp", 4, 4),
		),
		when(equals("method", MethodBank),
			required("bank_account", "bank_routing", "bank_name", "bank_type", "bank_holder_type"),
		),
	}

	rules = append(rules, bankRules...)
	rules = append(rules, paymentMethodAddressRules...)

	if err := check(params, rules...); err != nil {
		return nil, err
	}
	return sendPaymentMethod(ctx, c, http.MethodPost, paymentMethodEndpoint, params)
}

// ReviewSurcharge returns the Surcharge that would be applied when charging
// the given total to the given PaymentMethod.
func ReviewSurcharge(ctx context.Context, c *Client, params Params) (*Surcharge, error) {
	if err := check(params, required("payment_method_id", "total"), positive("total")); err != nil {
		return nil, err
	}

	res, err := c.Get(ctx, surchargeEndpoint, params)

	if err != nil {
		return nil, err
	}

	s := &Surcharge{}

	err = res.Object().decode(s)
	return s, err
}

// Endpoint implements the Resource interface.
func (pm *PaymentMethod) Endpoint(uris ...string) string {
	return endpoint(paymentMethodEndpoint, pm.ID, uris...)
}

// Load implements the Resource interface.
func (pm *PaymentMethod) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", pm.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, pm.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Payment method", pm.ID)
	}
	return res.unwrap("payment_method").decode(pm)
}

// Update will update the current PaymentMethod in Stax with the given Params.
// Only the params that are given are validated.
func (pm *PaymentMethod) Update(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", pm.ID); err != nil {
		return err
	}

	rules := []rule{
		fullName("person_name"),
		digits("card_exp", 4, 4),
		digits("card_last_four", 1, 4),
		boolean("is_default"),
	}

	rules = append(rules, bankRules...)
	rules = append(rules, paymentMethodAddressRules...)

	if err := check(params, rules...); err != nil {
		return err
	}

	pm1, err := sendPaymentMethod(ctx, c, http.MethodPut, pm.Endpoint(), params)

	if err != nil {
		return err
	}
	(*pm) = (*pm1)
	return nil
}

// Delete will delete the current PaymentMethod in Stax, and update it with
// what Stax returns.
func (pm *PaymentMethod) Delete(ctx context.Context, c *Client) error {
	if err := requireID("id", pm.ID); err != nil {
		return err
	}

	res, err := c.Delete(ctx, pm.Endpoint())

	if err != nil {
		return err
	}

	if obj := res.unwrap("payment_method"); obj.String("id") != "" {
		return obj.decode(pm)
	}
	return nil
}

// Share shares the current PaymentMethod with a third party vault, identified
// by the gateway_token param.
func (pm *PaymentMethod) Share(ctx context.Context, c *Client, params Params) (Object, error) {
	if err := requireID("id", pm.ID); err != nil {
		return nil, err
	}

	if err := check(params, required("gateway_token")); err != nil {
		return nil, err
	}

	res, err := c.Post(ctx, endpoint("/payment_method", pm.ID, "external_vault"), params)

	if err != nil {
		return nil, err
	}
	return res.Object(), nil
}

// IsCard reports whether the PaymentMethod is a card.
func (pm *PaymentMethod) IsCard() bool { return pm.Method == MethodCard }

// IsBank reports whether the PaymentMethod is a bank account.
func (pm *PaymentMethod) IsBank() bool { return pm.Method == MethodBank }

// IsDebit reports whether the card BIN is for a debit card.
func (pm *PaymentMethod) IsDebit() bool { return strings.EqualFold(pm.BinType, "debit") }

// IsCredit reports whether the card BIN is for a credit card.
func (pm *PaymentMethod) IsCredit() bool { return strings.EqualFold(pm.BinType, "credit") }

// Deleted reports whether the PaymentMethod has been deleted.
func (pm *PaymentMethod) Deleted() bool { return pm.DeletedAt.Valid() }

// CardExpMonth returns the month the card expires, or 0 if not known.
func (pm *PaymentMethod) CardExpMonth() int {
	if pm.CardExpDatetime.Valid() {
		return int(pm.CardExpDatetime.Month())
	}

	if len(pm.CardExp) != 4 {
		return 0
	}

	n, _ := strconv.Atoi(string(pm.CardExp[:2]))
	return n
}

// CardExpYear returns the four digit year the card expires, or 0 if not
// known.
func (pm *PaymentMethod) CardExpYear() int {
	if pm.CardExpDatetime.Valid() {
		return pm.CardExpDatetime.Year()
	}

	if len(pm.CardExp) != 4 {
		return 0
	}

	n, err := strconv.Atoi(string(pm.CardExp[2:]))

	if err != nil {
		return 0
	}
	return 2000 + n
}

// CardExpFormatted returns the card expiry as MMYYYY, or the empty string if
// not known.
func (pm *PaymentMethod) CardExpFormatted() string {
	month, year := pm.CardExpMonth(), pm.CardExpYear()

	if month == 0 || year == 0 {
		return ""
	}
	return fmt.Sprintf("%02d%04d", month, year)
}

// ExpiredAt reports whether the card expiry is before the given time. This is
// false if the PaymentMethod has no card expiry.
func (pm *PaymentMethod) ExpiredAt(t time.Time) bool {
	return pm.CardExpDatetime.Valid() && pm.CardExpDatetime.Before(t)
}

// Expired reports whether the card has expired.
func (pm *PaymentMethod) Expired() bool { return pm.ExpiredAt(time.Now()) }

func (pm *PaymentMethod) CardDisplay() string { return pm.Meta.String("card_display") }

func (pm *PaymentMethod) RoutingDisplay() string { return pm.Meta.String("routing_display") }

func (pm *PaymentMethod) AccountDisplay() string { return pm.Meta.String("account_display") }

func (pm *PaymentMethod) StorageState() string { return pm.Meta.String("storage_state") }

func (pm *PaymentMethod) Fingerprint() string { return pm.Meta.String("fingerprint") }

func (pm *PaymentMethod) EligibleForCardUpdater() bool {
	return pm.Meta.Bool("eligible_for_card_updater")
}
