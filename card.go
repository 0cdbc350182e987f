package stax

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Card is a card stored against a Customer.
type Card struct {
	Record

	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	CardType        string    `json:"card_type"`
	Last4           Text      `json:"last_4"`
	ExpirationMonth Text      `json:"expiration_month"`
	ExpirationYear  Text      `json:"expiration_year"`
	CardholderName  string    `json:"cardholder_name"`
	BillingAddress  Object    `json:"billing_address"`
	Default         Flag      `json:"is_default"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

var _ Resource = (*Card)(nil)

func cardsEndpoint(customerID string) string {
	return endpoint("/customers", customerID, "cards")
}

func sendCard(ctx context.Context, c *Client, method, uri string, params Params) (*Card, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	card := &Card{}

	err = res.unwrap("card").decode(card)
	return card, err
}

// ListCards returns the Cards of the Customer of the given ID.
func ListCards(ctx context.Context, c *Client, customerID string, params Params) ([]*Card, Pagination, error) {
	if err := requireID("customer_id", customerID); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, cardsEndpoint(customerID), params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("cards")

	cards, err := decodeAll[Card](objs)
	return cards, p, err
}

// RetrieveCard will get the Card of the given ID for the given Customer.
func RetrieveCard(ctx context.Context, c *Client, customerID, id string) (*Card, error) {
	card := &Card{
		ID:         id,
		CustomerID: customerID,
	}

	if err := card.Load(ctx, c); err != nil {
		return nil, err
	}
	return card, nil
}

// CreateCard stores a new Card against the Customer of the given ID.
func CreateCard(ctx context.Context, c *Client, customerID string, params Params) (*Card, error) {
	if err := requireID("customer_id", customerID); err != nil {
		return nil, err
	}

	err := check(params,
		required("card_number", "expiration_month", "expiration_year"),
		digits("expiration_month", 1, 2),
		digits("expiration_year", 4, 4),
		boolean("is_default"),
	)

	if err != nil {
		return nil, err
	}
	return sendCard(ctx, c, http.MethodPost, cardsEndpoint(customerID), params)
}

// Endpoint implements the Resource interface.
func (card *Card) Endpoint(uris ...string) string {
	return endpoint(cardsEndpoint(card.CustomerID), card.ID, uris...)
}

// Load implements the Resource interface.
func (card *Card) Load(ctx context.Context, c *Client) error {
	if err := card.ids(); err != nil {
		return err
	}

	res, err := c.Get(ctx, card.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Card", card.ID)
	}
	return res.unwrap("card").decode(card)
}

// Update will update the current Card in Stax with the given Params.
func (card *Card) Update(ctx context.Context, c *Client, params Params) error {
	if err := card.ids(); err != nil {
		return err
	}

	err := check(params,
		digits("expiration_month", 1, 2),
		digits("expiration_year", 4, 4),
		boolean("is_default"),
	)

	if err != nil {
		return err
	}

	card1, err := sendCard(ctx, c, http.MethodPut, card.Endpoint(), params)

	if err != nil {
		return err
	}
	(*card) = (*card1)
	return nil
}

// Delete will delete the current Card in Stax.
func (card *Card) Delete(ctx context.Context, c *Client) error {
	if err := card.ids(); err != nil {
		return err
	}

	_, err := c.Delete(ctx, card.Endpoint())
	return err
}

// ExpiredAt reports whether the Card expires before the given time. A Card
// expires at the end of its expiration month. This is false if the expiry is
// not known.
func (card *Card) ExpiredAt(t time.Time) bool {
	month, err := strconv.Atoi(string(card.ExpirationMonth))

	if err != nil || month < 1 || month > 12 {
		return false
	}

	year, err := strconv.Atoi(string(card.ExpirationYear))

	if err != nil {
		return false
	}

	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return !t.Before(end)
}

// Expired reports whether the Card has expired.
func (card *Card) Expired() bool { return card.ExpiredAt(time.Now()) }

func (card *Card) ids() error {
	if err := requireID("customer_id", card.CustomerID); err != nil {
		return err
	}
	return requireID("id", card.ID)
}
