package stax

import (
	"context"
	"net/http"
)

// Subscription is the Subscription resource from Stax, a Customer's
// enrollment in a Plan.
type Subscription struct {
	Record

	ID                 string    `json:"id"`
	CustomerID         string    `json:"customer_id"`
	PlanID             string    `json:"plan_id"`
	Status             string    `json:"status"`
	CancelAtPeriodEnd  Flag      `json:"cancel_at_period_end"`
	Metadata           Object    `json:"metadata"`
	CurrentPeriodStart Timestamp `json:"current_period_start"`
	CurrentPeriodEnd   Timestamp `json:"current_period_end"`
	CanceledAt         Timestamp `json:"canceled_at"`
	EndedAt            Timestamp `json:"ended_at"`
	TrialStart         Timestamp `json:"trial_start"`
	TrialEnd           Timestamp `json:"trial_end"`
	CreatedAt          Timestamp `json:"created_at"`
	UpdatedAt          Timestamp `json:"updated_at"`
}

var (
	_ Resource = (*Subscription)(nil)

	subscriptionEndpoint = "/subscriptions"
)

func sendSubscription(ctx context.Context, c *Client, method, uri string, params Params) (*Subscription, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	sub := &Subscription{}

	err = res.unwrap("subscription").decode(sub)
	return sub, err
}

// ListSubscriptions returns a page of Subscriptions matching the given Params.
func ListSubscriptions(ctx context.Context, c *Client, params Params) ([]*Subscription, Pagination, error) {
	if err := check(params, between("per_page", 1, 200)); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, subscriptionEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("subscriptions")

	subs, err := decodeAll[Subscription](objs)
	return subs, p, err
}

// RetrieveSubscription will get the Subscription of the given ID from Stax and
// return it.
func RetrieveSubscription(ctx context.Context, c *Client, id string) (*Subscription, error) {
	sub := &Subscription{
		ID: id,
	}

	if err := sub.Load(ctx, c); err != nil {
		return nil, err
	}
	return sub, nil
}

// CreateSubscription will create a new Subscription in Stax with the given
// Params. The customer_id and plan_id params are required.
func CreateSubscription(ctx context.Context, c *Client, params Params) (*Subscription, error) {
	if err := check(params, required("customer_id", "plan_id")); err != nil {
		return nil, err
	}
	return sendSubscription(ctx, c, http.MethodPost, subscriptionEndpoint, params)
}

// Endpoint implements the Resource interface.
func (s *Subscription) Endpoint(uris ...string) string {
	return endpoint(subscriptionEndpoint, s.ID, uris...)
}

// Load implements the Resource interface.
func (s *Subscription) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", s.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, s.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Subscription", s.ID)
	}
	return res.unwrap("subscription").decode(s)
}

// Update will update the current Subscription in Stax with the given Params.
func (s *Subscription) Update(ctx context.Context, c *Client, params Params) error {
	return s.do(ctx, c, http.MethodPut, s.Endpoint(), params)
}

// Cancel will cancel the current Subscription. Passing cancel_at_period_end
// in the Params cancels it at the end of the current period instead.
func (s *Subscription) Cancel(ctx context.Context, c *Client, params Params) error {
	if err := check(params, boolean("cancel_at_period_end")); err != nil {
		return err
	}
	return s.do(ctx, c, http.MethodPost, s.Endpoint("cancel"), params)
}

func (s *Subscription) do(ctx context.Context, c *Client, method, uri string, params Params) error {
	if err := requireID("id", s.ID); err != nil {
		return err
	}

	s1, err := sendSubscription(ctx, c, method, uri, params)

	if err != nil {
		return err
	}
	(*s) = (*s1)
	return nil
}

// Active reports whether the Subscription is being billed.
func (s *Subscription) Active() bool { return s.Status == "active" }

func (s *Subscription) Canceled() bool { return s.Status == "canceled" || s.CanceledAt.Valid() }

func (s *Subscription) PastDue() bool { return s.Status == "past_due" }
