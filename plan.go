package stax

import (
	"context"
	"net/http"
)

// Plan is the Plan resource from Stax, a recurring price that Customers can
// subscribe to.
type Plan struct {
	Record

	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Amount          Amount    `json:"amount"`
	Currency        string    `json:"currency"`
	Interval        string    `json:"interval"`
	IntervalCount   Amount    `json:"interval_count"`
	TrialPeriodDays Amount    `json:"trial_period_days"`
	Metadata        Object    `json:"metadata"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

var (
	_ Resource = (*Plan)(nil)

	planEndpoint = "/plans"

	planIntervals = []string{"day", "week", "month", "year"}
)

func sendPlan(ctx context.Context, c *Client, method, uri string, params Params) (*Plan, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	pl := &Plan{}

	err = res.unwrap("plan").decode(pl)
	return pl, err
}

// ListPlans returns a page of Plans matching the given Params.
func ListPlans(ctx context.Context, c *Client, params Params) ([]*Plan, Pagination, error) {
	if err := check(params, between("per_page", 1, 200)); err != nil {
		return nil, Pagination{}, err
	}

	res, err := c.Get(ctx, planEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("plans")

	pls, err := decodeAll[Plan](objs)
	return pls, p, err
}

// RetrievePlan will get the Plan of the given ID from Stax and return it.
func RetrievePlan(ctx context.Context, c *Client, id string) (*Plan, error) {
	pl := &Plan{
		ID: id,
	}

	if err := pl.Load(ctx, c); err != nil {
		return nil, err
	}
	return pl, nil
}

// CreatePlan creates a new Plan in Stax with the given Params and returns it.
// The name, amount, and interval params are required.
func CreatePlan(ctx context.Context, c *Client, params Params) (*Plan, error) {
	err := check(params,
		required("name", "amount", "interval"),
		positive("amount"),
		oneOf("interval", planIntervals...),
		positive("interval_count"),
	)

	if err != nil {
		return nil, err
	}
	return sendPlan(ctx, c, http.MethodPost, planEndpoint, params)
}

// Endpoint implements the Resource interface.
func (pl *Plan) Endpoint(uris ...string) string {
	return endpoint(planEndpoint, pl.ID, uris...)
}

// Load implements the Resource interface.
func (pl *Plan) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", pl.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, pl.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Plan", pl.ID)
	}
	return res.unwrap("plan").decode(pl)
}

// Update will update the current Plan in Stax with the given Params.
func (pl *Plan) Update(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", pl.ID); err != nil {
		return err
	}

	err := check(params,
		positive("amount"),
		oneOf("interval", planIntervals...),
		positive("interval_count"),
	)

	if err != nil {
		return err
	}

	pl1, err := sendPlan(ctx, c, http.MethodPut, pl.Endpoint(), params)

	if err != nil {
		return err
	}
	(*pl) = (*pl1)
	return nil
}

// Delete will delete the current Plan in Stax.
func (pl *Plan) Delete(ctx context.Context, c *Client) error {
	if err := requireID("id", pl.ID); err != nil {
		return err
	}

	_, err := c.Delete(ctx, pl.Endpoint())
	return err
}
