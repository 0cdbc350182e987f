package stax

import (
	"context"
	"net/http"
)

// Webhook is the Webhook resource from Stax, a registration for events to be
// sent to a URL. Delivering those events is left to the receiver.
type Webhook struct {
	Record

	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Events      []string  `json:"events"`
	Active      Flag      `json:"active"`
	Description string    `json:"description"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

var (
	_ Resource = (*Webhook)(nil)

	webhookEndpoint = "/webhooks"
)

func sendWebhook(ctx context.Context, c *Client, method, uri string, params Params) (*Webhook, error) {
	res, err := c.send(ctx, method, uri, params)

	if err != nil {
		return nil, err
	}

	wh := &Webhook{}

	err = res.unwrap("webhook").decode(wh)
	return wh, err
}

// ListWebhooks returns a page of Webhooks matching the given Params.
func ListWebhooks(ctx context.Context, c *Client, params Params) ([]*Webhook, Pagination, error) {
	res, err := c.Get(ctx, webhookEndpoint, params)

	if err != nil {
		return nil, Pagination{}, err
	}

	objs, p := res.list("webhooks")

	whs, err := decodeAll[Webhook](objs)
	return whs, p, err
}

// RetrieveWebhook will get the Webhook of the given ID from Stax and return
// it.
func RetrieveWebhook(ctx context.Context, c *Client, id string) (*Webhook, error) {
	wh := &Webhook{
		ID: id,
	}

	if err := wh.Load(ctx, c); err != nil {
		return nil, err
	}
	return wh, nil
}

// CreateWebhook registers a new Webhook in Stax for the given url and events
// params.
func CreateWebhook(ctx context.Context, c *Client, params Params) (*Webhook, error) {
	err := check(params,
		required("url", "events"),
		link("url"),
		array("events"),
		boolean("active"),
	)

	if err != nil {
		return nil, err
	}
	return sendWebhook(ctx, c, http.MethodPost, webhookEndpoint, params)
}

// Endpoint implements the Resource interface.
func (wh *Webhook) Endpoint(uris ...string) string {
	return endpoint(webhookEndpoint, wh.ID, uris...)
}

// Load implements the Resource interface.
func (wh *Webhook) Load(ctx context.Context, c *Client) error {
	if err := requireID("id", wh.ID); err != nil {
		return err
	}

	res, err := c.Get(ctx, wh.Endpoint(), nil)

	if err != nil {
		return notFound(err, "Webhook", wh.ID)
	}
	return res.unwrap("webhook").decode(wh)
}

// Update will update the current Webhook in Stax with the given Params.
func (wh *Webhook) Update(ctx context.Context, c *Client, params Params) error {
	if err := requireID("id", wh.ID); err != nil {
		return err
	}

	if err := check(params, link("url"), array("events"), boolean("active")); err != nil {
		return err
	}

	wh1, err := sendWebhook(ctx, c, http.MethodPut, wh.Endpoint(), params)

	if err != nil {
		return err
	}
	(*wh) = (*wh1)
	return nil
}

// Delete will delete the current Webhook in Stax.
func (wh *Webhook) Delete(ctx context.Context, c *Client) error {
	if err := requireID("id", wh.ID); err != nil {
		return err
	}

	_, err := c.Delete(ctx, wh.Endpoint())
	return err
}
