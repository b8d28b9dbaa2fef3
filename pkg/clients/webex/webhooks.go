package webex

import (
	"context"
)

// Webhook is a registered event subscription.
type Webhook struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TargetURL string `json:"targetUrl"`
	Resource  string `json:"resource"`
	Event     string `json:"event"`
	Status    string `json:"status"`
}

type CreateWebhookRequest struct {
	Name      string `json:"name"`
	TargetURL string `json:"targetUrl"`
	Resource  string `json:"resource"`
	Event     string `json:"event"`
	Secret    string `json:"secret,omitempty"`
}

type listWebhooksResponse struct {
	Items []Webhook `json:"items"`
}

// ListWebhooks lists the webhooks registered for the current token.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var resp listWebhooksResponse
	if err := c.getJSON(ctx, "/webhooks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CreateWebhook registers a new event subscription.
func (c *Client) CreateWebhook(ctx context.Context, req CreateWebhookRequest) (*Webhook, error) {
	var webhook Webhook
	if err := c.postJSON(ctx, "/webhooks", req, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

// EnsureWebhook creates the subscription unless one with the same name,
// resource, and target already exists.
func (c *Client) EnsureWebhook(ctx context.Context, req CreateWebhookRequest) (*Webhook, error) {
	existing, err := c.ListWebhooks(ctx)
	if err != nil {
		return nil, err
	}

	for i, webhook := range existing {
		if webhook.Name == req.Name && webhook.Resource == req.Resource && webhook.TargetURL == req.TargetURL {
			return &existing[i], nil
		}
	}

	return c.CreateWebhook(ctx, req)
}
