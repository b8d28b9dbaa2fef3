package webex

import (
	"context"
	"net/url"
)

// Person is a platform user. ID is the stable identifier preferred over
// email for authorization comparisons.
type Person struct {
	ID          string   `json:"id"`
	Emails      []string `json:"emails"`
	DisplayName string   `json:"displayName"`
}

type listPeopleResponse struct {
	Items []Person `json:"items"`
}

// GetMyDetails returns the user the current token belongs to.
func (c *Client) GetMyDetails(ctx context.Context) (*Person, error) {
	var person Person
	if err := c.getJSON(ctx, "/people/me", nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// GetPersonDetails resolves an opaque person id to the full person record.
func (c *Client) GetPersonDetails(ctx context.Context, personID string) (*Person, error) {
	var person Person
	if err := c.getJSON(ctx, "/people/"+url.PathEscape(personID), nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// ListPeopleByEmail looks a user up by email address.
func (c *Client) ListPeopleByEmail(ctx context.Context, email string) ([]Person, error) {
	query := url.Values{}
	query.Set("email", email)

	var resp listPeopleResponse
	if err := c.getJSON(ctx, "/people", query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
