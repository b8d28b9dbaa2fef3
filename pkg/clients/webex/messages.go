package webex

import (
	"context"
	"net/url"
	"time"
)

// Message is a chat message as returned by the messages API.
type Message struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"roomId"`
	RoomType    string    `json:"roomType"`
	Text        string    `json:"text"`
	Markdown    string    `json:"markdown"`
	PersonID    string    `json:"personId"`
	PersonEmail string    `json:"personEmail"`
	Created     time.Time `json:"created"`
}

// CreateMessageRequest is the payload for sending a reply. Attachments carry
// adaptive cards wrapped in the platform's attachment envelope.
type CreateMessageRequest struct {
	RoomID      string           `json:"roomId,omitempty"`
	ToPersonID  string           `json:"toPersonId,omitempty"`
	Markdown    string           `json:"markdown,omitempty"`
	Text        string           `json:"text,omitempty"`
	Attachments []map[string]any `json:"attachments,omitempty"`
}

// GetMessage fetches a message by id. Webhook payloads only carry the
// message id, so the text has to be fetched separately.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	var message Message
	if err := c.getJSON(ctx, "/messages/"+url.PathEscape(messageID), nil, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// CreateMessage sends a message into a room or 1:1 conversation.
func (c *Client) CreateMessage(ctx context.Context, req CreateMessageRequest) (*Message, error) {
	var message Message
	if err := c.postJSON(ctx, "/messages", req, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// AttachmentAction is a card submission event with its input values.
type AttachmentAction struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	MessageID string         `json:"messageId"`
	RoomID    string         `json:"roomId"`
	PersonID  string         `json:"personId"`
	Inputs    map[string]any `json:"inputs"`
}

// GetAttachmentAction fetches a card submission by id, including the
// submitted input values which the webhook payload omits.
func (c *Client) GetAttachmentAction(ctx context.Context, actionID string) (*AttachmentAction, error) {
	var action AttachmentAction
	if err := c.getJSON(ctx, "/attachment/actions/"+url.PathEscape(actionID), nil, &action); err != nil {
		return nil, err
	}
	return &action, nil
}
