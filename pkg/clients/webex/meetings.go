package webex

import (
	"context"
	"net/url"
	"time"
)

// Meeting is one item of a meetings listing. Depending on the query it is a
// meeting series or a single occurrence; occurrences carry the id of the
// series they belong to.
type Meeting struct {
	ID              string    `json:"id"`
	MeetingSeriesID string    `json:"meetingSeriesId"`
	MeetingNumber   string    `json:"meetingNumber"`
	Title           string    `json:"title"`
	MeetingType     string    `json:"meetingType"`
	State           string    `json:"state"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	HostUserID      string    `json:"hostUserId"`
	HostEmail       string    `json:"hostEmail"`
}

type ListMeetingsParams struct {
	MeetingNumber   string
	MeetingSeriesID string
	HostEmail       string
	MeetingType     string
	State           string
	From            time.Time
	To              time.Time
}

type listMeetingsResponse struct {
	Items []Meeting `json:"items"`
}

// ListMeetings queries /meetings with the given filters. Zero-value params
// are omitted from the query.
func (c *Client) ListMeetings(ctx context.Context, p ListMeetingsParams) ([]Meeting, error) {
	query := url.Values{}
	if p.MeetingNumber != "" {
		query.Set("meetingNumber", p.MeetingNumber)
	}
	if p.MeetingSeriesID != "" {
		query.Set("meetingSeriesId", p.MeetingSeriesID)
	}
	if p.HostEmail != "" {
		query.Set("hostEmail", p.HostEmail)
	}
	if p.MeetingType != "" {
		query.Set("meetingType", p.MeetingType)
	}
	if p.State != "" {
		query.Set("state", p.State)
	}
	if !p.From.IsZero() {
		query.Set("from", p.From.UTC().Format(time.RFC3339))
	}
	if !p.To.IsZero() {
		query.Set("to", p.To.UTC().Format(time.RFC3339))
	}

	var resp listMeetingsResponse
	if err := c.getJSON(ctx, "/meetings", query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
