package webex

import (
	"context"
	"net/url"
	"time"
)

// RecordingSummary is one item of a recordings listing. Listings do not
// include the temporary download links; those require a detail call.
type RecordingSummary struct {
	ID              string    `json:"id"`
	MeetingID       string    `json:"meetingId"`
	Topic           string    `json:"topic"`
	DurationSeconds int       `json:"durationSeconds"`
	TimeRecorded    time.Time `json:"timeRecorded"`
	Format          string    `json:"format"`
}

// TemporaryDirectDownloadLinks are the short-lived download URLs of one
// recording. Expiration is the ISO-8601 expiry of all links in the set.
type TemporaryDirectDownloadLinks struct {
	RecordingDownloadLink string `json:"recordingDownloadLink"`
	AudioDownloadLink     string `json:"audioDownloadLink"`
	Expiration            string `json:"expiration"`
}

// RecordingDetail is the full detail of one recording including its
// temporary download links.
type RecordingDetail struct {
	RecordingSummary
	TemporaryDirectDownloadLinks TemporaryDirectDownloadLinks `json:"temporaryDirectDownloadLinks"`
}

type ListRecordingsParams struct {
	MeetingID string
	HostEmail string
	From      time.Time
	To        time.Time
}

type listRecordingsResponse struct {
	Items []RecordingSummary `json:"items"`
}

// ListRecordings lists the recordings of one meeting occurrence.
func (c *Client) ListRecordings(ctx context.Context, p ListRecordingsParams) ([]RecordingSummary, error) {
	query := url.Values{}
	if p.MeetingID != "" {
		query.Set("meetingId", p.MeetingID)
	}
	if p.HostEmail != "" {
		query.Set("hostEmail", p.HostEmail)
	}
	if !p.From.IsZero() {
		query.Set("from", p.From.UTC().Format(time.RFC3339))
	}
	if !p.To.IsZero() {
		query.Set("to", p.To.UTC().Format(time.RFC3339))
	}

	var resp listRecordingsResponse
	if err := c.getJSON(ctx, "/recordings", query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetRecording fetches one recording detail. hostEmail must be set in
// administrator authorization mode and must be empty in compliance-officer
// mode; passing it in the wrong mode fails authorization on the Webex side.
func (c *Client) GetRecording(ctx context.Context, recordingID, hostEmail string) (*RecordingDetail, error) {
	query := url.Values{}
	if hostEmail != "" {
		query.Set("hostEmail", hostEmail)
	}

	var detail RecordingDetail
	if err := c.getJSON(ctx, "/recordings/"+url.PathEscape(recordingID), query, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
