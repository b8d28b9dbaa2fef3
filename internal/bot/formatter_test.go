package bot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/meetrec/recording-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{65, "01:05"},
		{600, "10:00"},
		{3599, "59:59"},
		{0, "00:00"},
		{59, "00:59"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

func TestFormatExpiration(t *testing.T) {
	assert.Equal(t, "2024-05-01 16:30:00 GMT", FormatExpiration("2024-05-01T16:30:00Z"))
	assert.Equal(t, "2024-05-01 14:30:00 GMT", FormatExpiration("2024-05-01T16:30:00+02:00"))

	// Unparseable input is surfaced verbatim.
	assert.Equal(t, "sometime tomorrow", FormatExpiration("sometime tomorrow"))
}

func TestFormatter_Format(t *testing.T) {
	recordings := []domain.Recording{
		{
			ID:              "rec-1",
			MeetingID:       "m-1",
			Topic:           "Weekly sync",
			DurationSeconds: 65,
			TimeRecorded:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			AudioURL:        "https://dl.example.com/a1",
			VideoURL:        "https://dl.example.com/v1",
			URLExpiration:   "2024-05-02T10:00:00Z",
		},
		{
			ID:              "rec-2",
			MeetingID:       "m-1",
			Topic:           "Weekly sync",
			DurationSeconds: 600,
			TimeRecorded:    time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
			AudioURL:        "https://dl.example.com/a2",
			VideoURL:        "https://dl.example.com/v2",
			URLExpiration:   "2024-05-02T11:00:00Z",
		},
	}

	reply := NewFormatter().Format("Weekly sync", recordings, "en_US")

	assert.Contains(t, reply.Markdown, "**Weekly sync**")
	assert.Contains(t, reply.Markdown, "Weekly sync: [audio 1](https://dl.example.com/a1) [video 1](https://dl.example.com/v1), 01:05")
	assert.Contains(t, reply.Markdown, "[audio 2](https://dl.example.com/a2) [video 2](https://dl.example.com/v2), 10:00")

	require.NotNil(t, reply.Card)
	content, ok := reply.Card["content"].(map[string]any)
	require.True(t, ok)
	body, ok := content["body"].([]any)
	require.True(t, ok)

	// Header, one row per recording, trailing expiry warning.
	require.Len(t, body, 4)

	warning, ok := body[len(body)-1].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, warning["text"], "2024-05-02 10:00:00 GMT")
}

func TestFormatter_RequestForm(t *testing.T) {
	reply := NewFormatter().RequestForm("Invalid meeting number.", "cs_CZ", 10)

	assert.Contains(t, reply.Markdown, "Invalid meeting number.")
	assert.Contains(t, reply.Markdown, "Toto je formulář.")

	require.NotNil(t, reply.Card)
	rendered, err := json.Marshal(reply.Card)
	require.NoError(t, err)

	// Every placeholder is localized and the inputs keep their field ids.
	assert.NotContains(t, string(rendered), "{{")
	assert.Contains(t, string(rendered), "Získat nahrávky meetingu")
	assert.Contains(t, string(rendered), `"id":"meeting_number"`)
	assert.Contains(t, string(rendered), `"id":"meeting_host"`)
	assert.Contains(t, string(rendered), `"id":"days_back"`)
	assert.Contains(t, string(rendered), `"value":"10"`)
}

func TestFormatter_FormatNoRecordings(t *testing.T) {
	reply := NewFormatter().Format("Weekly sync", nil, "en_US")

	assert.Equal(t, "**Weekly sync**", reply.Markdown)

	content := reply.Card["content"].(map[string]any)
	body := content["body"].([]any)

	// Only the title block; no expiry warning without recordings.
	assert.Len(t, body, 1)
}
