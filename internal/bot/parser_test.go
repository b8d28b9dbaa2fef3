package bot

import (
	"testing"

	"github.com/meetrec/recording-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Text(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantNumber string
		wantHost   string
		wantDays   int
		wantErr    bool
	}{
		{
			name:       "number only",
			text:       "rec 1234567890",
			wantNumber: "1234567890",
			wantDays:   10,
		},
		{
			name:       "number with embedded spaces",
			text:       "rec 123 456 789",
			wantNumber: "123456789",
			wantDays:   10,
		},
		{
			name:       "number host and days",
			text:       "rec 1234567890 host@example.com 30",
			wantNumber: "1234567890",
			wantHost:   "host@example.com",
			wantDays:   30,
		},
		{
			name:       "spaced number with host",
			text:       "rec 123 456 789 host@example.com 5",
			wantNumber: "123456789",
			wantHost:   "host@example.com",
			wantDays:   5,
		},
		{
			name:       "keyword case insensitive with mention prefix",
			text:       "RecordingBot rec 987654321",
			wantNumber: "987654321",
			wantDays:   10,
		},
		{
			name:    "no number",
			text:    "rec please",
			wantErr: true,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseCommand(domain.PlainTextMessage{Text: tt.text}, "user@example.com", "person-id", 10)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNumber, req.MeetingNumber)
			assert.Equal(t, tt.wantHost, req.HostEmail)
			assert.Equal(t, tt.wantDays, req.DaysBack)
			assert.Equal(t, "user@example.com", req.RequesterEmail)
			assert.Equal(t, "person-id", req.RequesterID)
		})
	}
}

func TestParseCommand_Submission(t *testing.T) {
	tests := []struct {
		name       string
		submission domain.StructuredSubmission
		wantNumber string
		wantHost   string
		wantDays   int
		wantErr    bool
	}{
		{
			name:       "all fields",
			submission: domain.StructuredSubmission{MeetingNumber: "1234567890", MeetingHost: "host@example.com", DaysBack: "7"},
			wantNumber: "1234567890",
			wantHost:   "host@example.com",
			wantDays:   7,
		},
		{
			name:       "number with spaces normalized",
			submission: domain.StructuredSubmission{MeetingNumber: "123 456 789"},
			wantNumber: "123456789",
			wantDays:   10,
		},
		{
			name:       "defaults applied",
			submission: domain.StructuredSubmission{MeetingNumber: "111222333"},
			wantNumber: "111222333",
			wantDays:   10,
		},
		{
			name:       "host not an email",
			submission: domain.StructuredSubmission{MeetingNumber: "111222333", MeetingHost: "not an email"},
			wantErr:    true,
		},
		{
			name:       "missing number",
			submission: domain.StructuredSubmission{DaysBack: "7"},
			wantErr:    true,
		},
		{
			name:       "invalid days",
			submission: domain.StructuredSubmission{MeetingNumber: "111222333", DaysBack: "soon"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseCommand(tt.submission, "user@example.com", "person-id", 10)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNumber, req.MeetingNumber)
			assert.Equal(t, tt.wantHost, req.HostEmail)
			assert.Equal(t, tt.wantDays, req.DaysBack)
		})
	}
}

func TestNormalizeMeetingNumber(t *testing.T) {
	assert.Equal(t, "123456789", NormalizeMeetingNumber("123 456 789"))
	assert.Equal(t, "123456789", NormalizeMeetingNumber("123456789"))
	assert.Equal(t, "123456789", NormalizeMeetingNumber("  123\t456 789  "))
	assert.Equal(t, "", NormalizeMeetingNumber("   "))
}
