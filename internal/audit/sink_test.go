package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/meetrec/recording-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldDisclosed(t *testing.T) {
	tests := []struct {
		name       string
		recordings []domain.Recording
		want       []domain.DisclosedMeeting
	}{
		{
			name: "empty",
			want: nil,
		},
		{
			name: "groups by meeting preserving first-seen order",
			recordings: []domain.Recording{
				{ID: "r-1", MeetingID: "occ-2"},
				{ID: "r-2", MeetingID: "occ-1"},
				{ID: "r-3", MeetingID: "occ-2"},
			},
			want: []domain.DisclosedMeeting{
				{MeetingID: "occ-2", RecordingIDs: []string{"r-1", "r-3"}},
				{MeetingID: "occ-1", RecordingIDs: []string{"r-2"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldDisclosed(tt.recordings))
		})
	}
}

func TestFileSink_AppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	sink := NewFileSink(path)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	sink.Record("user@example.com", "host@example.com", "123456789", 10, domain.DecisionPermitted, "found recordings", []domain.Recording{
		{ID: "r-1", MeetingID: "occ-1"},
		{ID: "r-2", MeetingID: "occ-1"},
	})
	sink.Record("user@example.com", "", "987654321", 5, domain.DecisionNoData, "meeting not found", nil)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))

	assert.NotEmpty(t, first["id"])
	assert.Equal(t, "user@example.com", first["requester"])
	assert.Equal(t, "host@example.com", first["host"])
	assert.Equal(t, "123456789", first["meeting_number"])
	assert.Equal(t, float64(10), first["days_back"])
	assert.Equal(t, "permitted", first["decision"])

	disclosed, ok := first["disclosed"].([]any)
	require.True(t, ok)
	require.Len(t, disclosed, 1)
	group := disclosed[0].(map[string]any)
	assert.Equal(t, "occ-1", group["meeting_id"])
	assert.Equal(t, []any{"r-1", "r-2"}, group["recording_ids"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "nodata", second["decision"])
	assert.Nil(t, second["disclosed"])
}

func TestFileSink_DistinctRecordIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	sink := NewFileSink(path)
	sink.Record("a@example.com", "", "1", 1, domain.DecisionInvalid, "", nil)
	sink.Record("a@example.com", "", "1", 1, domain.DecisionInvalid, "", nil)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.NotEqual(t, first["id"], second["id"])
}
