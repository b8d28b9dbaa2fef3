package bot

import (
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/meetrec/recording-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occurrence(id string, start time.Time) domain.MeetingOccurrence {
	return domain.MeetingOccurrence{
		ID:        id,
		SeriesID:  "series-1",
		HostEmail: "host@example.com",
		Start:     start,
		State:     "ended",
	}
}

func recordingFake(t *testing.T, recordingsByMeeting map[string][]map[string]any, failMeetings map[string]bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/recordings":
			meetingID := r.URL.Query().Get("meetingId")
			if failMeetings[meetingID] {
				writeJSON(t, w, http.StatusBadGateway, map[string]any{"message": "upstream error"})
				return
			}
			writeJSON(t, w, http.StatusOK, items(recordingsByMeeting[meetingID]...))
		case strings.HasPrefix(r.URL.Path, "/recordings/"):
			id := strings.TrimPrefix(r.URL.Path, "/recordings/")
			for _, recordings := range recordingsByMeeting {
				for _, rec := range recordings {
					if rec["id"] == id {
						detail := map[string]any{}
						for k, v := range rec {
							detail[k] = v
						}
						detail["temporaryDirectDownloadLinks"] = map[string]any{
							"audioDownloadLink":     "https://dl.example.com/audio/" + id,
							"recordingDownloadLink": "https://dl.example.com/video/" + id,
							"expiration":            "2024-05-02T10:00:00Z",
						}
						writeJSON(t, w, http.StatusOK, detail)
						return
					}
				}
			}
			http.NotFound(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

func TestAggregator_OrderingAcrossOccurrences(t *testing.T) {
	recordings := map[string][]map[string]any{
		"occ-1": {
			{"id": "r-1b", "topic": "Sync", "durationSeconds": 600, "timeRecorded": "2024-05-01T11:00:00Z"},
			{"id": "r-1a", "topic": "Sync", "durationSeconds": 65, "timeRecorded": "2024-05-01T10:00:00Z"},
		},
		"occ-2": {
			{"id": "r-2a", "topic": "Sync", "durationSeconds": 3599, "timeRecorded": "2024-05-02T10:00:00Z"},
		},
	}

	client := newTestClient(t, recordingFake(t, recordings, nil))
	aggregator := NewAggregator(AggregatorDependencies{WebexClient: client, Mode: domain.AuthModeAdmin})

	occurrences := []domain.MeetingOccurrence{
		occurrence("occ-1", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)),
		occurrence("occ-2", time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)),
	}

	result := aggregator.Aggregate(t.Context(), occurrences)
	require.Len(t, result, 3)

	ids := []string{result[0].ID, result[1].ID, result[2].ID}
	assert.Equal(t, []string{"r-1a", "r-1b", "r-2a"}, ids)

	// Global output is non-decreasing in (occurrence order, time recorded).
	assert.True(t, sort.SliceIsSorted(result, func(i, j int) bool {
		return result[i].TimeRecorded.Before(result[j].TimeRecorded)
	}))

	assert.Equal(t, "https://dl.example.com/audio/r-1a", result[0].AudioURL)
	assert.Equal(t, "https://dl.example.com/video/r-1a", result[0].VideoURL)
	assert.Equal(t, "2024-05-02T10:00:00Z", result[0].URLExpiration)
	assert.Equal(t, "occ-1", result[0].MeetingID)
}

func TestAggregator_SkipsFailedOccurrence(t *testing.T) {
	recordings := map[string][]map[string]any{
		"occ-1": {
			{"id": "r-1a", "topic": "Sync", "durationSeconds": 65, "timeRecorded": "2024-05-01T10:00:00Z"},
		},
		"occ-2": {
			{"id": "r-2a", "topic": "Sync", "durationSeconds": 600, "timeRecorded": "2024-05-02T10:00:00Z"},
		},
	}

	client := newTestClient(t, recordingFake(t, recordings, map[string]bool{"occ-1": true}))
	aggregator := NewAggregator(AggregatorDependencies{WebexClient: client, Mode: domain.AuthModeAdmin})

	occurrences := []domain.MeetingOccurrence{
		occurrence("occ-1", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)),
		occurrence("occ-2", time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)),
	}

	result := aggregator.Aggregate(t.Context(), occurrences)

	// The failed occurrence is dropped, the rest survives.
	require.Len(t, result, 1)
	assert.Equal(t, "r-2a", result[0].ID)
}

func TestAggregator_AuthorizationModes(t *testing.T) {
	var hostParams []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hostParams = append(hostParams, r.URL.Query().Get("hostEmail"))
		if r.URL.Path == "/recordings" {
			writeJSON(t, w, http.StatusOK, items(map[string]any{
				"id": "r-1", "topic": "Sync", "durationSeconds": 65, "timeRecorded": "2024-05-01T10:00:00Z",
			}))
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id": "r-1", "topic": "Sync", "durationSeconds": 65, "timeRecorded": "2024-05-01T10:00:00Z",
			"temporaryDirectDownloadLinks": map[string]any{"expiration": "2024-05-02T10:00:00Z"},
		})
	})

	occurrences := []domain.MeetingOccurrence{occurrence("occ-1", time.Now())}

	admin := NewAggregator(AggregatorDependencies{WebexClient: client, Mode: domain.AuthModeAdmin})
	admin.Aggregate(t.Context(), occurrences)
	assert.Equal(t, []string{"host@example.com", "host@example.com"}, hostParams)

	hostParams = nil
	compliance := NewAggregator(AggregatorDependencies{WebexClient: client, Mode: domain.AuthModeCompliance})
	compliance.Aggregate(t.Context(), occurrences)
	assert.Equal(t, []string{"", ""}, hostParams)
}
