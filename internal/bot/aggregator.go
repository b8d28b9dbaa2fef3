package bot

import (
	"context"
	"sort"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	"github.com/rs/zerolog/log"
)

type AggregatorDependencies struct {
	WebexClient *webex.Client

	// Mode is fixed at deployment time by how the OAuth integration was
	// granted. Admin mode passes the host email on recording calls;
	// compliance mode must not, or the calls fail authorization.
	Mode domain.AuthorizationMode
}

// Aggregator fetches the recordings of every resolved occurrence, in the
// order the occurrences were provided, ascending by time recorded within
// each occurrence.
type Aggregator struct {
	client *webex.Client
	mode   domain.AuthorizationMode
}

func NewAggregator(deps AggregatorDependencies) *Aggregator {
	mode := deps.Mode
	if mode == "" {
		mode = domain.AuthModeAdmin
	}
	return &Aggregator{
		client: deps.WebexClient,
		mode:   mode,
	}
}

// Aggregate returns all recordings of the given occurrences. A failure while
// fetching one occurrence drops only that occurrence's recordings; the
// failed occurrence is logged and aggregation continues with the rest.
func (a *Aggregator) Aggregate(ctx context.Context, occurrences []domain.MeetingOccurrence) []domain.Recording {
	var all []domain.Recording

	for _, occurrence := range occurrences {
		recordings, err := a.aggregateOccurrence(ctx, occurrence)
		if err != nil {
			log.Error().Err(err).
				Str("meeting_id", occurrence.ID).
				Time("start", occurrence.Start).
				Msg("Recording aggregation failed for occurrence, skipping it")
			continue
		}
		all = append(all, recordings...)
	}

	return all
}

func (a *Aggregator) aggregateOccurrence(ctx context.Context, occurrence domain.MeetingOccurrence) ([]domain.Recording, error) {
	hostEmail := ""
	if a.mode == domain.AuthModeAdmin {
		hostEmail = occurrence.HostEmail
	}

	summaries, err := a.client.ListRecordings(ctx, webex.ListRecordingsParams{
		MeetingID: occurrence.ID,
		HostEmail: hostEmail,
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].TimeRecorded.Before(summaries[j].TimeRecorded)
	})

	recordings := make([]domain.Recording, 0, len(summaries))
	for _, summary := range summaries {
		// Listings omit the temporary download links; each recording needs
		// a detail call.
		detail, err := a.client.GetRecording(ctx, summary.ID, hostEmail)
		if err != nil {
			return nil, err
		}

		recordings = append(recordings, domain.Recording{
			ID:              detail.ID,
			MeetingID:       occurrence.ID,
			Topic:           detail.Topic,
			DurationSeconds: detail.DurationSeconds,
			TimeRecorded:    detail.TimeRecorded,
			AudioURL:        detail.TemporaryDirectDownloadLinks.AudioDownloadLink,
			VideoURL:        detail.TemporaryDirectDownloadLinks.RecordingDownloadLink,
			URLExpiration:   detail.TemporaryDirectDownloadLinks.Expiration,
		})
	}

	return recordings, nil
}
