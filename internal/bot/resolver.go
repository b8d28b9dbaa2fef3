package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// ErrMeetingNotFound is returned when no meeting matches the requested
// number for any usable identity scope.
var ErrMeetingNotFound = errors.New("meeting not found")

const (
	peopleCacheTTL     = 10 * time.Minute
	peopleCacheCleanup = 30 * time.Minute
)

type ResolverDependencies struct {
	WebexClient *webex.Client
}

// Resolver finds the meeting series matching a requested number and lists
// its ended occurrences inside the lookback window.
type Resolver struct {
	client *webex.Client
	people *gocache.Cache

	now func() time.Time
}

// Resolution is the outcome of a successful series lookup. Occurrences may
// be empty: a series with no ended occurrences in the window is a valid
// zero-recordings outcome, not an error.
type Resolution struct {
	SeriesID    string
	Title       string
	HostEmail   string
	HostID      string
	Occurrences []domain.MeetingOccurrence
}

func NewResolver(deps ResolverDependencies) *Resolver {
	return &Resolver{
		client: deps.WebexClient,
		people: gocache.New(peopleCacheTTL, peopleCacheCleanup),
		now:    time.Now,
	}
}

// Resolve looks the meeting number up scoped by the requested host identity
// (falling back to the actor), then requeries for all ended occurrences of
// the matched series in [now - days_back, now], ascending by start time.
func (r *Resolver) Resolve(ctx context.Context, req domain.AccessRequest) (*Resolution, error) {
	number := NormalizeMeetingNumber(req.MeetingNumber)
	to := r.now().UTC()
	from := to.AddDate(0, 0, -req.DaysBack)

	scope := req.HostEmail
	if scope == "" {
		scope = req.RequesterEmail
	}

	items, err := r.client.ListMeetings(ctx, webex.ListMeetingsParams{
		MeetingNumber: number,
		HostEmail:     scope,
		From:          from,
		To:            to,
	})
	if err != nil {
		// The API is inconsistent about which identity parameter unlocks
		// which view of the data; retry once scoped by the actor.
		log.Info().Err(err).Str("scope", scope).Str("meeting_number", number).Msg("Meeting lookup failed, retrying scoped by requester")
		items, err = r.client.ListMeetings(ctx, webex.ListMeetingsParams{
			MeetingNumber: number,
			HostEmail:     req.RequesterEmail,
			From:          from,
			To:            to,
		})
		if err != nil {
			return nil, fmt.Errorf("meeting lookup failed: %w", err)
		}
	}

	if len(items) == 0 {
		return nil, ErrMeetingNotFound
	}

	first := items[0]
	seriesID := first.MeetingSeriesID
	if seriesID == "" {
		seriesID = first.ID
	}

	hostEmail := first.HostEmail
	if hostEmail == "" && first.HostUserID != "" {
		hostEmail, err = r.resolveHostEmail(ctx, first.HostUserID)
		if err != nil {
			return nil, fmt.Errorf("host lookup failed: %w", err)
		}
	}

	ended, err := r.client.ListMeetings(ctx, webex.ListMeetingsParams{
		MeetingSeriesID: seriesID,
		HostEmail:       hostEmail,
		MeetingType:     "meeting",
		State:           "ended",
		From:            from,
		To:              to,
	})
	if err != nil {
		return nil, fmt.Errorf("occurrence lookup failed: %w", err)
	}

	occurrences := make([]domain.MeetingOccurrence, 0, len(ended))
	for _, item := range ended {
		occurrences = append(occurrences, domain.MeetingOccurrence{
			ID:        item.ID,
			SeriesID:  seriesID,
			Number:    number,
			Title:     item.Title,
			HostEmail: hostEmail,
			HostID:    item.HostUserID,
			Start:     item.Start,
			State:     item.State,
		})
	}
	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Start.Before(occurrences[j].Start)
	})

	log.Debug().
		Str("series_id", seriesID).
		Str("host", hostEmail).
		Int("occurrences", len(occurrences)).
		Msg("Resolved meeting series")

	return &Resolution{
		SeriesID:    seriesID,
		Title:       first.Title,
		HostEmail:   hostEmail,
		HostID:      first.HostUserID,
		Occurrences: occurrences,
	}, nil
}

// resolveHostEmail maps an opaque host user id to an email through the
// people API, cached to avoid repeated lookups for the same host.
func (r *Resolver) resolveHostEmail(ctx context.Context, hostUserID string) (string, error) {
	if cached, ok := r.people.Get(hostUserID); ok {
		return cached.(string), nil
	}

	person, err := r.client.GetPersonDetails(ctx, hostUserID)
	if err != nil {
		return "", err
	}
	if len(person.Emails) == 0 {
		return "", fmt.Errorf("person %s has no email addresses", hostUserID)
	}

	email := person.Emails[0]
	r.people.Set(hostUserID, email, gocache.DefaultExpiration)
	return email, nil
}
