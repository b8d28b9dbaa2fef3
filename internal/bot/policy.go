package bot

import (
	"context"
	"strings"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	"github.com/rs/zerolog/log"
)

type PolicyDependencies struct {
	WebexClient *webex.Client
}

// Policy implements the two access-control rules: personal-room protection
// and host-only responses. Both checks are pure functions of their inputs
// and the remote state; repeated calls with identical inputs yield identical
// decisions.
type Policy struct {
	client *webex.Client
}

func NewPolicy(deps PolicyDependencies) *Policy {
	return &Policy{client: deps.WebexClient}
}

// CheckPersonalRoom runs before series resolution, with only an unresolved
// host guess (the requester when no host was given). If the meeting number
// is the guessed host's personal-room access code and the requester is not
// that host, the request is denied without resolving anything.
//
// A failed preferences lookup is treated as "no personal room match": the
// rule must not lock everyone out when the preferences API is unavailable.
func (p *Policy) CheckPersonalRoom(ctx context.Context, requesterEmail, hostGuess, meetingNumber string) domain.Decision {
	pmr, err := p.client.GetPersonalMeetingRoom(ctx, hostGuess)
	if err != nil {
		log.Info().Err(err).Str("host", hostGuess).Msg("Personal room lookup failed, skipping personal-room rule")
		return domain.DecisionPermitted
	}

	accessCode := NormalizeMeetingNumber(pmr.AccessCode)
	if accessCode == "" || accessCode != NormalizeMeetingNumber(meetingNumber) {
		return domain.DecisionPermitted
	}

	if strings.EqualFold(requesterEmail, hostGuess) {
		return domain.DecisionPermitted
	}

	log.Info().
		Str("requester", requesterEmail).
		Str("host", hostGuess).
		Msg("Request for another user's personal room denied")
	return domain.DecisionDeniedPMR
}

// CheckHostOnly runs after resolution and compares stable person ids, not
// emails: email comparison is case-fragile and display names are not
// authoritative. The requester id comes from the inbound event; the host id
// is taken from the resolution or derived from the canonical host email.
func (p *Policy) CheckHostOnly(ctx context.Context, requesterID string, resolution *Resolution) domain.Decision {
	hostID := resolution.HostID
	if hostID == "" {
		people, err := p.client.ListPeopleByEmail(ctx, resolution.HostEmail)
		if err != nil || len(people) == 0 {
			log.Info().Err(err).Str("host", resolution.HostEmail).Msg("Host identity lookup failed, denying host-only request")
			return domain.DecisionDeniedHostOnly
		}
		hostID = people[0].ID
	}

	if requesterID == hostID {
		return domain.DecisionPermitted
	}

	log.Info().
		Str("requester_id", requesterID).
		Str("host_id", hostID).
		Msg("Host-only rule denied a non-host requester")
	return domain.DecisionDeniedHostOnly
}
