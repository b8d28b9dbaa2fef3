package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/meetrec/recording-bot/internal/config"
	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/internal/localization"
	"github.com/meetrec/recording-bot/internal/managers"

	"github.com/go-playground/validator/v10"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
)

type PipelineDependencies struct {
	TokenManager *managers.TokenManager
	Resolver     *Resolver
	Policy       *Policy
	Aggregator   *Aggregator
	Formatter    *Formatter
	Audit        domain.AuditSink
	Options      *config.Store

	// AuthorizeURL is shown to users while the integration has no tokens.
	AuthorizeURL string
}

// Pipeline runs one inbound command through parsing, token lookup,
// access-control checks, resolution, aggregation, and formatting, emitting
// an audit record at every terminal outcome.
type Pipeline struct {
	tokenManager *managers.TokenManager
	resolver     *Resolver
	policy       *Policy
	aggregator   *Aggregator
	formatter    *Formatter
	audit        domain.AuditSink
	options      *config.Store
	authorizeURL string
	validate     *validator.Validate
}

func NewPipeline(deps PipelineDependencies) *Pipeline {
	return &Pipeline{
		tokenManager: deps.TokenManager,
		resolver:     deps.Resolver,
		policy:       deps.Policy,
		aggregator:   deps.Aggregator,
		formatter:    deps.Formatter,
		audit:        deps.Audit,
		options:      deps.Options,
		authorizeURL: deps.AuthorizeURL,
		validate:     validator.New(),
	}
}

// HandleMessage produces exactly one reply for an inbound command. Remote
// failures and programming errors never escape: they degrade to a short
// localized message with full detail confined to the logs.
func (p *Pipeline) HandleMessage(ctx context.Context, msg domain.InboundMessage) (reply domain.Reply) {
	opts := p.options.Snapshot()
	lang := opts.Language
	requestID := xid.New().String()

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("request_id", requestID).
				Str("requester", msg.PersonEmail).
				Msg("Unexpected error handling command")
			reply = domain.Reply{Markdown: localization.Localize(lang, "loc_invalid_number")}
		}
	}()

	log.Info().
		Str("request_id", requestID).
		Str("requester", msg.PersonEmail).
		Msg("Handling recording request")

	if !p.requesterApproved(opts, msg.PersonEmail) {
		p.audit.Record(msg.PersonEmail, "", "", 0, domain.DecisionInvalid, "requester not in approved users or domains", nil)
		return domain.Reply{Markdown: localization.Localize(lang, "loc_not_approved")}
	}

	var input domain.CommandInput
	if msg.Submission != nil {
		input = *msg.Submission
	} else {
		input = domain.PlainTextMessage{Text: msg.Text}
	}

	req, err := ParseCommand(input, msg.PersonEmail, msg.PersonID, opts.DefaultDaysBack)
	if err == nil {
		err = p.validate.Struct(req)
	}
	if err != nil {
		log.Info().Err(err).Str("request_id", requestID).Msg("Command parsing failed")
		p.audit.Record(msg.PersonEmail, req.HostEmail, req.MeetingNumber, req.DaysBack, domain.DecisionInvalid, "invalid meeting number or command", nil)
		// Offer the form so the user can fill the fields instead of retyping
		// the text grammar.
		return p.formatter.RequestForm(localization.Localize(lang, "loc_invalid_number"), lang, opts.DefaultDaysBack)
	}

	if _, err := p.tokenManager.GetAccessToken(ctx); err != nil {
		if !errors.Is(err, domain.ErrNoToken) {
			log.Error().Err(err).Str("request_id", requestID).Msg("Token lookup failed")
		}
		p.audit.Record(req.RequesterEmail, req.HostEmail, req.MeetingNumber, req.DaysBack, domain.DecisionInvalid, "integration not authorized", nil)
		return domain.Reply{Markdown: localization.Message(lang, "loc_please_authorize", map[string]string{"url": p.authorizeURL})}
	}

	hostGuess := req.HostEmail
	if hostGuess == "" {
		hostGuess = req.RequesterEmail
	}

	if opts.ProtectPMR {
		if decision := p.policy.CheckPersonalRoom(ctx, req.RequesterEmail, hostGuess, req.MeetingNumber); decision == domain.DecisionDeniedPMR {
			p.audit.Record(req.RequesterEmail, hostGuess, req.MeetingNumber, req.DaysBack, decision, "personal room of another user", nil)
			return domain.Reply{Markdown: localization.Message(lang, "loc_denied_pmr", map[string]string{"number": req.MeetingNumber})}
		}
	}

	resolution, err := p.resolver.Resolve(ctx, req)
	if err != nil {
		if errors.Is(err, ErrMeetingNotFound) {
			p.audit.Record(req.RequesterEmail, hostGuess, req.MeetingNumber, req.DaysBack, domain.DecisionNoData, "meeting not found", nil)
			return domain.Reply{Markdown: localization.Message(lang, "loc_meeting_not_found", map[string]string{"number": req.MeetingNumber})}
		}
		log.Error().Err(err).Str("request_id", requestID).Msg("Meeting resolution failed")
		p.audit.Record(req.RequesterEmail, hostGuess, req.MeetingNumber, req.DaysBack, domain.DecisionNoData, "unable to get meeting information", nil)
		return domain.Reply{Markdown: localization.Localize(lang, "loc_unable_to_get_meeting")}
	}

	if opts.RespondOnlyToHost {
		if decision := p.policy.CheckHostOnly(ctx, req.RequesterID, resolution); decision == domain.DecisionDeniedHostOnly {
			p.audit.Record(req.RequesterEmail, resolution.HostEmail, req.MeetingNumber, req.DaysBack, decision, "requester is not the meeting host", nil)
			return domain.Reply{Markdown: localization.Message(lang, "loc_denied_host_only", map[string]string{"number": req.MeetingNumber})}
		}
	}

	noData := localization.Message(lang, "loc_no_recordings", map[string]string{
		"number": req.MeetingNumber,
		"days":   strconv.Itoa(req.DaysBack),
	})

	if len(resolution.Occurrences) == 0 {
		p.audit.Record(req.RequesterEmail, resolution.HostEmail, req.MeetingNumber, req.DaysBack, domain.DecisionNoData, "no ended occurrences in lookback window", nil)
		return domain.Reply{Markdown: noData}
	}

	recordings := p.aggregator.Aggregate(ctx, resolution.Occurrences)
	if len(recordings) == 0 {
		p.audit.Record(req.RequesterEmail, resolution.HostEmail, req.MeetingNumber, req.DaysBack, domain.DecisionNoData, "no recordings in lookback window", nil)
		return domain.Reply{Markdown: noData}
	}

	title := resolution.Title
	if title == "" {
		title = req.MeetingNumber
	}

	reply = p.formatter.Format(title, recordings, lang)
	p.audit.Record(req.RequesterEmail, resolution.HostEmail, req.MeetingNumber, req.DaysBack, domain.DecisionPermitted,
		localization.Message(lang, "loc_meetings_found", map[string]string{
			"count":  strconv.Itoa(len(resolution.Occurrences)),
			"number": req.MeetingNumber,
		}),
		recordings)

	return reply
}

// requesterApproved applies the approved_users / approved_domains gate. Both
// lists empty means everyone is allowed.
func (p *Pipeline) requesterApproved(opts domain.Options, email string) bool {
	if len(opts.ApprovedUsers) == 0 && len(opts.ApprovedDomains) == 0 {
		return true
	}

	for _, user := range opts.ApprovedUsers {
		if strings.EqualFold(user, email) {
			return true
		}
	}

	if at := strings.LastIndex(email, "@"); at >= 0 {
		domainPart := email[at+1:]
		for _, approved := range opts.ApprovedDomains {
			if strings.EqualFold(approved, domainPart) {
				return true
			}
		}
	}

	return false
}
