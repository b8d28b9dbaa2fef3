package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/meetrec/recording-bot/internal/domain"
)

// CommandKeyword is the leading word of the text command form.
const CommandKeyword = "rec"

var (
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	digitRunPattern   = regexp.MustCompile(`\d+`)
	leadingRunPattern = regexp.MustCompile(`^[\d ]+`)
)

// ParseCommand normalizes either input variant into an AccessRequest.
//
// Text grammar: "rec <meeting_number>[ <host_email>][ <days_back>]". The
// meeting number is the leading digit run and may contain embedded spaces;
// the host email is matched anywhere in the remainder; days-back is the
// first digit run after the email. Missing host and days fall back to the
// requester and the configured default window.
func ParseCommand(input domain.CommandInput, requesterEmail, requesterID string, defaultDaysBack int) (domain.AccessRequest, error) {
	req := domain.AccessRequest{
		RequesterEmail: requesterEmail,
		RequesterID:    requesterID,
		DaysBack:       defaultDaysBack,
	}

	switch v := input.(type) {
	case domain.PlainTextMessage:
		return parseText(req, v.Text)
	case domain.StructuredSubmission:
		return parseSubmission(req, v)
	default:
		return req, fmt.Errorf("unsupported command input type %T", input)
	}
}

func parseText(req domain.AccessRequest, text string) (domain.AccessRequest, error) {
	text = strings.TrimSpace(text)

	// The keyword may be preceded by the bot mention, which the platform
	// already strips from 1:1 messages but not from space messages. It has
	// to match as its own word so a mention containing "rec" is not eaten.
	fields := strings.Fields(text)
	for i, field := range fields {
		if strings.EqualFold(field, CommandKeyword) {
			text = strings.Join(fields[i+1:], " ")
			break
		}
	}
	text = strings.TrimSpace(text)

	var remainder string
	if loc := emailPattern.FindStringIndex(text); loc != nil {
		req.HostEmail = text[loc[0]:loc[1]]
		remainder = text[loc[1]:]
		text = text[:loc[0]]
	}

	number := strings.TrimSpace(leadingRunPattern.FindString(text))
	if number == "" {
		return req, fmt.Errorf("no meeting number in command text")
	}
	req.MeetingNumber = NormalizeMeetingNumber(number)

	if days := digitRunPattern.FindString(remainder); days != "" {
		parsed, err := strconv.Atoi(days)
		if err == nil && parsed > 0 {
			req.DaysBack = parsed
		}
	}

	return req, nil
}

func parseSubmission(req domain.AccessRequest, sub domain.StructuredSubmission) (domain.AccessRequest, error) {
	number := NormalizeMeetingNumber(sub.MeetingNumber)
	if number == "" {
		return req, fmt.Errorf("no meeting number in submission")
	}
	req.MeetingNumber = number

	if host := strings.TrimSpace(sub.MeetingHost); host != "" {
		if !emailPattern.MatchString(host) {
			return req, fmt.Errorf("meeting host %q is not an email address", host)
		}
		req.HostEmail = host
	}

	if days := strings.TrimSpace(sub.DaysBack); days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil || parsed <= 0 {
			return req, fmt.Errorf("invalid days_back value %q", days)
		}
		req.DaysBack = parsed
	}

	return req, nil
}

// NormalizeMeetingNumber strips all whitespace so "123 456 789" and
// "123456789" resolve identically.
func NormalizeMeetingNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}
