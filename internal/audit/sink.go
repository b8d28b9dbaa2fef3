// Package audit writes one append-only structured record per terminal
// request outcome for compliance review.
package audit

import (
	"io"
	"os"
	"time"

	"github.com/meetrec/recording-bot/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileSink appends JSON-line audit records to a file. Recording failures are
// logged but never propagated so the user-facing flow is unaffected.
type FileSink struct {
	logger zerolog.Logger
	closer io.Closer
	now    func() time.Time
}

// NewFileSink opens (or creates) the audit file in append mode. An empty
// path writes records to stderr.
func NewFileSink(path string) *FileSink {
	var writer io.Writer = os.Stderr
	var closer io.Closer

	if path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to open audit log file, falling back to stderr")
		} else {
			writer = file
			closer = file
		}
	}

	return &FileSink{
		logger: zerolog.New(writer),
		closer: closer,
		now:    time.Now,
	}
}

// Record writes one audit record. disclosed recordings are folded into
// (meeting id, recording ids) groups preserving first-seen meeting order.
func (s *FileSink) Record(requester, host, meetingNumber string, daysBack int, decision domain.Decision, description string, disclosed []domain.Recording) {
	record := domain.AuditRecord{
		ID:            uuid.NewString(),
		Time:          s.now().UTC(),
		Requester:     requester,
		Host:          host,
		MeetingNumber: meetingNumber,
		DaysBack:      daysBack,
		Decision:      decision,
		Description:   description,
		Disclosed:     FoldDisclosed(disclosed),
	}

	s.logger.Log().
		Str("id", record.ID).
		Time("time", record.Time).
		Str("requester", record.Requester).
		Str("host", record.Host).
		Str("meeting_number", record.MeetingNumber).
		Int("days_back", record.DaysBack).
		Str("decision", string(record.Decision)).
		Str("description", record.Description).
		Interface("disclosed", record.Disclosed).
		Msg("audit")
}

// Close releases the underlying file, if any.
func (s *FileSink) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// FoldDisclosed groups recordings by their owning meeting id, keeping the
// order in which meetings first appear.
func FoldDisclosed(recordings []domain.Recording) []domain.DisclosedMeeting {
	if len(recordings) == 0 {
		return nil
	}

	byMeeting := map[string]int{}
	groups := []domain.DisclosedMeeting{}

	for _, rec := range recordings {
		idx, ok := byMeeting[rec.MeetingID]
		if !ok {
			idx = len(groups)
			byMeeting[rec.MeetingID] = idx
			groups = append(groups, domain.DisclosedMeeting{MeetingID: rec.MeetingID})
		}
		groups[idx].RecordingIDs = append(groups[idx].RecordingIDs, rec.ID)
	}

	return groups
}
