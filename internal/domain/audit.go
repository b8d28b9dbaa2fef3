package domain

import "time"

// DisclosedMeeting groups the recording ids actually disclosed for one
// meeting occurrence.
type DisclosedMeeting struct {
	MeetingID    string   `json:"meeting_id"`
	RecordingIDs []string `json:"recording_ids"`
}

// AuditRecord captures one terminal request outcome for compliance review.
// Records are append-only and never mutated after being written.
type AuditRecord struct {
	ID            string             `json:"id"`
	Time          time.Time          `json:"time"`
	Requester     string             `json:"requester"`
	Host          string             `json:"host"`
	MeetingNumber string             `json:"meeting_number"`
	DaysBack      int                `json:"days_back"`
	Decision      Decision           `json:"decision"`
	Description   string             `json:"description"`
	Disclosed     []DisclosedMeeting `json:"disclosed,omitempty"`
}

// AuditSink records terminal request outcomes. Implementations must never
// propagate failures back to the request path.
type AuditSink interface {
	Record(requester, host, meetingNumber string, daysBack int, decision Decision, description string, disclosed []Recording)
}
