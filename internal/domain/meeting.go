package domain

import "time"

// MeetingOccurrence is one concrete instance of a meeting series. Only
// occurrences in state "ended" are eligible for recording lookups.
type MeetingOccurrence struct {
	ID        string
	SeriesID  string
	Number    string
	Title     string
	HostEmail string
	HostID    string
	Start     time.Time
	State     string
}

// Recording is a single recording of an ended occurrence. AudioURL and
// VideoURL are temporary download links; URLExpiration is the vendor-supplied
// ISO-8601 expiry of those links, kept verbatim so it can be surfaced to the
// user unchanged.
type Recording struct {
	ID              string
	MeetingID       string
	Topic           string
	DurationSeconds int
	TimeRecorded    time.Time
	AudioURL        string
	VideoURL        string
	URLExpiration   string
}

// AuthorizationMode selects which identity parameters the recordings API
// accepts. The choice is fixed at deployment time by how the OAuth
// integration was granted; the two modes are mutually exclusive.
type AuthorizationMode string

const (
	// AuthModeAdmin requires the host email on recording detail calls.
	AuthModeAdmin AuthorizationMode = "admin"
	// AuthModeCompliance must not pass a host email; doing so fails authorization.
	AuthModeCompliance AuthorizationMode = "compliance"
)
