package domain

// Decision is the terminal outcome of a single recording lookup request.
type Decision string

const (
	DecisionPermitted      Decision = "permitted"
	DecisionDeniedPMR      Decision = "denied-pmr"
	DecisionDeniedHostOnly Decision = "denied-host-only"
	DecisionNoData         Decision = "nodata"
	DecisionInvalid        Decision = "invalid"
)

// CommandInput is the tagged union over the two shapes a recording request
// can arrive in. It is resolved once at the command boundary; each variant
// normalizes into an AccessRequest.
type CommandInput interface {
	isCommandInput()
}

// PlainTextMessage is a "rec <number>[ <host>][ <days>]" text command.
type PlainTextMessage struct {
	Text string
}

func (PlainTextMessage) isCommandInput() {}

// StructuredSubmission is a card form submission with named fields.
type StructuredSubmission struct {
	MeetingNumber string `json:"meeting_number"`
	MeetingHost   string `json:"meeting_host"`
	DaysBack      string `json:"days_back"`
}

func (StructuredSubmission) isCommandInput() {}

// AccessRequest is the normalized, validated form of one user command.
type AccessRequest struct {
	RequesterEmail string `validate:"required,email"`
	RequesterID    string `validate:"required"`
	MeetingNumber  string `validate:"required,numeric"`
	HostEmail      string `validate:"omitempty,email"`
	DaysBack       int    `validate:"gt=0,lte=365"`
}

// InboundMessage is a normalized chat event delivered by either transport.
// Submission is non-nil for card submissions, in which case Text is empty.
type InboundMessage struct {
	MessageID   string
	RoomID      string
	PersonID    string
	PersonEmail string
	Text        string
	Submission  *StructuredSubmission
}

// Reply is the single response produced for an inbound command.
type Reply struct {
	Markdown string
	Card     map[string]any
}
