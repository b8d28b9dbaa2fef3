package bot

import (
	"context"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	"github.com/rs/zerolog/log"
)

type ResponderDependencies struct {
	BotClient *webex.Client
	Pipeline  *Pipeline
}

// Responder runs an inbound event through the pipeline and sends the single
// reply back into the originating conversation using the bot account.
type Responder struct {
	botClient *webex.Client
	pipeline  *Pipeline
}

func NewResponder(deps ResponderDependencies) *Responder {
	return &Responder{
		botClient: deps.BotClient,
		pipeline:  deps.Pipeline,
	}
}

// Handle is the event-source callback. Send failures are logged only; there
// is nobody upstream to report them to.
func (r *Responder) Handle(ctx context.Context, msg domain.InboundMessage) {
	reply := r.pipeline.HandleMessage(ctx, msg)
	if reply.Markdown == "" && reply.Card == nil {
		return
	}

	req := webex.CreateMessageRequest{
		RoomID:   msg.RoomID,
		Markdown: reply.Markdown,
	}
	if reply.Card != nil {
		req.Attachments = []map[string]any{reply.Card}
	}

	if _, err := r.botClient.CreateMessage(ctx, req); err != nil {
		log.Error().Err(err).Str("room_id", msg.RoomID).Msg("Failed to send reply")
	}
}
