package events

import (
	"context"
	"fmt"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type WebhookSourceDependencies struct {
	BotClient *webex.Client
	Handler   Handler

	// TargetURL is the externally reachable URL of the webhook endpoint,
	// used to self-register the subscriptions at startup. Empty skips
	// registration (subscriptions managed out of band).
	TargetURL string
}

// WebhookSource receives platform webhook deliveries over the shared HTTP
// server. Webhook payloads only reference resources by id; the full message
// or card submission is fetched before dispatching.
type WebhookSource struct {
	botClient *webex.Client
	handler   Handler
	targetURL string

	selfID string
}

func NewWebhookSource(deps WebhookSourceDependencies) *WebhookSource {
	return &WebhookSource{
		botClient: deps.BotClient,
		handler:   deps.Handler,
		targetURL: deps.TargetURL,
	}
}

// Run registers the webhook subscriptions and then blocks until ctx is
// cancelled; delivery itself rides the HTTP server.
func (s *WebhookSource) Run(ctx context.Context) error {
	me, err := s.botClient.GetMyDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up bot identity: %w", err)
	}
	s.selfID = me.ID

	if s.targetURL != "" {
		subscriptions := []webex.CreateWebhookRequest{
			{Name: "recording-bot-messages", TargetURL: s.targetURL, Resource: "messages", Event: "created"},
			{Name: "recording-bot-cards", TargetURL: s.targetURL, Resource: "attachmentActions", Event: "created"},
		}
		for _, sub := range subscriptions {
			if _, err := s.botClient.EnsureWebhook(ctx, sub); err != nil {
				return fmt.Errorf("webhook registration failed for %s: %w", sub.Resource, err)
			}
		}
		log.Info().Str("target_url", s.targetURL).Msg("Webhook subscriptions registered")
	}

	<-ctx.Done()
	return ctx.Err()
}

type webhookPayload struct {
	Resource string `json:"resource"`
	Event    string `json:"event"`
	Data     struct {
		ID          string `json:"id"`
		RoomID      string `json:"roomId"`
		PersonID    string `json:"personId"`
		PersonEmail string `json:"personEmail"`
	} `json:"data"`
}

// HandleDelivery is the fiber handler mounted on the webhook route.
func (s *WebhookSource) HandleDelivery(c fiber.Ctx) error {
	var payload webhookPayload
	if err := c.Bind().Body(&payload); err != nil {
		log.Debug().Err(err).Msg("Ignoring unparseable webhook delivery")
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if payload.Event != "created" {
		return c.SendStatus(fiber.StatusOK)
	}

	// Replying to our own messages would loop forever.
	if payload.Data.PersonID == s.selfID {
		return c.SendStatus(fiber.StatusOK)
	}

	ctx := context.WithoutCancel(c.RequestCtx())

	switch payload.Resource {
	case "messages":
		s.deliverMessage(ctx, payload)
	case "attachmentActions":
		s.deliverCardAction(ctx, payload)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (s *WebhookSource) deliverMessage(ctx context.Context, payload webhookPayload) {
	message, err := s.botClient.GetMessage(ctx, payload.Data.ID)
	if err != nil {
		log.Error().Err(err).Str("message_id", payload.Data.ID).Msg("Failed to fetch message referenced by webhook")
		return
	}

	s.handler(ctx, domain.InboundMessage{
		MessageID:   message.ID,
		RoomID:      message.RoomID,
		PersonID:    message.PersonID,
		PersonEmail: message.PersonEmail,
		Text:        message.Text,
	})
}

func (s *WebhookSource) deliverCardAction(ctx context.Context, payload webhookPayload) {
	action, err := s.botClient.GetAttachmentAction(ctx, payload.Data.ID)
	if err != nil {
		log.Error().Err(err).Str("action_id", payload.Data.ID).Msg("Failed to fetch card submission referenced by webhook")
		return
	}

	msg, err := submissionMessage(ctx, s.botClient, action)
	if err != nil {
		log.Error().Err(err).Msg("Failed to normalize card submission")
		return
	}

	s.handler(ctx, msg)
}
