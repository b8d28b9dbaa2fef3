package events

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	wsWriteTimeout      = 10 * time.Second
	wsPongTimeout       = 90 * time.Second
	wsPingInterval      = 30 * time.Second
	wsReconnectMin      = time.Second
	wsReconnectMax      = 2 * time.Minute
	activityTypePost    = "post"
	activityTypeCardAct = "cardAction"
)

type WebSocketSourceDependencies struct {
	BotClient *webex.Client
	BotToken  string
	DeviceURL string
	Handler   Handler
}

// WebSocketSource keeps a persistent device connection to the platform and
// turns activity frames into normalized inbound messages.
type WebSocketSource struct {
	botClient *webex.Client
	botToken  string
	deviceURL string
	handler   Handler

	selfID string
}

func NewWebSocketSource(deps WebSocketSourceDependencies) *WebSocketSource {
	return &WebSocketSource{
		botClient: deps.BotClient,
		botToken:  deps.BotToken,
		deviceURL: deps.DeviceURL,
		handler:   deps.Handler,
	}
}

// Run registers a device, dials its websocket URL, and consumes activity
// frames, reconnecting with exponential backoff until ctx is cancelled.
func (s *WebSocketSource) Run(ctx context.Context) error {
	me, err := s.botClient.GetMyDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up bot identity: %w", err)
	}
	s.selfID = me.ID

	backoff := wsReconnectMin
	for {
		if err := s.connectAndListen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Dur("retry_in", backoff).Msg("Websocket connection lost, reconnecting")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > wsReconnectMax {
			backoff = wsReconnectMax
		}
	}
}

func (s *WebSocketSource) connectAndListen(ctx context.Context) error {
	device, err := s.botClient.CreateDevice(ctx, s.deviceURL, "recording-bot")
	if err != nil {
		return fmt.Errorf("device registration failed: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.botToken)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, device.WebSocketURL, header)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}
	defer conn.Close()

	log.Info().Str("url", device.WebSocketURL).Msg("Websocket connected")

	auth := map[string]any{
		"id":   time.Now().UnixNano(),
		"type": "authorization",
		"data": map[string]string{"token": "Bearer " + s.botToken},
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(auth); err != nil {
		return fmt.Errorf("websocket authorization failed: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(ctx, conn, done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("websocket read failed: %w", err)
		}
		s.handleFrame(ctx, payload)
	}
}

func (s *WebSocketSource) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close()
			return
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type activityFrame struct {
	Data struct {
		EventType string `json:"eventType"`
		Activity  struct {
			ID    string `json:"id"`
			Verb  string `json:"verb"`
			Actor struct {
				ID           string `json:"id"`
				EmailAddress string `json:"emailAddress"`
			} `json:"actor"`
		} `json:"activity"`
	} `json:"data"`
}

func (s *WebSocketSource) handleFrame(ctx context.Context, payload []byte) {
	var frame activityFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		log.Debug().Err(err).Msg("Ignoring unparseable websocket frame")
		return
	}

	if frame.Data.EventType != "conversation.activity" {
		return
	}

	switch frame.Data.Activity.Verb {
	case activityTypePost:
		s.handlePost(ctx, frame)
	case activityTypeCardAct:
		s.handleCardAction(ctx, frame)
	}
}

func (s *WebSocketSource) handlePost(ctx context.Context, frame activityFrame) {
	messageID := hydraID("MESSAGE", frame.Data.Activity.ID)

	message, err := s.botClient.GetMessage(ctx, messageID)
	if err != nil {
		log.Error().Err(err).Str("message_id", messageID).Msg("Failed to fetch message referenced by websocket frame")
		return
	}

	if message.PersonID == s.selfID {
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

func (s *WebSocketSource) handleCardAction(ctx context.Context, frame activityFrame) {
	actionID := hydraID("ATTACHMENT_ACTION", frame.Data.Activity.ID)

	action, err := s.botClient.GetAttachmentAction(ctx, actionID)
	if err != nil {
		log.Error().Err(err).Str("action_id", actionID).Msg("Failed to fetch card submission referenced by websocket frame")
		return
	}

	msg, err := submissionMessage(ctx, s.botClient, action)
	if err != nil {
		log.Error().Err(err).Msg("Failed to normalize card submission")
		return
	}

	s.handler(ctx, msg)
}

// hydraID converts a raw activity uuid into the base64 resource id the REST
// API expects.
func hydraID(resourceType, uuid string) string {
	raw := fmt.Sprintf("ciscospark://us/%s/%s", resourceType, uuid)
	return strings.TrimRight(base64.URLEncoding.EncodeToString([]byte(raw)), "=")
}

// submissionMessage turns an attachment action into a normalized inbound
// message, resolving the submitter's email through the people API.
func submissionMessage(ctx context.Context, client *webex.Client, action *webex.AttachmentAction) (domain.InboundMessage, error) {
	person, err := client.GetPersonDetails(ctx, action.PersonID)
	if err != nil {
		return domain.InboundMessage{}, fmt.Errorf("submitter lookup failed: %w", err)
	}

	email := ""
	if len(person.Emails) > 0 {
		email = person.Emails[0]
	}

	submission := domain.StructuredSubmission{}
	if v, ok := action.Inputs["meeting_number"].(string); ok {
		submission.MeetingNumber = v
	}
	if v, ok := action.Inputs["meeting_host"].(string); ok {
		submission.MeetingHost = v
	}
	switch v := action.Inputs["days_back"].(type) {
	case string:
		submission.DaysBack = v
	case float64:
		submission.DaysBack = fmt.Sprintf("%.0f", v)
	}

	return domain.InboundMessage{
		MessageID:   action.MessageID,
		RoomID:      action.RoomID,
		PersonID:    action.PersonID,
		PersonEmail: email,
		Submission:  &submission,
	}, nil
}
