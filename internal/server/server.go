package server

import (
	"time"

	"github.com/meetrec/recording-bot/internal/events"
	"github.com/meetrec/recording-bot/internal/oauth"
	"github.com/meetrec/recording-bot/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type HTTPServerDependencies struct {
	GrantFlow *oauth.GrantFlow

	// WebhookSource is nil when the bot runs in websocket mode; the webhook
	// route is only mounted for webhook delivery.
	WebhookSource *events.WebhookSource
}

func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "recording-bot",
	})

	router.Use(cors.New())
	router.Use(logger.New())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "recording-bot",
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	if deps.GrantFlow != nil {
		deps.GrantFlow.Register(router.Group("/oauth"))
	}

	if deps.WebhookSource != nil {
		router.Post("/webhook", deps.WebhookSource.HandleDelivery)
	}

	return router
}
