package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/meetrec/recording-bot/internal/audit"
	"github.com/meetrec/recording-bot/internal/bot"
	"github.com/meetrec/recording-bot/internal/config"
	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/internal/events"
	"github.com/meetrec/recording-bot/internal/managers"
	"github.com/meetrec/recording-bot/internal/oauth"
	"github.com/meetrec/recording-bot/internal/server"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		Long:  `Run the HTTP server and the configured inbound event transport.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			return runServe(debug)
		},
	}

	return cmd
}

func runServe(debug bool) error {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := config.LoadApp()
	if err != nil {
		return err
	}

	options, err := config.LoadOptions(app.OptionsFile)
	if err != nil {
		log.Error().Err(err).Msg("Options load failed, starting with defaults")
		options = domain.DefaultOptions()
	}
	optionStore := config.NewStore(options)
	config.WatchOptions(app.OptionsFile, optionStore)

	tokenClient := webex.NewClient(webex.WithBaseURL(app.APIBaseURL))
	tokenManager := managers.NewTokenManager(managers.TokenManagerDependencies{
		StorageKey:   app.StorageKey,
		StoragePath:  options.TokenStoragePath,
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		WebexClient:  tokenClient,
	})

	apiClient := webex.NewClient(
		webex.WithBaseURL(app.APIBaseURL),
		webex.WithTokenSource(tokenManager),
	)
	botClient := webex.NewClient(
		webex.WithBaseURL(app.APIBaseURL),
		webex.WithTokenSource(webex.StaticToken(app.BotToken)),
	)

	auditSink := audit.NewFileSink(options.AuditLogFile)
	defer auditSink.Close()

	authMode := domain.AuthorizationMode(app.AuthMode)

	pipeline := bot.NewPipeline(bot.PipelineDependencies{
		TokenManager: tokenManager,
		Resolver:     bot.NewResolver(bot.ResolverDependencies{WebexClient: apiClient}),
		Policy:       bot.NewPolicy(bot.PolicyDependencies{WebexClient: apiClient}),
		Aggregator:   bot.NewAggregator(bot.AggregatorDependencies{WebexClient: apiClient, Mode: authMode}),
		Formatter:    bot.NewFormatter(),
		Audit:        auditSink,
		Options:      optionStore,
		AuthorizeURL: strings.TrimRight(app.PublicURL, "/") + "/oauth/authorize",
	})

	responder := bot.NewResponder(bot.ResponderDependencies{
		BotClient: botClient,
		Pipeline:  pipeline,
	})

	grantFlow := oauth.NewGrantFlow(oauth.GrantFlowDependencies{
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		AuthURL:      app.APIBaseURL + "/authorize",
		TokenURL:     app.APIBaseURL + "/access_token",
		RedirectURL:  strings.TrimRight(app.PublicURL, "/") + "/oauth/redirect",
		TokenManager: tokenManager,
	})

	var source events.InboundEventSource
	var webhookSource *events.WebhookSource

	switch app.Mode {
	case config.ModeWebhook:
		webhookSource = events.NewWebhookSource(events.WebhookSourceDependencies{
			BotClient: botClient,
			Handler:   responder.Handle,
			TargetURL: strings.TrimRight(app.PublicURL, "/") + "/webhook",
		})
		source = webhookSource
	default:
		source = events.NewWebSocketSource(events.WebSocketSourceDependencies{
			BotClient: botClient,
			BotToken:  app.BotToken,
			DeviceURL: app.DeviceURL,
			Handler:   responder.Handle,
		})
	}

	httpServer := server.NewHTTPServer(server.HTTPServerDependencies{
		GrantFlow:     grantFlow,
		WebhookSource: webhookSource,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", app.HTTPAddress).Msg("Starting HTTP server")
		serverErr <- httpServer.Listen(app.HTTPAddress)
	}()

	sourceErr := make(chan error, 1)
	go func() {
		log.Info().Str("mode", app.Mode).Msg("Starting inbound event source")
		sourceErr <- source.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
			return err
		}
	case err := <-sourceErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Event source failed")
			return err
		}
	}

	return httpServer.Shutdown()
}
