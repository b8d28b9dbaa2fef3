// Package oauth implements the integration authorization grant flow. The
// bot cannot call the meetings APIs until an admin has walked through it
// once; afterwards the token manager keeps the tokens alive by refreshing.
package oauth

import (
	"context"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/internal/managers"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// MeetingsRecordingReadScopes are the integration scopes needed to resolve
// meetings and read their recordings and preferences.
var MeetingsRecordingReadScopes = []string{
	"meeting:admin_schedule_read",
	"meeting:admin_preferences_read",
	"spark-compliance:meetings_read",
	"spark:people_read",
	"spark:kms",
}

const stateCheck = "Webex"

type GrantFlowDependencies struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
	TokenManager *managers.TokenManager
}

// GrantFlow serves the /authorize, /redirect, and /authdone routes of the
// OAuth dance and hands the obtained bundle to the token manager.
type GrantFlow struct {
	config       oauth2.Config
	tokenManager *managers.TokenManager
}

func NewGrantFlow(deps GrantFlowDependencies) *GrantFlow {
	return &GrantFlow{
		config: oauth2.Config{
			ClientID:     deps.ClientID,
			ClientSecret: deps.ClientSecret,
			RedirectURL:  deps.RedirectURL,
			Scopes:       MeetingsRecordingReadScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   deps.AuthURL,
				TokenURL:  deps.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		tokenManager: deps.TokenManager,
	}
}

// Register mounts the grant flow routes on the given router.
func (g *GrantFlow) Register(router fiber.Router) {
	router.Get("/authorize", g.Authorize)
	router.Get("/redirect", g.Redirect)
	router.Get("/authdone", g.AuthDone)
}

func (g *GrantFlow) Authorize(c fiber.Ctx) error {
	authURL := g.config.AuthCodeURL(stateCheck)
	log.Debug().Str("url", authURL).Msg("Redirecting to authorization URL")
	return c.Redirect().To(authURL)
}

func (g *GrantFlow) Redirect(c fiber.Ctx) error {
	if errDescription := c.Query("error_description"); errDescription != "" {
		return c.Status(fiber.StatusBadRequest).SendString(errDescription)
	}

	if state := c.Query("state"); state != stateCheck {
		log.Info().Str("state", state).Msg("Authorization redirect with unexpected state")
		return c.SendStatus(fiber.StatusBadRequest)
	}

	code := c.Query("code")
	ctx := context.WithoutCancel(c.RequestCtx())

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("Authorization code exchange failed")
		return c.Status(fiber.StatusBadGateway).SendString("Error issuing an access token.")
	}

	bundle := bundleFromToken(token)
	if err := g.tokenManager.Store(ctx, bundle); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Error storing the access token.")
	}

	return c.Redirect().To("/oauth/authdone")
}

func (g *GrantFlow) AuthDone(c fiber.Ctx) error {
	return c.SendString("Thank you for providing the authorization. You may close this browser window.")
}

// bundleFromToken converts an exchanged oauth2 token into the persisted
// bundle form. The refresh-token expiry only exists as a vendor extension.
func bundleFromToken(token *oauth2.Token) domain.TokenBundle {
	bundle := domain.TokenBundle{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}

	if !token.Expiry.IsZero() {
		bundle.ExpiresAt = float64(token.Expiry.UTC().Unix())
	}
	if v, ok := token.Extra("refresh_token_expires_in").(float64); ok {
		bundle.RefreshTokenExpiresIn = int64(v)
	}

	return bundle
}
