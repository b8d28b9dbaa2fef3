package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// App holds the process-level configuration: credentials, addresses, and the
// transport mode. Unlike the bot options it is fixed for the lifetime of the
// process.
type App struct {
	HTTPAddress  string
	BotToken     string
	ClientID     string
	ClientSecret string
	APIBaseURL   string
	PublicURL    string
	Mode         string
	OptionsFile  string
	StorageKey   string
	DeviceURL    string
	AuthMode     string
}

const (
	ModeWebSocket = "websocket"
	ModeWebhook   = "webhook"
)

// LoadApp loads the process configuration from files and environment
// variables.
func LoadApp() (*App, error) {
	v := viper.New()

	setAppDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"HTTPAddress":  "HTTP_ADDRESS",
		"BotToken":     "BOT_ACCESS_TOKEN",
		"ClientID":     "WEBEX_INTEGRATION_CLIENT_ID",
		"ClientSecret": "WEBEX_INTEGRATION_CLIENT_SECRET",
		"APIBaseURL":   "WEBEX_API_BASE_URL",
		"PublicURL":    "PUBLIC_URL",
		"Mode":         "BOT_MODE",
		"OptionsFile":  "OPTIONS_FILE",
		"StorageKey":   "TOKEN_STORAGE_KEY",
		"DeviceURL":    "DEVICE_URL",
		"AuthMode":     "AUTHORIZATION_MODE",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("recording_bot_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validateApp(&app); err != nil {
		return nil, err
	}

	return &app, nil
}

func setAppDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":8080")
	v.SetDefault("APIBaseURL", "https://webexapis.com/v1")
	v.SetDefault("Mode", ModeWebSocket)
	v.SetDefault("OptionsFile", "./options.json")
	v.SetDefault("StorageKey", "recording_bot")
	v.SetDefault("AuthMode", "admin")
}

func validateApp(app *App) error {
	var missingVars []string

	if app.BotToken == "" {
		missingVars = append(missingVars, "BOT_ACCESS_TOKEN")
	}
	if app.ClientID == "" {
		missingVars = append(missingVars, "WEBEX_INTEGRATION_CLIENT_ID")
	}
	if app.ClientSecret == "" {
		missingVars = append(missingVars, "WEBEX_INTEGRATION_CLIENT_SECRET")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingVars, ", "))
	}

	if app.Mode != ModeWebSocket && app.Mode != ModeWebhook {
		return fmt.Errorf("unknown bot mode %q (expected %q or %q)", app.Mode, ModeWebSocket, ModeWebhook)
	}

	return nil
}
