package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/meetrec/recording-bot/internal/domain"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// LoadOptions reads the JSON options file at path. A missing file yields the
// defaults; a malformed file is an error so a typo does not silently drop
// the access-control flags.
func LoadOptions(path string) (domain.Options, error) {
	options := domain.DefaultOptions()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setOptionDefaults(v, options)

	if err := v.ReadInConfig(); err != nil {
		// An explicitly set config file surfaces a plain path error when
		// missing, not viper's not-found type.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("Options file not found, using defaults")
			return options, nil
		}
		return options, fmt.Errorf("error reading options file: %w", err)
	}

	if err := v.Unmarshal(&options); err != nil {
		return options, fmt.Errorf("unable to decode options into struct: %w", err)
	}

	log.Info().Str("path", v.ConfigFileUsed()).Msg("Loaded bot options")
	return options, nil
}

// WatchOptions re-reads the options file whenever it changes on disk and
// pushes the result into the store. Reload failures keep the previous
// options in place.
func WatchOptions(path string, store *Store) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.OnConfigChange(func(_ fsnotify.Event) {
		options, err := LoadOptions(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Options reload failed, keeping previous options")
			return
		}
		store.Reload(options)
		log.Info().Str("path", path).Msg("Bot options reloaded")
	})
	v.WatchConfig()
}

func setOptionDefaults(v *viper.Viper, defaults domain.Options) {
	v.SetDefault("language", defaults.Language)
	v.SetDefault("token_storage_path", defaults.TokenStoragePath)
	v.SetDefault("default_days_back", defaults.DefaultDaysBack)
}
