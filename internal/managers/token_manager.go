package managers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/pkg/clients/webex"

	"github.com/rs/zerolog/log"
)

// TokenRefreshMargin is how long before expiry a refresh is attempted. An
// access token this close to expiring is never handed out without trying a
// refresh first.
const TokenRefreshMargin = 3600 * time.Second

const tokenFilePattern = "webex_tokens_%s.json"

type TokenManagerDependencies struct {
	StorageKey   string
	StoragePath  string
	ClientID     string
	ClientSecret string
	WebexClient  *webex.Client
}

// TokenManager owns the OAuth token lifecycle for one storage key: loading
// the persisted bundle, refreshing proactively before expiry, and persisting
// every mutation. It is safe for concurrent use: the token endpoint
// invalidates the old refresh token on use, so refreshes for the same key
// must never race.
type TokenManager struct {
	storageKey   string
	storagePath  string
	clientID     string
	clientSecret string
	webexClient  *webex.Client

	mu        sync.Mutex
	bundle    *domain.TokenBundle
	refreshed bool

	now func() time.Time
}

func NewTokenManager(deps TokenManagerDependencies) *TokenManager {
	m := &TokenManager{
		storageKey:   deps.StorageKey,
		storagePath:  deps.StoragePath,
		clientID:     deps.ClientID,
		clientSecret: deps.ClientSecret,
		webexClient:  deps.WebexClient,
		now:          time.Now,
	}

	bundle, err := m.loadBundle()
	if err != nil {
		log.Info().Err(err).Str("storage_key", m.storageKey).Msg("No persisted token bundle loaded")
	} else {
		m.bundle = bundle
	}

	return m
}

// Token implements webex.TokenSource.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	return m.GetAccessToken(ctx)
}

// GetAccessToken returns a currently valid access token, refreshing first if
// the stored token expires within the safety margin. It returns
// domain.ErrNoToken when no bundle exists or when a refresh attempt fails.
func (m *TokenManager) GetAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bundle == nil {
		return "", domain.ErrNoToken
	}

	// Holding the lock across the refresh means a concurrent caller waits and
	// then sees the fresh bundle instead of racing a second refresh.
	remaining := m.bundle.ExpiresAtTime().Sub(m.now().UTC())
	if remaining < TokenRefreshMargin {
		log.Info().
			Str("storage_key", m.storageKey).
			Dur("remaining", remaining).
			Msg("Access token expiring, attempting refresh")

		if err := m.refreshTokens(ctx); err != nil {
			log.Error().Err(err).Str("storage_key", m.storageKey).Msg("Token refresh failed")
			return "", domain.ErrNoToken
		}
	}

	return m.bundle.AccessToken, nil
}

// Store persists a newly obtained or refreshed bundle, computing the
// absolute expiry fields from the relative ones when absent.
func (m *TokenManager) Store(ctx context.Context, bundle domain.TokenBundle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setExpiration(&bundle)
	m.bundle = &bundle

	if err := m.saveBundle(&bundle); err != nil {
		log.Error().Err(err).Str("storage_key", m.storageKey).Msg("Token bundle save failed")
		return err
	}
	return nil
}

// TokenRefreshed reports whether the last GetAccessToken call performed a
// refresh. The flag auto-resets on read.
func (m *TokenManager) TokenRefreshed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	refreshed := m.refreshed
	m.refreshed = false
	return refreshed
}

// refreshTokens exchanges the stored refresh token for a new pair. Callers
// must hold m.mu.
func (m *TokenManager) refreshTokens(ctx context.Context) error {
	resp, err := m.webexClient.RefreshTokens(ctx, m.clientID, m.clientSecret, m.bundle.RefreshToken)
	if err != nil {
		return fmt.Errorf("refresh token exchange failed: %w", err)
	}

	bundle := domain.TokenBundle{
		AccessToken:           resp.AccessToken,
		RefreshToken:          resp.RefreshToken,
		ExpiresIn:             resp.ExpiresIn,
		RefreshTokenExpiresIn: resp.RefreshTokenExpiresIn,
	}
	m.setExpiration(&bundle)
	m.bundle = &bundle
	m.refreshed = true

	if err := m.saveBundle(&bundle); err != nil {
		log.Error().Err(err).Str("storage_key", m.storageKey).Msg("Refreshed token bundle save failed")
	}

	log.Info().Str("storage_key", m.storageKey).Msg("Tokens refreshed")
	return nil
}

func (m *TokenManager) setExpiration(bundle *domain.TokenBundle) {
	now := m.now().UTC()
	if bundle.ExpiresAt == 0 {
		bundle.ExpiresAt = float64(now.Add(time.Duration(bundle.ExpiresIn) * time.Second).Unix())
	}
	if bundle.RefreshTokenExpiresAt == 0 {
		bundle.RefreshTokenExpiresAt = float64(now.Add(time.Duration(bundle.RefreshTokenExpiresIn) * time.Second).Unix())
	}
}

func (m *TokenManager) tokenFile() string {
	return filepath.Join(m.storagePath, fmt.Sprintf(tokenFilePattern, m.storageKey))
}

func (m *TokenManager) loadBundle() (*domain.TokenBundle, error) {
	data, err := os.ReadFile(m.tokenFile())
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var bundle domain.TokenBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	log.Debug().Str("file", m.tokenFile()).Msg("Loaded persisted token bundle")
	return &bundle, nil
}

func (m *TokenManager) saveBundle(bundle *domain.TokenBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal token bundle: %w", err)
	}

	if err := os.WriteFile(m.tokenFile(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	log.Debug().Str("file", m.tokenFile()).Msg("Saved token bundle")
	return nil
}
