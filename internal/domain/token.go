package domain

import (
	"errors"
	"time"
)

// ErrNoToken is returned when no usable access token exists, either because
// the OAuth grant flow was never completed or because a refresh attempt failed.
var ErrNoToken = errors.New("no valid access token available")

// TokenBundle is the persisted form of a Webex integration token pair.
// The OAuth endpoint only returns relative "expires_in" values; absolute
// timestamps are computed once on store and kept in the same file so the
// bundle survives process restarts.
type TokenBundle struct {
	AccessToken           string  `json:"access_token"`
	RefreshToken          string  `json:"refresh_token"`
	ExpiresIn             int64   `json:"expires_in,omitempty"`
	RefreshTokenExpiresIn int64   `json:"refresh_token_expires_in,omitempty"`
	ExpiresAt             float64 `json:"expires_at,omitempty"`
	RefreshTokenExpiresAt float64 `json:"refresh_token_expires_at,omitempty"`
}

// ExpiresAtTime converts the stored unix timestamp to UTC time.
func (t TokenBundle) ExpiresAtTime() time.Time {
	return time.Unix(int64(t.ExpiresAt), 0).UTC()
}

func (t TokenBundle) RefreshTokenExpiresAtTime() time.Time {
	return time.Unix(int64(t.RefreshTokenExpiresAt), 0).UTC()
}

// HasAbsoluteExpiry reports whether the absolute timestamps were already
// computed for this bundle.
func (t TokenBundle) HasAbsoluteExpiry() bool {
	return t.ExpiresAt != 0
}
