package bot

import (
	"net/http"
	"testing"

	"github.com/meetrec/recording-bot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func pmrClient(t *testing.T, accessCode string) *Policy {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meetingPreferences/personalMeetingRoom" {
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"accessCode": accessCode,
		})
	})
	return NewPolicy(PolicyDependencies{WebexClient: client})
}

func TestPolicy_CheckPersonalRoom(t *testing.T) {
	t.Run("number does not match any personal room", func(t *testing.T) {
		policy := pmrClient(t, "5550001111")

		decision := policy.CheckPersonalRoom(t.Context(), "user@example.com", "user@example.com", "1234567890")
		assert.Equal(t, domain.DecisionPermitted, decision)
	})

	t.Run("requester asking for someone else's personal room", func(t *testing.T) {
		policy := pmrClient(t, "1234567890")

		decision := policy.CheckPersonalRoom(t.Context(), "user@example.com", "host@example.com", "1234567890")
		assert.Equal(t, domain.DecisionDeniedPMR, decision)
	})

	t.Run("owner asking for their own personal room", func(t *testing.T) {
		policy := pmrClient(t, "1234567890")

		decision := policy.CheckPersonalRoom(t.Context(), "Host@Example.com", "host@example.com", "1234567890")
		assert.Equal(t, domain.DecisionPermitted, decision)
	})

	t.Run("access code with embedded spaces still matches", func(t *testing.T) {
		policy := pmrClient(t, "123 456 7890")

		decision := policy.CheckPersonalRoom(t.Context(), "user@example.com", "host@example.com", "1234567890")
		assert.Equal(t, domain.DecisionDeniedPMR, decision)
	})

	t.Run("preferences lookup failure skips the rule", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusForbidden, map[string]any{"message": "nope"})
		})
		policy := NewPolicy(PolicyDependencies{WebexClient: client})

		decision := policy.CheckPersonalRoom(t.Context(), "user@example.com", "host@example.com", "1234567890")
		assert.Equal(t, domain.DecisionPermitted, decision)
	})
}

func TestPolicy_CheckHostOnly(t *testing.T) {
	t.Run("stable id mismatch denies even with matching emails", func(t *testing.T) {
		policy := NewPolicy(PolicyDependencies{WebexClient: newTestClient(t, http.NotFound)})

		resolution := &Resolution{HostEmail: "user@example.com", HostID: "host-id"}
		decision := policy.CheckHostOnly(t.Context(), "different-id", resolution)
		assert.Equal(t, domain.DecisionDeniedHostOnly, decision)
	})

	t.Run("matching stable ids permit", func(t *testing.T) {
		policy := NewPolicy(PolicyDependencies{WebexClient: newTestClient(t, http.NotFound)})

		resolution := &Resolution{HostEmail: "host@example.com", HostID: "same-id"}
		decision := policy.CheckHostOnly(t.Context(), "same-id", resolution)
		assert.Equal(t, domain.DecisionPermitted, decision)
	})

	t.Run("host id derived from email when missing", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, items(map[string]any{
				"id":     "host-id",
				"emails": []string{"host@example.com"},
			}))
		})
		policy := NewPolicy(PolicyDependencies{WebexClient: client})

		resolution := &Resolution{HostEmail: "host@example.com"}
		assert.Equal(t, domain.DecisionPermitted, policy.CheckHostOnly(t.Context(), "host-id", resolution))
		assert.Equal(t, domain.DecisionDeniedHostOnly, policy.CheckHostOnly(t.Context(), "someone-else", resolution))
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		policy := NewPolicy(PolicyDependencies{WebexClient: newTestClient(t, http.NotFound)})

		resolution := &Resolution{HostEmail: "host@example.com", HostID: "host-id"}
		first := policy.CheckHostOnly(t.Context(), "user-id", resolution)
		second := policy.CheckHostOnly(t.Context(), "user-id", resolution)
		assert.Equal(t, first, second)
	})
}
