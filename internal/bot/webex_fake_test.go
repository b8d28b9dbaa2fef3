package bot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meetrec/recording-bot/pkg/clients/webex"
)

// newTestClient spins up a fake Webex API backed by the given handler and
// returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *webex.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return webex.NewClient(
		webex.WithBaseURL(srv.URL),
		webex.WithTokenSource(webex.StaticToken("test-token")),
	)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("failed to encode fake response: %v", err)
	}
}

func items(list ...map[string]any) map[string]any {
	return map[string]any{"items": list}
}
