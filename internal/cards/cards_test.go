package cards

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNestedReplace(t *testing.T) {
	card := map[string]any{
		"type": "AdaptiveCard",
		"body": []any{
			map[string]any{"type": "TextBlock", "text": "{{form_title}}"},
			map[string]any{"type": "Input.Number", "id": "days_back", "value": 10},
		},
	}

	got := NestedReplace(card, "form_title", "Get meeting recordings").(map[string]any)

	body := got["body"].([]any)
	assert.Equal(t, "Get meeting recordings", body[0].(map[string]any)["text"])
	// Non-string leaves pass through untouched.
	assert.Equal(t, 10, body[1].(map[string]any)["value"])
	// The input is not mutated.
	assert.Equal(t, "{{form_title}}", card["body"].([]any)[0].(map[string]any)["text"])
}

func TestRequestFormLocalized(t *testing.T) {
	form := NestedReplaceMap(RequestForm("10"), map[string]string{
		"form_title":          "Get meeting recordings",
		"form_meeting_number": "Meeting number",
		"form_meeting_host":   "Meeting host (optional)",
		"form_days_back":      "Days back",
		"form_submit":         "Get recordings",
	})

	data, err := json.Marshal(form)
	require.NoError(t, err)

	rendered := string(data)
	assert.NotContains(t, rendered, "{{")
	assert.Contains(t, rendered, "Get meeting recordings")
	assert.Contains(t, rendered, `"id":"meeting_number"`)
	assert.Contains(t, rendered, `"id":"meeting_host"`)
	assert.Contains(t, rendered, `"id":"days_back"`)
}

func TestWrap(t *testing.T) {
	attachment := Wrap(EmptyForm())

	assert.Equal(t, "application/vnd.microsoft.card.adaptive", attachment["contentType"])

	content, ok := attachment["content"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AdaptiveCard", content["type"])
	assert.True(t, strings.HasPrefix(content["$schema"].(string), "http://adaptivecards.io/"))
}
