package localization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalize(t *testing.T) {
	tests := []struct {
		name     string
		language string
		key      string
		want     string
	}{
		{
			name:     "known language and key",
			language: "cs_CZ",
			key:      "loc_audio",
			want:     "audio",
		},
		{
			name:     "unknown language falls back to english",
			language: "de_DE",
			key:      "loc_not_approved",
			want:     "You are not permitted to use this bot.",
		},
		{
			name:     "unknown key returns the key itself",
			language: "en_US",
			key:      "loc_does_not_exist",
			want:     "loc_does_not_exist",
		},
		{
			name:     "empty language falls back to english",
			language: "",
			key:      "loc_duration",
			want:     "Duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Localize(tt.language, tt.key))
		})
	}
}

func TestReplace(t *testing.T) {
	got := Replace("No recordings found for meeting {{number}} in the last {{days}} days.", map[string]string{
		"number": "123456789",
		"days":   "10",
	})
	assert.Equal(t, "No recordings found for meeting 123456789 in the last 10 days.", got)

	// Placeholders without a replacement stay verbatim.
	assert.Equal(t, "Meeting {{number}} not found.", Replace("Meeting {{number}} not found.", nil))
}

func TestMessage(t *testing.T) {
	got := Message("cs_CZ", "loc_meeting_not_found", map[string]string{"number": "42"})
	assert.Equal(t, "Meeting 42 nebyl nalezen.", got)
}

func TestLocalesCoverSameKeys(t *testing.T) {
	for key := range Locales["en_US"] {
		_, ok := Locales["cs_CZ"][key]
		assert.True(t, ok, "missing cs_CZ translation for %s", key)
	}
	for key := range Locales["cs_CZ"] {
		_, ok := Locales["en_US"][key]
		assert.True(t, ok, "missing en_US translation for %s", key)
	}
}
