package bot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/meetrec/recording-bot/internal/cards"
	"github.com/meetrec/recording-bot/internal/domain"
	"github.com/meetrec/recording-bot/internal/localization"
)

// Formatter renders aggregated recordings into the markdown reply and the
// adaptive-card attachment.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format builds one reply for the given meeting title and recordings. The
// card carries per-recording open-audio/open-video actions and, when at
// least one recording exists, a warning with the expiry of the first
// recording's download links.
func (f *Formatter) Format(title string, recordings []domain.Recording, language string) domain.Reply {
	markdown := fmt.Sprintf("**%s**", title)

	audioWord := localization.Localize(language, "loc_audio")
	videoWord := localization.Localize(language, "loc_video")

	body := []any{
		map[string]any{
			"type":   "TextBlock",
			"text":   title,
			"size":   "Medium",
			"weight": "Bolder",
			"wrap":   true,
		},
	}

	for i, rec := range recordings {
		n := i + 1
		duration := FormatDuration(rec.DurationSeconds)
		markdown += fmt.Sprintf("\n%s: [%s %d](%s) [%s %d](%s), %s",
			rec.Topic, audioWord, n, rec.AudioURL, videoWord, n, rec.VideoURL, duration)

		body = append(body, map[string]any{
			"type": "ColumnSet",
			"columns": []any{
				map[string]any{
					"type":  "Column",
					"width": "stretch",
					"items": []any{
						map[string]any{
							"type": "TextBlock",
							"text": rec.Topic,
							"wrap": true,
						},
						map[string]any{
							"type":     "TextBlock",
							"text":     fmt.Sprintf("%s: %s", localization.Localize(language, "loc_duration"), duration),
							"spacing":  "None",
							"isSubtle": true,
						},
					},
				},
				map[string]any{
					"type":  "Column",
					"width": "auto",
					"items": []any{
						map[string]any{
							"type": "ActionSet",
							"actions": []any{
								map[string]any{
									"type":  "Action.OpenUrl",
									"title": localization.Localize(language, "loc_open_audio"),
									"url":   rec.AudioURL,
								},
								map[string]any{
									"type":  "Action.OpenUrl",
									"title": localization.Localize(language, "loc_open_video"),
									"url":   rec.VideoURL,
								},
							},
						},
					},
				},
			},
		})
	}

	if len(recordings) > 0 {
		body = append(body, map[string]any{
			"type":  "TextBlock",
			"text":  localization.Message(language, "loc_expiry_warning", map[string]string{"expiration": FormatExpiration(recordings[0].URLExpiration)}),
			"wrap":  true,
			"color": "Attention",
		})
	}

	content := cards.EmptyForm()
	content["body"] = body

	return domain.Reply{
		Markdown: markdown,
		Card:     cards.Wrap(content),
	}
}

var requestFormKeys = []string{
	"form_title",
	"form_meeting_number",
	"form_meeting_host",
	"form_days_back",
	"form_submit",
}

// RequestForm builds the localized meeting-request form card sent when a
// command could not be parsed, so the user can fill the fields instead of
// retyping the text grammar. intro becomes the markdown shown alongside the
// card and in clients that cannot render it.
func (f *Formatter) RequestForm(intro, language string, defaultDaysBack int) domain.Reply {
	replacements := make(map[string]string, len(requestFormKeys))
	for _, key := range requestFormKeys {
		replacements[key] = localization.Localize(language, key)
	}

	form := cards.NestedReplaceMap(cards.RequestForm(strconv.Itoa(defaultDaysBack)), replacements)

	return domain.Reply{
		Markdown: intro + "\n" + localization.Localize(language, "loc_default_form_msg"),
		Card:     cards.Wrap(form.(map[string]any)),
	}
}

// FormatDuration renders a duration in seconds as zero-padded MM:SS.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatExpiration reformats an ISO-8601 timestamp into a human
// "YYYY-MM-DD HH:MM:SS GMT" string, keeping the input verbatim when it does
// not parse.
func FormatExpiration(expiration string) string {
	parsed, err := time.Parse(time.RFC3339, expiration)
	if err != nil {
		return expiration
	}
	return parsed.UTC().Format("2006-01-02 15:04:05") + " GMT"
}
