// Package cards builds the adaptive-card attachments sent with bot replies.
package cards

import "strings"

const cardContentType = "application/vnd.microsoft.card.adaptive"

// Wrap puts card content into the attachment envelope expected by the
// messages API.
func Wrap(content map[string]any) map[string]any {
	return map[string]any{
		"contentType": cardContentType,
		"content":     content,
	}
}

// EmptyForm returns a fresh adaptive-card skeleton with an empty body.
func EmptyForm() map[string]any {
	return map[string]any{
		"type":    "AdaptiveCard",
		"$schema": "http://adaptivecards.io/schemas/adaptive-card.json",
		"version": "1.2",
		"body":    []any{},
	}
}

// NestedReplace walks a card structure and replaces every {{original}}
// wrapped string with the new value, recursing through maps and lists.
func NestedReplace(structure any, original, replacement string) any {
	switch v := structure.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = NestedReplace(item, original, replacement)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = NestedReplace(value, original, replacement)
		}
		return out
	case string:
		return strings.ReplaceAll(v, "{{"+original+"}}", replacement)
	default:
		return structure
	}
}

// NestedReplaceMap applies NestedReplace for every key/value pair.
func NestedReplaceMap(structure any, replacements map[string]string) any {
	for original, replacement := range replacements {
		structure = NestedReplace(structure, original, replacement)
	}
	return structure
}
