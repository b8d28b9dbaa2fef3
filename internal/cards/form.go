package cards

// RequestForm is the card presented to users who want to look a meeting up
// without typing the text command. Placeholders are filled per language via
// NestedReplaceMap before sending.
func RequestForm(defaultDaysBack string) map[string]any {
	content := EmptyForm()
	content["body"] = []any{
		map[string]any{
			"type":   "TextBlock",
			"text":   "{{form_title}}",
			"size":   "Medium",
			"weight": "Bolder",
		},
		map[string]any{
			"type":        "Input.Text",
			"id":          "meeting_number",
			"label":       "{{form_meeting_number}}",
			"isRequired":  true,
			"placeholder": "1234567890",
		},
		map[string]any{
			"type":        "Input.Text",
			"id":          "meeting_host",
			"label":       "{{form_meeting_host}}",
			"placeholder": "host@example.com",
		},
		map[string]any{
			"type":  "Input.Number",
			"id":    "days_back",
			"label": "{{form_days_back}}",
			"value": defaultDaysBack,
		},
	}
	content["actions"] = []any{
		map[string]any{
			"type":  "Action.Submit",
			"title": "{{form_submit}}",
		},
	}

	return content
}
