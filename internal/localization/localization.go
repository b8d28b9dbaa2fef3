// Package localization holds the user-facing string tables. Each language
// has its own table; lookups for a missing language or key fall back to the
// untranslated template key so a gap never breaks a reply.
package localization

import "strings"

type Table map[string]string

var enUS = Table{
	"loc_please_authorize":      "The bot is not authorized yet. Please open {{url}} and complete the authorization.",
	"loc_invalid_number":        "Invalid meeting number. Send \"rec <meeting number>\" to get recording links.",
	"loc_meeting_not_found":     "Meeting {{number}} not found.",
	"loc_unable_to_get_meeting": "Unable to get the meeting information. Please try again later.",
	"loc_no_recordings":         "No recordings found for meeting {{number}} in the last {{days}} days.",
	"loc_meetings_found":        "Found {{count}} ended meeting(s) for number {{number}}.",
	"loc_denied_pmr":            "Meeting {{number}} is a personal room of another user. Only its owner can request the recordings.",
	"loc_denied_host_only":      "Only the meeting host can request the recordings of meeting {{number}}.",
	"loc_not_approved":          "You are not permitted to use this bot.",
	"loc_audio":                 "audio",
	"loc_video":                 "video",
	"loc_duration":              "Duration",
	"loc_open_audio":            "Open audio",
	"loc_open_video":            "Open video",
	"loc_expiry_warning":        "The download links expire at {{expiration}}.",
	"loc_default_form_msg":      "This is a form. It can be displayed in a Webex app or web client.",
	"form_title":                "Get meeting recordings",
	"form_meeting_number":       "Meeting number",
	"form_meeting_host":         "Meeting host (optional)",
	"form_days_back":            "Days back",
	"form_submit":               "Get recordings",
}

var csCZ = Table{
	"loc_please_authorize":      "Bot zatím není autorizován. Otevřete {{url}} a dokončete autorizaci.",
	"loc_invalid_number":        "Neplatné číslo meetingu. Pošlete \"rec <číslo meetingu>\" pro získání odkazů na nahrávky.",
	"loc_meeting_not_found":     "Meeting {{number}} nebyl nalezen.",
	"loc_unable_to_get_meeting": "Nepodařilo se získat informace o meetingu. Zkuste to prosím později.",
	"loc_no_recordings":         "Pro meeting {{number}} nebyly za posledních {{days}} dní nalezeny žádné nahrávky.",
	"loc_meetings_found":        "Nalezeno {{count}} ukončených meetingů pro číslo {{number}}.",
	"loc_denied_pmr":            "Meeting {{number}} je osobní místnost jiného uživatele. Nahrávky může získat pouze její vlastník.",
	"loc_denied_host_only":      "Nahrávky meetingu {{number}} může získat pouze jeho hostitel.",
	"loc_not_approved":          "Nemáte oprávnění používat tohoto bota.",
	"loc_audio":                 "audio",
	"loc_video":                 "video",
	"loc_duration":              "Délka",
	"loc_open_audio":            "Otevřít audio",
	"loc_open_video":            "Otevřít video",
	"loc_expiry_warning":        "Platnost odkazů ke stažení vyprší {{expiration}}.",
	"loc_default_form_msg":      "Toto je formulář. Zobrazíte si ho v aplikaci nebo webovém klientovi Webex.",
	"form_title":                "Získat nahrávky meetingu",
	"form_meeting_number":       "Číslo meetingu",
	"form_meeting_host":         "Hostitel meetingu (nepovinné)",
	"form_days_back":            "Počet dní zpět",
	"form_submit":               "Získat nahrávky",
}

// Locales maps language codes to their string tables.
var Locales = map[string]Table{
	"en_US": enUS,
	"cs_CZ": csCZ,
}

// Localize returns the template for key in the given language. A missing
// language or key returns the key itself.
func Localize(language, key string) string {
	table, ok := Locales[language]
	if !ok {
		table = enUS
	}
	if value, ok := table[key]; ok {
		return value
	}
	return key
}

// Replace substitutes every {{name}} placeholder in template with the value
// from replacements.
func Replace(template string, replacements map[string]string) string {
	for name, value := range replacements {
		template = strings.ReplaceAll(template, "{{"+name+"}}", value)
	}
	return template
}

// Message localizes key and applies replacements in one step.
func Message(language, key string, replacements map[string]string) string {
	return Replace(Localize(language, key), replacements)
}
