package domain

// Options is the hot-reloadable bot policy configuration backed by the JSON
// options file. A snapshot is taken once per request so an in-flight command
// never observes a partially applied reload.
type Options struct {
	ApprovedUsers     []string `json:"approved_users" mapstructure:"approved_users"`
	ApprovedDomains   []string `json:"approved_domains" mapstructure:"approved_domains"`
	RespondOnlyToHost bool     `json:"respond_only_to_host" mapstructure:"respond_only_to_host"`
	ProtectPMR        bool     `json:"protect_pmr" mapstructure:"protect_pmr"`
	Language          string   `json:"language" mapstructure:"language"`
	TokenStoragePath  string   `json:"token_storage_path" mapstructure:"token_storage_path"`
	AuditLogFile      string   `json:"audit_log_file" mapstructure:"audit_log_file"`
	LogFile           string   `json:"log_file" mapstructure:"log_file"`
	DefaultDaysBack   int      `json:"default_days_back" mapstructure:"default_days_back"`
}

// DefaultOptions are the values used when the options file is missing or
// fails to load.
func DefaultOptions() Options {
	return Options{
		Language:         "en_US",
		TokenStoragePath: "./",
		DefaultDaysBack:  10,
	}
}
