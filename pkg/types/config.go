package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DiscoveryConfig holds settings for the discovery stage.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Categories lists the arXiv category tags to track (OR'd together).
	Categories []string `json:"categories" yaml:"categories"`

	// MaxResults caps the number of papers returned per run (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Window is the trailing submission window ending at call time
	// (default 48h).
	Window time.Duration `json:"window" yaml:"window"`
}

// FetchConfig holds settings for the PDF retrieval stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PapersDir is the working directory transient PDFs are stored in.
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// AnalysisConfig holds settings for the inference stage.
type AnalysisConfig struct {
	// Model is the inference model identifier (default "deepseek-chat").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the inference API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the OpenAI-protocol endpoint the requests go to.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Delay is the fixed pause before each inference call, applied once
	// per successfully retrieved paper (default 2s).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// MailConfig holds settings for report delivery.
type MailConfig struct {
	// Host is the SMTP server hostname.
	Host string `json:"host" yaml:"host"`

	// Port is the SMTP submission port (default 587).
	Port int `json:"port" yaml:"port"`

	// Username and Password authenticate against the SMTP server.
	Username string `json:"username" yaml:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// From is the sender address.
	From string `json:"from" yaml:"from"`

	// To lists the recipient addresses.
	To []string `json:"to" yaml:"to"`
}

// Complete reports whether every setting needed to dispatch mail is
// present. An incomplete configuration degrades to skip-sending.
func (c MailConfig) Complete() bool {
	return c.Host != "" && c.Port != 0 && c.Username != "" &&
		c.Password != "" && c.From != "" && len(c.To) > 0
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Analysis  AnalysisConfig  `json:"analysis" yaml:"analysis"`
	Mail      MailConfig      `json:"mail" yaml:"mail"`

	// LogFile is the cumulative, append-only analysis log.
	LogFile string `json:"log_file" yaml:"log_file"`

	// StateDir holds the run archive and the last-run summary. Empty
	// disables both.
	StateDir string `json:"state_dir" yaml:"state_dir"`
}
