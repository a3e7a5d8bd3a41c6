package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/discover"
	"github.com/pdiddy/arxiv-digest/internal/secrets"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const secretsDir = ".secrets"

// loadConfig assembles the pipeline configuration from viper (env and
// optional config file), with .secrets/ file fallback for credentials.
// Components receive this value explicitly; nothing reads config state
// after this point.
func loadConfig(timeout time.Duration) types.PipelineConfig {
	httpCfg := types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: defaultUserAgent,
	}

	apiKey := viper.GetString("deepseek_api_key")
	if apiKey == "" {
		apiKey = secrets.Read(secretsDir, "deepseek-api-key")
	}
	smtpPassword := viper.GetString("smtp_password")
	if smtpPassword == "" {
		smtpPassword = secrets.Read(secretsDir, "smtp-password")
	}

	return types.PipelineConfig{
		Discovery: types.DiscoveryConfig{
			HTTPConfig: httpCfg,
			Categories: splitList(viper.GetString("categories")),
			MaxResults: viper.GetInt("max_papers"),
			Window:     discover.DefaultWindow,
		},
		Fetch: types.FetchConfig{
			HTTPConfig: httpCfg,
			PapersDir:  viper.GetString("papers_dir"),
		},
		Analysis: types.AnalysisConfig{
			Model:   viper.GetString("deepseek_model"),
			APIKey:  apiKey,
			BaseURL: viper.GetString("deepseek_base_url"),
			Delay:   viper.GetDuration("analysis_delay"),
		},
		Mail: types.MailConfig{
			Host:     viper.GetString("smtp_server"),
			Port:     viper.GetInt("smtp_port"),
			Username: viper.GetString("smtp_username"),
			Password: smtpPassword,
			From:     viper.GetString("email_from"),
			To:       splitList(viper.GetString("email_to")),
		},
		LogFile:  viper.GetString("log_file"),
		StateDir: viper.GetString("state_dir"),
	}
}

// splitList splits a comma-separated value, trimming entries and
// dropping empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
