// Package main is the entry point for the arxiv-digest CLI. One
// invocation performs a single discovery-to-notification pass and
// exits; per-paper failures are absorbed by the pipeline and only
// setup or discovery faults produce a non-zero exit.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/analyze"
	"github.com/pdiddy/arxiv-digest/internal/pipeline"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "arxiv-digest/0.1"
)

var rootCmd = &cobra.Command{
	Use:     "arxiv-digest",
	Short:   "Track, analyze, and report recent arXiv papers",
	Version: version,
	Long: `arxiv-digest polls arXiv for papers submitted in the last two days in the
configured categories, downloads each PDF, generates a per-paper analysis
through an OpenAI-compatible inference service, appends the analyses to a
cumulative log, and emails an HTML report to the configured recipients.

Settings come from the environment (a .env file is honored), optionally an
arxiv-digest.yaml config file, and .secrets/ files for credentials.`,
	RunE: run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml)")
	rootCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
}

func initConfig() {
	// .env first so viper's env lookup sees its values.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetDefault("smtp_port", 587)
	viper.SetDefault("categories", "cs.AR,cs.AI")
	viper.SetDefault("max_papers", 50)
	viper.SetDefault("papers_dir", "papers")
	viper.SetDefault("log_file", "conclusion.md")
	viper.SetDefault("state_dir", "state")
	viper.SetDefault("analysis_delay", "2s")
	viper.SetDefault("deepseek_base_url", analyze.DefaultBaseURL)
	viper.SetDefault("deepseek_model", "deepseek-chat")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := loadConfig(timeout)
	if len(cfg.Discovery.Categories) == 0 {
		return fmt.Errorf("no categories configured (set CATEGORIES)")
	}
	if cfg.Analysis.APIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: no inference API key configured; analyses will fail")
	}

	client := &http.Client{Timeout: timeout}
	backend := analyze.NewDeepSeekBackend(cfg.Analysis)

	p := pipeline.New(cfg, client, backend, os.Stdout)
	return p.Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
