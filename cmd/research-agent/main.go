// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-agent CLI.
//
// research-agent answers three kinds of request by delegating to a hosted
// chat provider: finding academic papers online, answering questions over
// a local folder of PDF papers, and verifying whether a paragraph's
// citations are supported by those papers.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-agent/internal/agent"
	"github.com/pdiddy/research-agent/internal/pdftext"
	"github.com/pdiddy/research-agent/internal/prompt"
	"github.com/pdiddy/research-agent/internal/provider"
	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/internal/store"
	"github.com/pdiddy/research-agent/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the research-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "AI-assisted literature search, paper analysis, and citation verification",
	Long: `research-agent is a research assistant backed by a hosted chat provider
(Anthropic or OpenAI). It searches academic sources for papers, answers
questions over a local folder of PDF papers, and verifies whether a
written paragraph's citations are actually supported by those papers.

Provider selection: --provider, the provider key in the config file, or
whichever of ANTHROPIC_API_KEY / OPENAI_API_KEY is set (Anthropic wins
when both are). Keys may also live in .secrets/anthropic-api-key and
.secrets/openai-api-key.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-agent.yaml or ~/.config/research-agent/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "chat provider: anthropic or openai (default: whichever has a key)")
	rootCmd.PersistentFlags().String("model", "", "model identifier (default: provider-specific)")
}

func initConfig() {
	// A local .env may carry the API keys; missing is fine.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-agent"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_AGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// secretDefault returns value if set, then the secrets-file entry for key.
func secretDefault(key, value string) string {
	if value != "" {
		return value
	}
	return loadedSecrets[key]
}

// buildConfig assembles the agent configuration from flags, the config
// file, environment variables, and .secrets/ files, in that precedence.
func buildConfig(cmd *cobra.Command) types.AgentConfig {
	cfg := types.AgentConfig{
		Provider: types.ProviderConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("timeout"),
				UserAgent: "research-agent/" + version,
			},
			Provider:        types.ProviderName(viper.GetString("provider")),
			Model:           viper.GetString("model"),
			AnthropicAPIKey: viper.GetString("anthropic_api_key"),
			OpenAIAPIKey:    viper.GetString("openai_api_key"),
			MaxTokens:       viper.GetInt("max_tokens"),
		},
		Store: types.StoreConfig{
			PapersDir:   viper.GetString("papers_dir"),
			MaxPages:    viper.GetInt("max_pages"),
			Parallelism: viper.GetInt("parallelism"),
		},
		Prompt: types.PromptConfig{
			PerPaperChars: viper.GetInt("per_paper_chars"),
			TotalBudget:   viper.GetInt("total_budget"),
			MaxPapers:     viper.GetInt("max_papers"),
		},
	}

	if flag, _ := cmd.Flags().GetString("provider"); flag != "" {
		cfg.Provider.Provider = types.ProviderName(flag)
	}
	if flag, _ := cmd.Flags().GetString("model"); flag != "" {
		cfg.Provider.Model = flag
	}
	if cfg.Provider.Timeout <= 0 {
		cfg.Provider.Timeout = 120 * time.Second
	}

	// Plain provider env vars and .secrets/ files as fallbacks.
	if cfg.Provider.AnthropicAPIKey == "" {
		cfg.Provider.AnthropicAPIKey = secretDefault(secrets.AnthropicKeyFile, os.Getenv("ANTHROPIC_API_KEY"))
	}
	if cfg.Provider.OpenAIAPIKey == "" {
		cfg.Provider.OpenAIAPIKey = secretDefault(secrets.OpenAIKeyFile, os.Getenv("OPENAI_API_KEY"))
	}

	return cfg
}

// newAgent builds the session agent: provider client, empty store, and
// prompt limits. Startup fails when no API key is configured anywhere.
func newAgent(cmd *cobra.Command) (*agent.Agent, types.AgentConfig, error) {
	cfg := buildConfig(cmd)

	client, err := provider.Select(cfg.Provider)
	if err != nil {
		return nil, cfg, err
	}

	extractor := &pdftext.FileExtractor{MaxPages: cfg.Store.MaxPages}
	st := store.New(extractor, cfg.Store.Parallelism)

	return agent.New(st, client, prompt.LimitsFromConfig(cfg.Prompt)), cfg, nil
}

// loadPapers loads a folder into the agent's store and reports failures
// on stderr. An empty folder argument falls back to the configured dir.
func loadPapers(cmd *cobra.Command, a *agent.Agent, cfg types.AgentConfig) error {
	folder, _ := cmd.Flags().GetString("folder")
	if folder == "" {
		folder = cfg.Store.PapersDir
	}
	if folder == "" {
		return fmt.Errorf("no papers folder: pass --folder or set papers_dir in the config")
	}

	res, err := a.Store.LoadFolder(cmd.Context(), folder)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Loaded %d papers from %s\n", res.Loaded, folder)
	for _, f := range res.Failures {
		fmt.Fprintf(os.Stderr, "warning: skipped %s: %s\n", f.Path, f.Reason)
	}
	return nil
}

// warnDropped reports papers left out of a prompt to fit the budget.
func warnDropped(dropped []string) {
	if len(dropped) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "warning: prompt budget exceeded, %d paper(s) not included: %v\n", len(dropped), dropped)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
