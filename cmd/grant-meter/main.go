// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the grant-meter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/grant-meter/internal/secrets"
	"github.com/pdiddy/grant-meter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the grant-meter CLI.
var rootCmd = &cobra.Command{
	Use:   "grant-meter",
	Short: "Semantic matching of research ideas to funding opportunities",
	Long: `grant-meter ranks funding opportunities and papers against a research
idea with embedding similarity. Raw feed exports (NSF, Grants.gov, SAM.gov,
Pivot, GrantForward, arXiv and internal spreadsheets) are indexed offline
into a single vector index; queries embed a prompt and return the closest
opportunities, filtered by close date and deduplicated by title.

Each pipeline stage is a subcommand: convert prepares raw Grants.gov XML
extracts, index builds and inspects the vector index, and search runs
queries against it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./grant-meter.yaml or ~/.config/grant-meter/config.yaml)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress provider warnings")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("grant-meter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "grant-meter"))
		}
	}

	viper.SetEnvPrefix("GRANT_METER")
	viper.AutomaticEnv()

	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.timeout", "60s")
	viper.SetDefault("embedding.max_retries", 5)
	viper.SetDefault("index.index_dir", "results")
	viper.SetDefault("index.path", "embeddings.db")
	viper.SetDefault("index.ttl", "10m")
	viper.SetDefault("index.workers", 0)
	viper.SetDefault("search.max_results", 3)
	viper.SetDefault("search.since_years", 0)
	viper.SetDefault("search.widen_factor", 10)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// embeddingConfig assembles the embedding settings from config, flags
// and loaded secrets.
func embeddingConfig(cmd *cobra.Command) types.EmbeddingConfig {
	quiet, _ := cmd.Flags().GetBool("quiet")
	return types.EmbeddingConfig{
		Model:      viper.GetString("embedding.model"),
		BaseURL:    viper.GetString("embedding.base_url"),
		APIKey:     secrets.OpenAIKey(loadedSecrets),
		Dimensions: viper.GetInt("embedding.dimensions"),
		Timeout:    viper.GetDuration("embedding.timeout"),
		MaxRetries: viper.GetInt("embedding.max_retries"),
		Quiet:      quiet,
	}
}

// indexConfig assembles the index-stage settings from config.
func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		IndexDir: viper.GetString("index.index_dir"),
		Path:     viper.GetString("index.path"),
		TTL:      viper.GetDuration("index.ttl"),
		Workers:  viper.GetInt("index.workers"),
	}
}

// searchConfig assembles the retrieval-stage settings from config.
func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		MaxResults:  viper.GetInt("search.max_results"),
		SinceYears:  viper.GetInt("search.since_years"),
		WidenFactor: viper.GetInt("search.widen_factor"),
	}
}

// pipelineConfig groups every stage's settings for commands that span
// stages.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	return types.PipelineConfig{
		Embedding: embeddingConfig(cmd),
		Index:     indexConfig(),
		Search:    searchConfig(),
	}
}

// embedTimeout bounds one embedding request, with slack for retries.
func embedTimeout() time.Duration {
	t := viper.GetDuration("embedding.timeout")
	if t <= 0 {
		t = 60 * time.Second
	}
	return t * 10
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
