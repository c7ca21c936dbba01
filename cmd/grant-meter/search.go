// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grant-meter/internal/embed"
	"github.com/pdiddy/grant-meter/internal/index"
	"github.com/pdiddy/grant-meter/internal/retrieve"
	"github.com/pdiddy/grant-meter/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [prompt]",
	Short: "Rank funding opportunities against a research idea",
	Long: `Search embeds a prompt and ranks the entire index by cosine similarity,
printing the top picks with their close-date-filtered, title-deduplicated
details. With --output the picks are appended to a CSV file instead, one
batch per query, stamped with the prompt that produced them; --json prints
them as a JSON array.

A YAML query file runs several named prompts in one pass:

  queries:
    - name: robotics
      prompt: Autonomous manipulation for agricultural robotics
      top: 5
      since_years: 1`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("prompt", "p", "", "research idea to rank against (or give it as an argument)")
	searchCmd.Flags().String("index", "", "index file (.db or .csv; default from config)")
	searchCmd.Flags().String("query-file", "", "YAML file with named queries")
	searchCmd.Flags().StringP("title", "t", "adhoc", "query name stamped into exports")
	searchCmd.Flags().IntP("top", "k", 0, "number of picks to return (default from config)")
	searchCmd.Flags().Int("since", 0, "only opportunities closing within the past N years (<= 0 disables)")
	searchCmd.Flags().StringP("output", "o", "", "append picks to this CSV file instead of printing details")
	searchCmd.Flags().Bool("json", false, "print picks as a JSON array")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	queryFile, _ := cmd.Flags().GetString("query-file")
	prompt, _ := cmd.Flags().GetString("prompt")
	if prompt == "" {
		prompt = strings.Join(args, " ")
	}
	if queryFile == "" && prompt == "" {
		return fmt.Errorf("a prompt (--prompt or argument) or --query-file is required")
	}
	if queryFile != "" && prompt != "" {
		return fmt.Errorf("a prompt and --query-file are mutually exclusive")
	}

	cfg := pipelineConfig(cmd)

	queries, err := collectQueries(cmd, prompt, cfg.Search)
	if err != nil {
		return err
	}

	embedder, err := embed.NewOpenAI(cfg.Embedding)
	if err != nil {
		return err
	}

	indexPath, _ := cmd.Flags().GetString("index")
	if indexPath == "" {
		indexPath = cfg.Index.File()
	}
	ix, err := openIndexCache(cfg.Index).GetOrReload(indexPath)
	if err != nil {
		return err
	}
	engine := retrieve.New(ix)
	if cfg.Search.WidenFactor > 1 {
		engine.Widen = cfg.Search.WidenFactor
	}

	output, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")
	console := retrieve.NewConsole(os.Stdout, embedder.Model())
	if !asJSON {
		console.ShowBanner()
		console.ShowStats(ix)
	}

	for _, q := range queries {
		if err := runOneQuery(cmd.Context(), engine, embedder, console, q, output, asJSON); err != nil {
			return fmt.Errorf("query %q: %w", q.Name, err)
		}
	}
	return nil
}

// indexCache keeps the loaded index across queries in one invocation
// and re-reads it once the TTL lapses.
var indexCache *index.Cache

func openIndexCache(cfg types.IndexConfig) *index.Cache {
	if indexCache == nil {
		ttl := cfg.TTL
		if ttl <= 0 {
			ttl = index.DefaultTTL
		}
		indexCache = index.NewCache(ttl)
	}
	return indexCache
}

// collectQueries normalizes the one-shot flags and the query file into
// a single batch.
func collectQueries(cmd *cobra.Command, prompt string, cfg types.SearchConfig) ([]retrieve.Query, error) {
	queryFile, _ := cmd.Flags().GetString("query-file")
	top, _ := cmd.Flags().GetInt("top")
	since, _ := cmd.Flags().GetInt("since")
	if top <= 0 {
		top = cfg.MaxResults
	}
	if !cmd.Flags().Changed("since") {
		since = cfg.SinceYears
	}

	if queryFile == "" {
		title, _ := cmd.Flags().GetString("title")
		return []retrieve.Query{{Name: title, Prompt: prompt, TopK: top, SinceYears: since}}, nil
	}

	qf, err := retrieve.ReadQueryFile(queryFile)
	if err != nil {
		return nil, err
	}
	for i := range qf.Queries {
		if qf.Queries[i].TopK <= 0 {
			qf.Queries[i].TopK = top
		}
		if qf.Queries[i].SinceYears == 0 {
			qf.Queries[i].SinceYears = since
		}
	}
	return qf.Queries, nil
}

func runOneQuery(ctx context.Context, engine *retrieve.Engine, embedder embed.Embedder,
	console *retrieve.Console, q retrieve.Query, output string, asJSON bool) error {

	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout())
	defer cancel()
	vec, err := embedder.Embed(embedCtx, q.Prompt)
	if err != nil {
		return fmt.Errorf("embedding prompt: %w", err)
	}

	ranked, err := engine.Rank(vec)
	if err != nil {
		return err
	}
	results, shortfall, err := engine.TopK(ranked, q.TopK, q.SinceYears)
	if err != nil {
		return err
	}

	if asJSON {
		return retrieve.ExportJSON(os.Stdout, results, q.Prompt, q.Name)
	}

	console.ShowQuery(q.Name, q.Prompt, q.TopK, q.SinceYears, output)
	if output == "" {
		console.ShowResults(results, false)
	} else {
		console.ShowResults(results, true)
		if err := retrieve.ExportCSV(output, results, q.Prompt, q.Name); err != nil {
			return err
		}
	}
	console.ShowShortfall(shortfall)
	return nil
}
