// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grant-meter/internal/embed"
	"github.com/pdiddy/grant-meter/internal/index"
	"github.com/pdiddy/grant-meter/internal/retrieve"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and inspect the vector index",
	Long: `Index manages the persisted vector index. Use subcommands to rebuild it
from the raw feed files or to print per-feed entry counts.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Embed the feed files into a fresh index",
	Long: `Build scans the feeds directory for export shards, collects one
description per opportunity, drops duplicate descriptions keeping the
freshest copy, and embeds the survivors through a worker pool. The
output file extension selects the codec: .db writes the SQLite store,
anything else the CSV interchange form.`,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	feedsDir, _ := cmd.Flags().GetString("feeds-dir")
	pattern, _ := cmd.Flags().GetString("pattern")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = cfg.Index.File()
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.Index.Workers
	}

	embedder, err := embed.NewOpenAI(cfg.Embedding)
	if err != nil {
		return err
	}

	builder := &index.Builder{
		FeedsDir: feedsDir,
		Pattern:  pattern,
		Workers:  workers,
		Embedder: embedder,
	}
	ix, summary, err := builder.Build(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}

	if err := index.Save(out, ix); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d entries, %d dimensions, %d file(s) read)\n",
		out, summary.Embedded, ix.Dim, summary.Files)
	return nil
}

// --- stats subcommand ---

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-feed entry counts for an index",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("index")
		if path == "" {
			path = indexConfig().File()
		}
		ix, err := index.Load(path)
		if err != nil {
			return err
		}
		console := retrieve.NewConsole(os.Stdout, embeddingConfig(cmd).Model)
		console.ShowStats(ix)
		return nil
	},
}

// --- convert-format subcommand ---

var indexConvertCmd = &cobra.Command{
	Use:   "copy <src> <dst>",
	Short: "Copy an index between the SQLite and CSV codecs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := index.Load(args[0])
		if err != nil {
			return err
		}
		if err := index.Save(args[1], ix); err != nil {
			return err
		}
		fmt.Printf("copied %d entries to %s\n", len(ix.Entries), args[1])
		return nil
	},
}

func init() {
	indexBuildCmd.Flags().String("feeds-dir", "feeds", "directory holding raw feed files")
	indexBuildCmd.Flags().String("pattern", index.DefaultPattern, "glob for feed files within the feeds directory")
	indexBuildCmd.Flags().String("out", "", "output index file (.db or .csv; default from config)")
	indexBuildCmd.Flags().Int("workers", 0, "embedding workers (0 = half the CPU count)")

	indexStatsCmd.Flags().String("index", "", "index file to inspect (default from config)")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexStatsCmd)
	indexCmd.AddCommand(indexConvertCmd)

	rootCmd.AddCommand(indexCmd)
}
