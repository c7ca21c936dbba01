// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grant-meter/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <extract.xml> [more.xml ...]",
	Short: "Convert Grants.gov XML extracts to feed CSV files",
	Long: `Convert parses Grants.gov XMLExtract files, drops opportunities whose
close date has already passed, and writes a CSV next to each input with
the extension swapped. The CSVs feed the index build.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		for _, path := range args {
			if _, err := convert.ConvertExtract(path, now, os.Stdout); err != nil {
				return fmt.Errorf("converting %s: %w", path, err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
