package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agenthands/kinship/internal/core/extraction"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace stored matches with an export and rebuild the graph",
	RunE:  runSeed,
}

var (
	seedFileFlag   string
	seedFormatFlag string
)

func init() {
	seedCmd.Flags().StringVar(&seedFileFlag, "file", "", "Path to the match export")
	seedCmd.Flags().StringVar(&seedFormatFlag, "format", "", "Export format: json or csv (default from the file extension)")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format := seedFormatFlag
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(seedFileFlag)), ".")
	}
	if format != "json" && format != "csv" {
		return fmt.Errorf("unsupported export format %q", format)
	}

	f, err := os.Open(seedFileFlag)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)
	if a.cfg.Store.Backend == "memory" {
		a.log.Warnw("Seeding the in-memory store; the result is discarded on exit")
	}

	extractor := extraction.NewExtractor()
	var rows []extraction.RawMatch
	if format == "csv" {
		rows, err = extractor.ReadCSV(f)
	} else {
		rows, err = extractor.ReadJSON(f)
	}
	if err != nil {
		return err
	}

	if err := a.kinship.BuildIndices(ctx); err != nil {
		a.log.Warnw("Failed to build indices", "error", err)
	}

	result, err := a.kinship.Seed(ctx, extractor.ToRecords(rows))
	if err != nil {
		return err
	}

	a.log.Infow("Seed complete", "file", seedFileFlag, "matches", result.Matches, "nodes", result.Nodes, "links", result.Links)
	return nil
}
