// =============================================================================
// ordergen - Specs Command
// =============================================================================
//
// This file defines the 'specs' command: the metadata path. It reads a
// 3-column metadata sheet (ISSN, Title, Page Extent), derives each title's
// production specification, and writes one zip archive of XML specification
// documents plus a plain-text batch summary.
//
// COMMAND USAGE:
//   ordergen specs <file> [flags]
//
// FLAGS:
//   --dry-run : Run the full pipeline but write nothing and archive nothing
//
// Unlike the orders path, a row with a malformed (non-13-digit) identifier
// blocks the whole batch: a wrong identifier would name a wrong output
// document. Rows with an empty identifier are skipped and tallied instead.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printops/ordergen/internal/ingest"
	"github.com/printops/ordergen/internal/schema"
	"github.com/printops/ordergen/internal/specdoc"
	"github.com/printops/ordergen/pkg/utils"
	"github.com/spf13/cobra"
)

// specsDryRun runs the pipeline without writing output or archiving input.
var specsDryRun bool

// specsCmd represents the 'specs' command.
var specsCmd = &cobra.Command{
	Use:   "specs <file>",
	Short: "Generate XML specification documents from a metadata sheet",
	Long: `The specs command reads a metadata sheet (CSV or XLSX) with exactly three
columns - ISSN, Title, Page Extent - and derives each title's production
specification: paper grammage, spine thickness, trim size, binding, and
lamination.

One XML document per title is written into a single zip archive, named by the
title's 13-digit identifier; a plain-text summary of the derived values is
written alongside it.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSpecs(args[0])
	},
}

func init() {
	rootCmd.AddCommand(specsCmd)

	specsCmd.Flags().BoolVar(
		&specsDryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)
}

// runSpecs orchestrates the specification generation pipeline for one sheet.
func runSpecs(inputPath string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	now := time.Now()
	runID := uuid.New().String()
	log.Infow("starting specification generation", "run_id", runID, "input", inputPath)

	table, err := ingest.Read(inputPath)
	if err != nil {
		return err
	}

	tmpl := schema.MetadataTemplate()
	if err := schema.Validate(table.Headers, tmpl); err != nil {
		return err
	}

	mapping := schema.ResolveColumns(table.Headers, tmpl)
	rows := ingest.BuildRows(table, mapping)

	result, err := specdoc.Build(rows)
	if err != nil {
		return err
	}
	log.Infow("derived specifications",
		"documents", len(result.Records), "skipped", result.Skipped)

	archive, err := specdoc.Bundle(result.Records)
	if err != nil {
		return err
	}
	summary := specdoc.Summary(result, runID, now)

	if specsDryRun {
		log.Infow("dry run complete, nothing written", "documents", len(result.Records))
		return nil
	}

	fm := utils.NewFileManager(cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	stamp := now.Format("20060102_1504")
	archivePath, err := fm.WriteOutput(fmt.Sprintf("specifications_%s.zip", stamp), archive)
	if err != nil {
		return err
	}
	summaryPath, err := fm.WriteOutput(fmt.Sprintf("specifications_%s_summary.txt", stamp), []byte(summary))
	if err != nil {
		return err
	}
	log.Infow("wrote specification bundle", "archive", archivePath, "summary", summaryPath)

	if _, err := fm.ArchiveInput(inputPath); err != nil {
		log.Warnw("failed to archive input", "error", err)
		return nil
	}

	fmt.Printf("Wrote %s (%d document(s), %d skipped)\n", archivePath, len(result.Records), result.Skipped)
	return nil
}
