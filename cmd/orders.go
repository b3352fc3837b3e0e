// =============================================================================
// ordergen - Orders Command
// =============================================================================
//
// This file defines the 'orders' command: the EDI generation path.
//
// COMMAND USAGE:
//   ordergen orders <file> [flags]
//
// FLAGS:
//   --dry-run : Run the full pipeline but write nothing and archive nothing
//
// PIPELINE:
//   1. Load configuration
//   2. Read the sheet (CSV or XLSX) into headers + rows
//   3. Validate headers against the canonical order template (all-or-nothing)
//   4. Resolve columns and build source rows
//   5. Group rows into orders, seed and assign order numbers
//   6. Encode the fixed-width batch and write it out
//   7. Archive the processed input sheet
//
// The run takes one wall-clock reading at entry; every timestamped value in
// the batch (markers, order date, order-number seed, file name) derives from
// that single reading.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printops/ordergen/internal/edi"
	"github.com/printops/ordergen/internal/ingest"
	"github.com/printops/ordergen/internal/order"
	"github.com/printops/ordergen/internal/schema"
	"github.com/printops/ordergen/pkg/utils"
	"github.com/spf13/cobra"
)

// dryRun runs the pipeline without writing output or archiving input.
var dryRun bool

// ordersCmd represents the 'orders' command.
var ordersCmd = &cobra.Command{
	Use:   "orders <file>",
	Short: "Generate a fixed-width EDI order file from an order sheet",
	Long: `The orders command reads a print-order sheet (CSV or XLSX), folds rows
sharing an order reference and consignee into multi-line-item orders, assigns
batch-unique order numbers, and writes the fixed-width EDI order file.

The sheet's headers must match the canonical 16-column order template exactly.
Rows sharing (Order Ref, Delivery Company name, Delivery Name) become one
order with multiple line items; rows without an Order Ref always become
single-item orders.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrders(args[0])
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)

	ordersCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)
}

// runOrders orchestrates the EDI generation pipeline for one sheet.
func runOrders(inputPath string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	// Single wall-clock reading for the whole run.
	now := time.Now()
	runID := uuid.New().String()
	log.Infow("starting order generation", "run_id", runID, "input", inputPath)

	table, err := ingest.Read(inputPath)
	if err != nil {
		return err
	}
	log.Debugw("read input sheet", "rows", len(table.Rows))

	tmpl := schema.OrderTemplate()
	if err := schema.Validate(table.Headers, tmpl); err != nil {
		return err
	}

	mapping := schema.ResolveColumns(table.Headers, tmpl)
	rows := ingest.BuildRows(table, mapping)

	orders := order.Group(rows)
	order.AssignNumbers(orders, order.Seed(now))
	log.Infow("grouped rows into orders", "rows", len(rows), "orders", len(orders))

	settings := edi.Settings{
		SenderCode:      cfg.Generation.SenderCode,
		Currency:        cfg.Generation.Currency,
		PaymentTerms:    cfg.Generation.PaymentTerms,
		DefaultQuantity: cfg.Generation.DefaultQuantity,
		BatchID:         cfg.Generation.BatchID,
		FilePrefix:      cfg.Generation.FilePrefix,
	}

	batch := edi.Encode(orders, settings, now)
	for _, w := range batch.Warnings {
		log.Warnw("encoding warning", "warning", w)
	}

	fileName := edi.FileName(settings, now)

	if dryRun {
		log.Infow("dry run complete, nothing written",
			"file", fileName, "records", batch.RecordCount)
		return nil
	}

	fm := utils.NewFileManager(cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	outputPath, err := fm.WriteOutput(fileName, []byte(batch.Content))
	if err != nil {
		return err
	}
	log.Infow("wrote EDI batch",
		"output", outputPath, "orders", len(orders), "records", batch.RecordCount)

	archivedPath, err := fm.ArchiveInput(inputPath)
	if err != nil {
		// The batch was written; a failed archive is not fatal.
		log.Warnw("failed to archive input", "error", err)
		return nil
	}
	log.Debugw("archived input sheet", "path", archivedPath)

	fmt.Printf("Wrote %s (%d order(s), %d record(s))\n", outputPath, len(orders), batch.RecordCount)
	return nil
}
