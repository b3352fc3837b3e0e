// =============================================================================
// ordergen - Validate Command
// =============================================================================
//
// This file defines the 'validate' command: run only the schema gate against
// an input sheet and print the per-position mismatch report, without
// generating anything. Useful for checking a fresh export before a real run.
//
// COMMAND USAGE:
//   ordergen validate <file> --type orders|specs
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/printops/ordergen/internal/ingest"
	"github.com/printops/ordergen/internal/schema"
	"github.com/spf13/cobra"
)

// validateType selects which canonical template to check against.
var validateType string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a sheet's headers against the canonical template",
	Long: `The validate command reads only the header row of a sheet and compares it
against the canonical template, reporting every mismatched column position.
Nothing is generated and nothing is archived.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&validateType,
		"type",
		"orders",
		"Template to validate against: orders or specs",
	)
}

// runValidate checks one sheet's headers and prints the result.
func runValidate(inputPath string) error {
	var tmpl schema.Template
	switch validateType {
	case "orders":
		tmpl = schema.OrderTemplate()
	case "specs":
		tmpl = schema.MetadataTemplate()
	default:
		return fmt.Errorf("unknown --type %q (want orders or specs)", validateType)
	}

	table, err := ingest.Read(inputPath)
	if err != nil {
		return err
	}

	if err := schema.Validate(table.Headers, tmpl); err != nil {
		return err
	}

	fmt.Printf("%s: headers match the %s template (%d column(s))\n",
		inputPath, tmpl.Name, len(tmpl.Headers))
	return nil
}
