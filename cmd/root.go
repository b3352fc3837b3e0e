// =============================================================================
// ordergen - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All subcommands
// ('orders', 'specs', 'validate', 'version') attach to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ordergen)
//   ├── ordersCmd   (ordergen orders <file>)
//   ├── specsCmd    (ordergen specs <file>)
//   ├── validateCmd (ordergen validate <file>)
//   └── versionCmd  (ordergen version)
//
// The root command owns the global flags (--config, --verbose) and logger
// initialization; subcommands load the configuration themselves so `version`
// and `validate` work without a config file where possible.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/printops/ordergen/internal/config"
	"github.com/printops/ordergen/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cfgFile holds the path to the configuration file; overridden by --config.
var cfgFile string

// verbose forces debug logging when set.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ordergen",
	Short: "ordergen - Generate EDI order files and specification documents from spreadsheets",
	Long: `ordergen converts journal print-order spreadsheets into the fixed-width
positional EDI order file consumed by the print supplier, and derives per-title
XML specification documents (paper, spine, trim) from metadata spreadsheets.

Input sheets must match the canonical header templates exactly; a single
transposed or renamed column rejects the whole sheet before any record is
built.

Example Usage:
  ordergen orders orders_march.xlsx        # Generate an EDI order file
  ordergen specs titles.csv                # Generate specification documents
  ordergen validate orders_march.xlsx      # Check headers without generating`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print help.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setup loads the configuration and builds the run logger. Shared by the
// generation subcommands.
func setup() (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, verbose)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}
