// =============================================================================
// ordergen - Main Entry Point
// =============================================================================
//
// ordergen converts journal print-order spreadsheets into the fixed-width
// positional order file consumed by the print supplier's EDI intake, and
// derives per-title XML specification documents from metadata spreadsheets.
//
// USAGE:
//   ordergen orders <file>    - Generate an EDI order file from an order sheet
//   ordergen specs <file>     - Generate specification documents from metadata
//   ordergen validate <file>  - Check a sheet's headers without generating
//   ordergen version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/printops/ordergen/cmd"
)

// main simply calls Execute from the cmd package, which initializes and runs
// the Cobra CLI.
func main() {
	cmd.Execute()
}
