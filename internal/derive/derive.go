// =============================================================================
// ordergen - Specification Derivation Engine
// =============================================================================
//
// This module computes the physical production specification for one title
// from a single input: its page extent. Paper selection and spine thickness
// must match the supplier's printing specification exactly; trim size,
// binding style per extent band, and lamination are fixed for the current
// product line.
//
// =============================================================================

package derive

import "math"

// =============================================================================
// SPECIFICATION CONSTANTS
// =============================================================================

// Paper selection: extents up to lightPaperMaxExtent print on the heavier
// 130gsm stock, everything above on 90gsm. Both stocks share one bulk
// volume figure.
const (
	lightPaperMaxExtent = 32
	grammageThin        = 130
	grammageThick       = 90
	bulkVolume          = 10
)

// Spine formula constants, declared separately so either can be revised
// without touching the formula shape.
const (
	// bulkDivisor converts extent x grammage x volume into millimetres.
	bulkDivisor = 20000

	// bindingAllowance is the fixed binding-style addition in millimetres.
	bindingAllowance = 0.65
)

// Fixed product-line attributes, not derived.
const (
	TrimWidthMM  = 210
	TrimHeightMM = 297
	Lamination   = "Gloss"

	bindingStitched = "Saddle Stitched"
	bindingPerfect  = "Perfect Bound"
)

// =============================================================================
// DERIVATION
// =============================================================================

// Specification is the derived production specification for one title.
type Specification struct {
	PageExtent   int
	GrammageGSM  int
	SpineMM      int
	TrimWidthMM  int
	TrimHeightMM int
	Binding      string
	Lamination   string
}

// ForExtent derives the full specification for a page extent.
//
// Spine thickness is round(extent x grammage x volume / 20000 + 0.65)
// millimetres, with .5 rounding away from zero (round half up).
func ForExtent(extent int) Specification {
	grammage := grammageThick
	binding := bindingPerfect
	if extent <= lightPaperMaxExtent {
		grammage = grammageThin
		binding = bindingStitched
	}

	spine := roundHalfUp(float64(extent*grammage*bulkVolume)/bulkDivisor + bindingAllowance)

	return Specification{
		PageExtent:   extent,
		GrammageGSM:  grammage,
		SpineMM:      spine,
		TrimWidthMM:  TrimWidthMM,
		TrimHeightMM: TrimHeightMM,
		Binding:      binding,
		Lamination:   Lamination,
	}
}

// roundHalfUp rounds to the nearest integer with ties rounding away from
// zero, matching the supplier's printed tables.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
