package ui

import "time"

// Fixed chrome around the body.
const (
	headerHeight = 2 // title line + rule
	footerHeight = 1
)

// Preview limits, in terminal cells.
const (
	previewMaxCols = 48
	previewMaxRows = 16

	// LayoutSideBySideWidth is the width from which the results panel puts
	// the thumbnail beside the fields instead of above them.
	LayoutSideBySideWidth = 90
)

// Diagnostics overlay.
const (
	DiagnosticsLines   = 400
	DiagnosticsRefresh = 2 * time.Second
)
