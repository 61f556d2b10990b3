// Package ui provides the Bubble Tea terminal interface for FoodLens.
//
// # Layout
//
//	┌ FoodLens  [result ready]  lunch.png              https://…/analyze-food ┐
//	│ ──────────────────────────────────────────────────────────────────────  │
//	│                                                                         │
//	│                  body for the current phase                             │
//	│                                                                         │
//	└ o Choose image • a Analyze • d Diagnostics • h/? Toggle help • e Quit   ┘
//
// The body shows exactly one of: the idle hint, the selected image preview,
// the loading spinner, the error message, or the results panel. The choice
// is driven by state.Snapshot.Phase; the file picker temporarily replaces
// the body while it is open.
//
// # Event Flow
//
//  1. "o" opens the picker; selecting a file emits FileSelectedMsg
//  2. loadImageCmd reads and sniffs the file off the event loop and builds
//     the preview; rejected files only set a notice in the header
//  3. imageLoadedMsg calls Store.Select
//  4. "a" calls Store.BeginAnalysis and, on success, runs analyzeCmd
//  5. analysisDoneMsg calls Store.Settle; stale tickets are dropped
//
// The analyze binding is disabled whenever Snapshot.CanAnalyze is false, so
// key presses while loading or without an image do nothing, and the footer
// hides the binding.
//
// # Overlays
//
// "h"/"?" shows the help overlay; any key closes it. "d" shows the tail of
// the diagnostic log file, refreshed every DiagnosticsRefresh while open.
// "T" cycles the theme for the session.
package ui
