// Package logging sets up the diagnostic logger and reads its output back
// for the diagnostics overlay.
//
// The terminal belongs to the UI, so entries never go to stdout or stderr.
// New writes JSON lines (logrus.JSONFormatter) to the configured file, or
// discards them when no file is set. Analysis causes that the UI collapses
// into one generic message are only visible here.
//
// Tail reads the last N lines with a single pass and an N-sized ring
// buffer, so large log files are never loaded whole. FormatLine turns an
// entry such as
//
//	{"level":"warning","msg":"analysis request failed","request_id":"6f1c...","status":500,"time":"..."}
//
// into
//
//	2026-01-02 15:04:05 WARNING [6f1c2a9b] – analysis request failed
//	    - status: 500
package logging
