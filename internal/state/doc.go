// Package state holds the selection and analysis state shared by the UI and
// the headless analyze command.
//
// # Phases
//
// Exactly one Phase is active at a time:
//
//	Idle ──Select──→ ImageSelected ──BeginAnalysis──→ Loading
//	                       ↑                            │
//	                       │                  Complete / Fail
//	                       │                            ↓
//	                    Select ←──────────── ResultReady / Error
//
// Select works from every phase and always lands in ImageSelected with the
// previous result and error cleared. BeginAnalysis from Error or
// ResultReady retries the same image.
//
// # Tickets
//
// BeginAnalysis hands out a Ticket carrying a sequence number. Select also
// advances the sequence, so when the user picks a new image while a request
// is in flight, the late Complete or Fail for the old ticket returns false
// and changes nothing.
//
//	t1, _ := store.BeginAnalysis()   // seq 2, Loading
//	store.Select(other, ref)         // seq 3, ImageSelected
//	store.Complete(t1, result)       // false: stale
//
// # Serialization
//
// At most one request is in flight. The UI disables its analyze control
// while loading, and BeginAnalysis also refuses with ErrBusy, so
// programmatic callers get the same guarantee.
//
// # Errors
//
// Snapshot.Err keeps the underlying cause for the diagnostic log;
// Snapshot.Message is what the user sees. Every failure except the
// no-image validation error maps to one generic message.
//
// # Concurrency
//
// Store guards its snapshot with a sync.RWMutex. Snapshot returns a copy;
// the image bytes and preview Ref inside it are shared and must be treated
// as read-only.
package state
