package state

import (
	"errors"
	"sync"
	"time"

	"github.com/five82/foodlens/internal/foodlens"
	"github.com/five82/foodlens/internal/imagefile"
	"github.com/five82/foodlens/internal/preview"
)

// Phase is the single active UI state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseImageSelected
	PhaseLoading
	PhaseError
	PhaseResultReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseImageSelected:
		return "image selected"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseResultReady:
		return "result ready"
	default:
		return "unknown"
	}
}

// ErrBusy is returned by BeginAnalysis while a request is in flight.
var ErrBusy = errors.New("analysis already in progress")

// Ticket identifies one analysis request. Only the ticket matching the
// store's current sequence may settle it.
type Ticket struct {
	Seq   uint64
	Image imagefile.Image
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Phase     Phase
	Image     imagefile.Image
	Preview   *preview.Ref
	Result    foodlens.Analysis
	Err       error  // cause, for diagnostics
	Message   string // user-facing text for PhaseError
	Seq       uint64
	UpdatedAt time.Time
}

// HasImage reports whether an image is selected.
func (s Snapshot) HasImage() bool {
	return !s.Image.IsZero()
}

// CanAnalyze reports whether the analyze control is enabled.
func (s Snapshot) CanAnalyze() bool {
	return s.HasImage() && s.Phase != PhaseLoading
}

// Store coordinates selection and analysis transitions. The zero value is
// ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Select replaces the current image from any phase. The previous preview is
// released, any result or error is cleared, and the sequence advances so a
// response for the old image is ignored. A zero image is a no-op and
// returns false.
func (s *Store) Select(img imagefile.Image, ref *preview.Ref) bool {
	if img.IsZero() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if old := s.snapshot.Preview; old != nil && old != ref {
		old.Release()
	}
	s.snapshot = Snapshot{
		Phase:     PhaseImageSelected,
		Image:     img,
		Preview:   ref,
		Seq:       s.snapshot.Seq + 1,
		UpdatedAt: time.Now(),
	}
	return true
}

// BeginAnalysis moves to PhaseLoading and returns the ticket the caller
// must settle with Complete or Fail. Without an image it records a
// validation error and returns it; while loading it returns ErrBusy and
// leaves the state alone.
func (s *Store) BeginAnalysis() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Image.IsZero() {
		err := foodlens.NewValidationError(nil)
		s.snapshot.Phase = PhaseError
		s.snapshot.Err = err
		s.snapshot.Message = foodlens.UserMessage(err)
		s.snapshot.Result = foodlens.Analysis{}
		s.snapshot.UpdatedAt = time.Now()
		return Ticket{}, err
	}
	if s.snapshot.Phase == PhaseLoading {
		return Ticket{}, ErrBusy
	}

	s.snapshot.Seq++
	s.snapshot.Phase = PhaseLoading
	s.snapshot.Err = nil
	s.snapshot.Message = ""
	s.snapshot.Result = foodlens.Analysis{}
	s.snapshot.UpdatedAt = time.Now()
	return Ticket{Seq: s.snapshot.Seq, Image: s.snapshot.Image}, nil
}

// Complete settles t with a result. It returns false when t is stale.
func (s *Store) Complete(t Ticket, result foodlens.Analysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(t) {
		return false
	}
	s.snapshot.Phase = PhaseResultReady
	s.snapshot.Result = result
	s.snapshot.UpdatedAt = time.Now()
	return true
}

// Fail settles t with an error. It returns false when t is stale.
func (s *Store) Fail(t Ticket, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(t) {
		return false
	}
	if err == nil {
		err = errors.New("analysis failed")
	}
	s.snapshot.Phase = PhaseError
	s.snapshot.Err = err
	s.snapshot.Message = foodlens.UserMessage(err)
	s.snapshot.UpdatedAt = time.Now()
	return true
}

// Settle calls Fail when err is non-nil and Complete otherwise.
func (s *Store) Settle(t Ticket, result foodlens.Analysis, err error) bool {
	if err != nil {
		return s.Fail(t, err)
	}
	return s.Complete(t, result)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Close releases the preview and returns the store to PhaseIdle.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Preview.Release()
	s.snapshot = Snapshot{Seq: s.snapshot.Seq + 1, UpdatedAt: time.Now()}
}

func (s *Store) current(t Ticket) bool {
	return t.Seq != 0 && t.Seq == s.snapshot.Seq && s.snapshot.Phase == PhaseLoading
}
