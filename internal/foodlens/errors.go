package foodlens

import (
	"errors"
	"fmt"
)

// Kind classifies why an analysis did not produce a result.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
	KindServer     Kind = "server"
	KindDecode     Kind = "decode"
)

// Stage names the decode step that rejected a response.
type Stage string

const (
	StageEnvelope Stage = "envelope"
	StageRecord   Stage = "record"
)

// User-facing messages. Every failure except validation collapses to
// MessageGeneric; the cause only reaches the diagnostic log.
const (
	MessageNoImage = "Please select an image first!"
	MessageGeneric = "Failed to analyze image. Please try again."
)

// ErrNoImage is the cause carried by validation errors.
var ErrNoImage = errors.New("no image selected")

// Error is the typed failure returned by Analyze and by state transitions.
type Error struct {
	Kind   Kind
	Stage  Stage // set for KindDecode
	Status int   // set for KindServer
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindServer:
		return fmt.Sprintf("server: status %d", e.Status)
	case e.Kind == KindDecode && e.Err != nil:
		return fmt.Sprintf("decode %s: %v", e.Stage, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a precondition failure that never reached the network.
func NewValidationError(cause error) *Error {
	if cause == nil {
		cause = ErrNoImage
	}
	return &Error{Kind: KindValidation, Err: cause}
}

func newTransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Err: cause}
}

func newServerError(status int) *Error {
	return &Error{Kind: KindServer, Status: status}
}

func newDecodeError(stage Stage, cause error) *Error {
	return &Error{Kind: KindDecode, Stage: stage, Err: cause}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage maps err to the text shown in the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsKind(err, KindValidation) {
		return MessageNoImage
	}
	return MessageGeneric
}
