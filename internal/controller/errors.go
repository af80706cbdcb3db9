package controller

import (
	"errors"
	"fmt"
)

// ErrorKind represents how an error reaches the user
type ErrorKind int

const (
	// KindValidation is shown inline per field plus one banner on submit.
	KindValidation ErrorKind = iota
	// KindTransport is shown in the banner; the form stays usable.
	KindTransport
	// KindClipboard is logged only.
	KindClipboard
	// KindExport is returned to the caller of ExportCSV.
	KindExport
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "Validation Error"
	case KindTransport:
		return "Transport Error"
	case KindClipboard:
		return "Clipboard Error"
	case KindExport:
		return "Export Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a controller failure with the message that was (or would be)
// shown to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports failing fields.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewTransportError wraps a failed backend exchange.
func NewTransportError(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// NewClipboardError wraps a failed clipboard write.
func NewClipboardError(err error) *Error {
	return &Error{Kind: KindClipboard, Message: "clipboard write failed", Err: err}
}

// NewExportError wraps a failed download.
func NewExportError(err error) *Error {
	return &Error{Kind: KindExport, Message: "export failed", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindValidation
}

// IsTransportError checks if an error is a transport error
func IsTransportError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindTransport
}

// IsClipboardError checks if an error is a clipboard error
func IsClipboardError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindClipboard
}

var errNoExampleSource = errors.New("no example source configured")
