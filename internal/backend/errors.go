package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-2xx response
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed body (bad JSON, bad HTML)
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the base URL
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeRequest indicates the request could not be built
	ErrTypeRequest
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeRequest:
		return "Request Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is a failed exchange with the backend
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	URL        string
	Err        error
	Retryable  bool

	// Body holds the response body of an HTTP error.
	Body []byte
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more
// specific error type
func ClassifyNetworkError(err error) *Error {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Type: ErrTypeTimeout, Message: "Request timed out", Err: err, Retryable: true}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Type: ErrTypeNetwork, Message: "Request cancelled", Err: err, Retryable: false}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:       err,
			Retryable: false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &Error{Type: ErrTypeConnectionRefused, Message: "Backend refused connection", Err: err, Retryable: true}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &Error{Type: ErrTypeNetwork, Message: "Network error occurred", Err: err, Retryable: true}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *Error {
	classified := ClassifyNetworkError(err)
	if classified == nil {
		return &Error{Type: ErrTypeNetwork, Message: message, Retryable: true}
	}
	classified.Message = message
	return classified
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, url string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		URL:        url,
		Retryable:  statusCode >= 500,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Err: err}
}

// NewRequestError creates an error for a request that could not be built
func NewRequestError(message string, err error) *Error {
	return &Error{Type: ErrTypeRequest, Message: message, Err: err}
}

func asError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout,
// connection refused and DNS)
func IsNetworkError(err error) bool {
	be, ok := asError(err)
	return ok && (be.Type == ErrTypeNetwork ||
		be.Type == ErrTypeTimeout ||
		be.Type == ErrTypeConnectionRefused ||
		be.Type == ErrTypeDNS)
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	be, ok := asError(err)
	return ok && be.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	be, ok := asError(err)
	return ok && be.Type == ErrTypeParse
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	be, ok := asError(err)
	return ok && be.Retryable
}

// GetTroubleshootingHint returns user-facing advice for an error
func GetTroubleshootingHint(err error) string {
	be, ok := asError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch be.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The backend did not respond in time.",
			"Troubleshooting:",
			"  • Check that the simulation server is running",
			"  • Try increasing the timeout (--timeout or backend.timeout)",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"Nothing is listening at the backend address.",
			"Troubleshooting:",
			"  • Start the simulation server (python app.py)",
			"  • Check the port in --backend (default 5000)",
			"  • Run 'mallas scan' to discover servers on the network",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the backend hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of the hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeHTTP:
		if be.StatusCode == 404 {
			return "The backend does not serve this endpoint. Check backend.example_path."
		}
		if be.StatusCode >= 500 {
			return fmt.Sprintf("The backend failed while handling the request (HTTP %d). Check the server log.", be.StatusCode)
		}
		return fmt.Sprintf("The backend returned HTTP error %d.", be.StatusCode)

	case ErrTypeParse:
		return "The backend response could not be understood. Is --backend pointing at the mesh simulator?"

	case ErrTypeRequest:
		return "The request could not be built. Check the backend URL."

	default:
		return strings.Join([]string{
			"Network communication failed.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • Verify the backend URL",
		}, "\n")
	}
}

// GetShortErrorMessage returns a concise error message
func GetShortErrorMessage(err error) string {
	be, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch be.Type {
	case ErrTypeTimeout:
		return "Backend not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Backend refused connection - is the server running?"
	case ErrTypeDNS:
		return "Cannot resolve backend hostname"
	case ErrTypeHTTP:
		return fmt.Sprintf("Backend error (HTTP %d)", be.StatusCode)
	case ErrTypeParse:
		return "Failed to parse backend response"
	case ErrTypeNetwork:
		return "Network error - check connection"
	default:
		return be.Message
	}
}
