package controller

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name          string
		err           error
		wantKind      ErrorKind
		wantTransport bool
		wantClipboard bool
		wantUnwrap    bool
	}{
		{"Validation", NewValidationError("R1"), KindValidation, false, false, false},
		{"Transport", NewTransportError("No se pudo cargar el ejemplo.", cause), KindTransport, true, false, true},
		{"Clipboard", NewClipboardError(cause), KindClipboard, false, true, true},
		{"Wrapped transport", fmt.Errorf("loading: %w", NewTransportError("x", cause)), KindTransport, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			if !ok || kind != tt.wantKind {
				t.Errorf("KindOf() = %v, %v, want %v", kind, ok, tt.wantKind)
			}
			if IsTransportError(tt.err) != tt.wantTransport {
				t.Errorf("IsTransportError() = %v", !tt.wantTransport)
			}
			if IsClipboardError(tt.err) != tt.wantClipboard {
				t.Errorf("IsClipboardError() = %v", !tt.wantClipboard)
			}
			if errors.Is(tt.err, cause) != tt.wantUnwrap {
				t.Errorf("errors.Is(cause) = %v, want %v", !tt.wantUnwrap, tt.wantUnwrap)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	err := NewTransportError("No se pudo cargar el ejemplo.", errors.New("timeout"))
	if !strings.Contains(err.Error(), "Transport Error") || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Error() = %q", err.Error())
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf(plain) should be false")
	}
}
