package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

func TestClassifyNetworkError(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}

	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{"Connection refused", refused, ErrTypeConnectionRefused, true},
		{"Wrapped in url.Error", &url.Error{Op: "Get", URL: "http://x", Err: refused}, ErrTypeConnectionRefused, true},
		{"DNS", &net.DNSError{Name: "mallas.local", Err: "no such host"}, ErrTypeDNS, false},
		{"Deadline", context.DeadlineExceeded, ErrTypeTimeout, true},
		{"Cancelled", context.Canceled, ErrTypeNetwork, false},
		{"Generic", errors.New("something"), ErrTypeNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.wantRetryable)
			}
		})
	}

	if ClassifyNetworkError(nil) != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestNewHTTPError(t *testing.T) {
	tests := []struct {
		status        int
		wantRetryable bool
	}{
		{400, false},
		{404, false},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		err := NewHTTPError(tt.status, "http://x/")
		if err.Retryable != tt.wantRetryable {
			t.Errorf("NewHTTPError(%d).Retryable = %v, want %v", tt.status, err.Retryable, tt.wantRetryable)
		}
		if !IsHTTPError(err) {
			t.Errorf("IsHTTPError(%d) = false", tt.status)
		}
	}
}

func TestErrorHelpersThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading example: %w", NewParseError("bad json", errors.New("eof")))

	if !IsParseError(err) {
		t.Error("IsParseError should see through wrapping")
	}
	if IsRetryable(err) {
		t.Error("parse errors are not retryable")
	}
	if GetShortErrorMessage(err) != "Failed to parse backend response" {
		t.Errorf("GetShortErrorMessage() = %q", GetShortErrorMessage(err))
	}
}

func TestGetTroubleshootingHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Refused", &Error{Type: ErrTypeConnectionRefused}, "mallas scan"},
		{"Timeout", &Error{Type: ErrTypeTimeout}, "timeout"},
		{"Not found", NewHTTPError(404, ""), "example_path"},
		{"Server error", NewHTTPError(500, ""), "HTTP 500"},
		{"Plain error", errors.New("x"), "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetTroubleshootingHint(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("hint = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
