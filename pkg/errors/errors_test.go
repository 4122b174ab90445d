package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed"},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestFromStatus(t *testing.T) {
	cases := map[int]Code{
		http.StatusBadRequest:          CodeValidation,
		http.StatusUnauthorized:        CodeUnauthorized,
		http.StatusForbidden:           CodeForbidden,
		http.StatusNotFound:            CodeNotFound,
		http.StatusConflict:            CodeConflict,
		http.StatusTooManyRequests:     CodeRateLimit,
		http.StatusInternalServerError: CodeDependency,
		http.StatusBadGateway:          CodeDependency,
		http.StatusTeapot:              CodeInternal,
	}
	for status, want := range cases {
		if got := FromStatus(status); got != want {
			t.Fatalf("status %d expected %s got %s", status, want, got)
		}
	}
}

func TestNewAPIErrorFallsBackToPublicMessage(t *testing.T) {
	err := NewAPIError(http.StatusNotFound, "")
	if err.Message() != "resource not found" {
		t.Fatalf("unexpected fallback message %q", err.Message())
	}
	if err.Status() != http.StatusNotFound {
		t.Fatalf("unexpected status %d", err.Status())
	}

	withBody := NewAPIError(http.StatusBadRequest, "quantity must be positive")
	if withBody.Message() != "quantity must be positive" {
		t.Fatalf("API message should win, got %q", withBody.Message())
	}
	if withBody.ServerMessage() != "quantity must be positive" {
		t.Fatalf("expected server message to be kept, got %q", withBody.ServerMessage())
	}
	if err.ServerMessage() != "" {
		t.Fatalf("fallback error should carry no server message, got %q", err.ServerMessage())
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestPredicates(t *testing.T) {
	if !IsNotFound(NewAPIError(http.StatusNotFound, "")) {
		t.Fatalf("expected not-found predicate to hold")
	}
	if !IsUnauthorized(NewAPIError(http.StatusUnauthorized, "")) {
		t.Fatalf("expected unauthorized predicate to hold")
	}
	if IsNotFound(stdErrors.New("plain")) {
		t.Fatalf("plain error should not match not-found")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}
