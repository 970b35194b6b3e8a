package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeDeliveryFailed, "partial", http.StatusBadGateway)
	if !err.Retryable {
		t.Error("DELIVERY_FAILED should be retryable")
	}
}

func TestAppError_DeliveryFailed(t *testing.T) {
	cause := fmt.Errorf("broken pipe")
	err := DeliveryFailed(2, 5, cause)
	if err.Code != ErrCodeDeliveryFailed {
		t.Errorf("expected DELIVERY_FAILED, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", err.HTTPStatus)
	}
	if err.Details["failed"] != 2 || err.Details["attempted"] != 5 {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if !strings.Contains(err.Message, "2 of 5") {
		t.Errorf("expected counts in message, got %q", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through errors.Is")
	}
}

func TestAppError_AlreadyExists(t *testing.T) {
	err := AlreadyExists("sse client", "abc")
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.HTTPStatus)
	}
	if err.Details["id"] != "abc" {
		t.Errorf("expected id=abc, got %v", err.Details["id"])
	}

	noID := AlreadyExists("sse client", "")
	if _, ok := noID.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("client", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_Unauthorized_DefaultMessage(t *testing.T) {
	if got := Unauthorized("").Message; got != "Authentication required." {
		t.Errorf("expected default message, got %q", got)
	}
	if got := Unauthorized("bad token").Message; got != "bad token" {
		t.Errorf("expected custom message, got %q", got)
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NotFound("client", "1").WithCause(cause)
	if err.Unwrap() != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"ServiceUnavailable", ServiceUnavailable("sse"), ErrCodeServiceUnavailable, http.StatusServiceUnavailable, true},
		{"Timeout", Timeout("broadcast"), ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{"RateLimited", RateLimited("broadcast"), ErrCodeRateLimited, http.StatusTooManyRequests, true},
		{"InvalidInput", InvalidInput("interval", "must be positive"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"MissingField", MissingField("data"), ErrCodeMissingField, http.StatusBadRequest, false},
		{"InvalidToken", InvalidToken(), ErrCodeInvalidToken, http.StatusUnauthorized, false},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	resp := NotFound("client", "42").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected code NOT_FOUND in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["resource"] != "client" {
		t.Error("expected resource=client in response details")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))
	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := NotFound("client", "1")
	if Wrap(fmt.Errorf("outer: %w", orig)) != orig {
		t.Error("Wrap should return the AppError found in the chain")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal || got.Cause != plain {
		t.Errorf("expected internal error wrapping plain error, got %+v", got)
	}
}
