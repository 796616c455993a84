package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_StatusFromKind(t *testing.T) {
	err := New(ErrCodeAlreadyExists, "dup")
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Kind() != KindValidation {
		t.Errorf("expected kind %s, got %s", KindValidation, err.Kind())
	}
}

func TestAppError_UnknownCodeIsInternal(t *testing.T) {
	err := New(ErrorCode("SOMETHING_ELSE"), "odd")
	if err.Kind() != KindInternal {
		t.Errorf("expected internal kind, got %s", err.Kind())
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
}

func TestAppError_Unauthorized_DefaultMessage(t *testing.T) {
	err := Unauthorized("")
	if err.Code != ErrCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", err.Code)
	}
	if err.Message != "Unauthorized" {
		t.Errorf("expected default message, got %q", err.Message)
	}

	err2 := Unauthorized("User not found")
	if err2.Message != "User not found" {
		t.Errorf("expected custom message, got %q", err2.Message)
	}
}

func TestAppError_AlreadyExists_Message(t *testing.T) {
	err := AlreadyExists("User")
	if err.Message != "User already exists" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["resource"] != "User" {
		t.Errorf("expected resource=User, got %v", err.Details["resource"])
	}
}

func TestAppError_Internal_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("db connection lost")
	err := Internal(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if strings.Contains(err.Message, "db connection lost") {
		t.Error("client message must not leak the cause")
	}
	if !strings.Contains(err.Error(), "db connection lost") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		kind   Kind
		status int
	}{
		{"Validation", Validation("bad input"), ErrCodeValidation, KindValidation, http.StatusBadRequest},
		{"ValidationDefault", Validation(""), ErrCodeValidation, KindValidation, http.StatusBadRequest},
		{"AlreadyExists", AlreadyExists("User"), ErrCodeAlreadyExists, KindValidation, http.StatusBadRequest},
		{"Unauthorized", Unauthorized("x"), ErrCodeUnauthorized, KindUnauthorized, http.StatusUnauthorized},
		{"InvalidCredentials", InvalidCredentials(), ErrCodeInvalidCredentials, KindUnauthorized, http.StatusUnauthorized},
		{"TokenExpired", TokenExpired(), ErrCodeTokenExpired, KindUnauthorized, http.StatusUnauthorized},
		{"InvalidToken", InvalidToken(), ErrCodeInvalidToken, KindUnauthorized, http.StatusUnauthorized},
		{"Internal", Internal(nil), ErrCodeInternal, KindInternal, http.StatusInternalServerError},
		{"NotImplemented", NotImplemented("createUser"), ErrCodeNotImplemented, KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Kind() != tc.kind {
				t.Errorf("expected kind %s, got %s", tc.kind, tc.err.Kind())
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestAppError_InvalidCredentials_Stable(t *testing.T) {
	if InvalidCredentials().Message != InvalidCredentials().Message {
		t.Fatal("invalid credentials message must be stable")
	}
	if InvalidCredentials().Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", InvalidCredentials().Message)
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := AlreadyExists("User").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["resource"] != "User" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_ToResponse(t *testing.T) {
	resp := Validation("Invalid input").WithDetail("field", "email").ToResponse()
	if resp.Success {
		t.Error("error responses must report success=false")
	}
	if resp.Error.Code != ErrCodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Kind != KindValidation {
		t.Errorf("expected ValidationError kind, got %s", resp.Error.Kind)
	}
	if resp.Error.Details["field"] != "email" {
		t.Error("expected field=email in response details")
	}
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Unauthorized(""))
	if !IsKind(wrapped, KindUnauthorized) {
		t.Error("expected wrapped unauthorized to match")
	}
	if IsKind(wrapped, KindValidation) {
		t.Error("unauthorized must not match validation")
	}
	if IsKind(fmt.Errorf("plain"), KindInternal) {
		t.Error("plain errors are not AppErrors")
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
	t.Run("nil", func(t *testing.T) {
		if Wrap(nil) != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
	t.Run("passthrough", func(t *testing.T) {
		orig := InvalidCredentials()
		if Wrap(fmt.Errorf("outer: %w", orig)) != orig {
			t.Error("Wrap should return the wrapped AppError")
		}
	})
	t.Run("plain", func(t *testing.T) {
		plain := fmt.Errorf("something broke")
		got := Wrap(plain)
		if got.Code != ErrCodeInternal {
			t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
		}
		if !stderrors.Is(got, plain) {
			t.Error("expected cause to be the original error")
		}
	})
}
