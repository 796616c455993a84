package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/sessionauth/errors"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type untagged struct {
	DisplayName string `validate:"required"`
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(credentials{Email: "a@b.com", Password: "password1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		in     credentials
		fields []string
	}{
		{"bad email", credentials{Email: "nope", Password: "password1"}, []string{"email"}},
		{"short password", credentials{Email: "a@b.com", Password: "short"}, []string{"password"}},
		{"long password", credentials{Email: "a@b.com", Password: strings.Repeat("x", 73)}, []string{"password"}},
		{"both missing", credentials{}, []string{"email", "password"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Kind() != errors.KindValidation {
				t.Errorf("expected validation kind, got %s", appErr.Kind())
			}
			if !strings.HasPrefix(appErr.Message, "Invalid input") {
				t.Errorf("unexpected message %q", appErr.Message)
			}
			fields, _ := appErr.Details["fields"].([]FieldError)
			if len(fields) != len(tc.fields) {
				t.Fatalf("expected %d field errors, got %d", len(tc.fields), len(fields))
			}
			for i, f := range tc.fields {
				if fields[i].Field != f {
					t.Errorf("expected field %q, got %q", f, fields[i].Field)
				}
			}
		})
	}
}

func TestValidate_SnakeCaseFallback(t *testing.T) {
	err := Validate(untagged{})
	appErr, _ := errors.AsAppError(err)
	fields := appErr.Details["fields"].([]FieldError)
	if fields[0].Field != "display_name" {
		t.Errorf("expected display_name, got %q", fields[0].Field)
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if !errors.IsKind(Validate("not a struct"), errors.KindValidation) {
		t.Error("expected validation error for non-struct input")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@B.Com "); got != "a@b.com" {
		t.Errorf("expected a@b.com, got %q", got)
	}
}

func TestCheck(t *testing.T) {
	if fe := Check("email", "a@b.com", "required,email"); fe != nil {
		t.Errorf("unexpected failure %+v", fe)
	}
	fe := Check("password", "short", "required,min=8")
	if fe == nil || fe.Field != "password" || fe.Message != "must be at least 8 characters" {
		t.Errorf("unexpected result %+v", fe)
	}
}

func TestFail(t *testing.T) {
	if Fail() != nil {
		t.Error("expected nil for no field errors")
	}
	err := Fail(FieldError{Field: "email", Message: "is required"})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Message != "Invalid input: email is required" {
		t.Errorf("unexpected error %v", err)
	}
}
