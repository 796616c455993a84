package middleware_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/logger"
	"github.com/kbukum/sessionauth/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	return r
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

// ---------------------------------------------------------------------------
// ErrorHandler
// ---------------------------------------------------------------------------

func TestErrorHandler_RendersAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   apperrors.ErrorCode
	}{
		{"validation", apperrors.Validation("Invalid input"), http.StatusBadRequest, apperrors.ErrCodeValidation},
		{"unauthorized", apperrors.Unauthorized("Authentication required"), http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"wrapped", fmt.Errorf("ctx: %w", apperrors.InvalidCredentials()), http.StatusUnauthorized, apperrors.ErrCodeInvalidCredentials},
		{"plain error", fmt.Errorf("db down"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine(middleware.ErrorHandler(logger.Nop()))
			r.GET("/", func(c *gin.Context) {
				_ = c.Error(tc.err)
				c.Abort()
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			body := decodeError(t, rr)
			if body.Success {
				t.Error("expected success=false")
			}
			if body.Error.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, body.Error.Code)
			}
			if strings.Contains(rr.Body.String(), "db down") {
				t.Error("internal causes must not reach the client")
			}
		})
	}
}

func TestErrorHandler_NoErrors(t *testing.T) {
	r := newEngine(middleware.ErrorHandler(logger.Nop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}

func TestErrorHandler_LogsLevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(middleware.ErrorHandler(logger.NewWithWriter(&buf, "debug")))
	r.GET("/client", func(c *gin.Context) { _ = c.Error(apperrors.Validation("")) })
	r.GET("/server", func(c *gin.Context) { _ = c.Error(fmt.Errorf("boom")) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/client", http.NoBody))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/server", http.NoBody))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"level":"warn"`) {
		t.Errorf("expected warn for 4xx, got %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"error"`) || !strings.Contains(lines[1], "boom") {
		t.Errorf("expected error with cause for 5xx, got %s", lines[1])
	}
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_Panic(t *testing.T) {
	r := newEngine(middleware.Recovery(logger.Nop()), middleware.ErrorHandler(logger.Nop()))
	r.GET("/", func(c *gin.Context) { panic("test panic") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error.Code != apperrors.ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", body.Error.Code)
	}
}

func TestRecovery_NoPanic(t *testing.T) {
	r := newEngine(middleware.Recovery(logger.Nop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// RequestID
// ---------------------------------------------------------------------------

func TestRequestID_GeneratesID(t *testing.T) {
	var seen string
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")

	r := newEngine(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString(logger.FieldRequestID)
		log.WithContext(c.Request.Context()).Info("handled")
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	got := rr.Header().Get(middleware.HeaderRequestID)
	if got == "" || got != seen {
		t.Fatalf("expected generated id on response and context, got %q / %q", got, seen)
	}
	if !strings.Contains(buf.String(), got) {
		t.Error("expected request id in context-aware log line")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	r := newEngine(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "existing-id")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get(middleware.HeaderRequestID); got != "existing-id" {
		t.Fatalf("expected existing-id, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// RequestLogger
// ---------------------------------------------------------------------------

func TestRequestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(middleware.RequestLogger(logger.NewWithWriter(&buf, "debug")))
	r.GET("/things", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things?token=secret", http.NoBody))

	out := buf.String()
	if !strings.Contains(out, `"path":"/things"`) || !strings.Contains(out, `"status":404`) {
		t.Errorf("unexpected log output %s", out)
	}
	if strings.Contains(out, "secret") {
		t.Error("query strings must not be logged")
	}
}

func TestRequestLogger_SkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(middleware.RequestLogger(logger.NewWithWriter(&buf, "debug")))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if buf.Len() != 0 {
		t.Errorf("expected no log output for health checks, got %s", buf.String())
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func TestCORS(t *testing.T) {
	cfg := middleware.CORSConfig{
		AllowedOrigins:   []string{"https://app.example.com"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed bool
	}{
		{"allowed origin", http.MethodGet, "https://app.example.com", http.StatusOK, true},
		{"preflight", http.MethodOptions, "https://app.example.com", http.StatusNoContent, true},
		{"disallowed origin", http.MethodGet, "https://evil.example.com", http.StatusOK, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine(middleware.CORS(cfg))
			r.Handle(tc.method, "/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tc.method, "/", http.NoBody)
			req.Header.Set("Origin", tc.origin)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
			allowed := rr.Header().Get("Access-Control-Allow-Origin") == tc.origin
			if allowed != tc.wantAllowed {
				t.Errorf("expected allowed=%v, headers %v", tc.wantAllowed, rr.Header())
			}
			if tc.wantAllowed && rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("expected credentials header")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// BodySizeLimit
// ---------------------------------------------------------------------------

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(middleware.BodySizeLimit(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	small := httptest.NewRecorder()
	r.ServeHTTP(small, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
	if small.Code != http.StatusOK {
		t.Errorf("expected 200 for small body, got %d", small.Code)
	}

	large := httptest.NewRecorder()
	r.ServeHTTP(large, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("definitely too large")))
	if large.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413 for large body, got %d", large.Code)
	}
}
