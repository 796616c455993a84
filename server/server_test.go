package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/logger"
	"github.com/kbukum/sessionauth/security"
	"github.com/kbukum/sessionauth/security/tlstest"
	"github.com/kbukum/sessionauth/server/endpoint"
	"github.com/kbukum/sessionauth/server/middleware"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("expected default body limit, got %d", cfg.MaxBodyBytes)
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		t.Error("expected default CORS headers")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: 8080}, false},
		{"bad port", Config{Port: 70000}, true},
		{"negative timeout", Config{Port: 8080, ReadTimeout: -1}, true},
		{"negative body", Config{Port: 8080, MaxBodyBytes: -5}, true},
		{
			"wildcard with credentials",
			Config{Port: 8080, CORS: middleware.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}},
			true,
		},
		{"cert without key", Config{Port: 8080, TLS: security.TLSConfig{CertFile: "cert.pem"}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestServer_ApplyDefaults(t *testing.T) {
	cfg := Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	srv := New(cfg, logger.Nop())
	srv.ApplyDefaults("authsvc", endpoint.Check{Name: "noop", Fn: func(ctx context.Context) error { return nil }})

	srv.GinEngine().GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.Unauthorized("Authentication required"))
		c.Abort()
	})

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/info", http.StatusOK},
		{"/fail", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if rr.Header().Get(middleware.HeaderRequestID) == "" {
				t.Error("expected request id header")
			}
		})
	}
}

func TestServer_StartStop(t *testing.T) {
	srv := New(Config{Host: "127.0.0.1", Port: 0}, logger.Nop())
	srv.ApplyDefaults("authsvc")

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get(fmt.Sprintf("http://%s/health", srv.Addr()))
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if err := srv.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestServer_StartTLS(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	srv := New(Config{
		Host: "127.0.0.1",
		TLS:  security.TLSConfig{CertFile: certs.CertFile, KeyFile: certs.KeyFile},
	}, logger.Nop())
	srv.ApplyDefaults("authsvc")

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() { _ = srv.Stop(context.Background()) }()

	client := &http.Client{Transport: &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: certs.CertPool, MinVersion: tls.VersionTLS12},
	}}
	resp, err := client.Get(fmt.Sprintf("https://%s/health", srv.Addr()))
	if err != nil {
		t.Fatalf("GET /health over TLS: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestServer_StartTLSBadCert(t *testing.T) {
	srv := New(Config{
		Host: "127.0.0.1",
		TLS:  security.TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"},
	}, logger.Nop())
	if err := srv.Start(context.Background()); err == nil {
		_ = srv.Stop(context.Background())
		t.Fatal("expected Start to fail with a missing certificate")
	}
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"app error", apperrors.InvalidCredentials(), http.StatusUnauthorized},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			RespondWithError(c, tc.err)
			if rr.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, rr.Code)
			}
		})
	}
}
