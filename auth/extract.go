package auth

import (
	"net/http"
	"strings"
)

// Token sources, in precedence order.
const (
	SourceCookie = "cookie"
	SourceHeader = "header"
	SourceQuery  = "query"
)

// extractToken returns the first non-empty token from the cookie, the
// Authorization: Bearer header or the query parameter, with its source.
func (a *Auth) extractToken(r *http.Request) (string, string) {
	if c, err := r.Cookie(a.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value, SourceCookie
	}
	if t := bearerToken(r.Header.Get("Authorization")); t != "" {
		return t, SourceHeader
	}
	if t := r.URL.Query().Get(a.cfg.QueryParam); t != "" {
		return t, SourceQuery
	}
	return "", ""
}

// bearerToken parses "Bearer <token>". Other schemes yield "".
func bearerToken(header string) string {
	scheme, t, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(t)
}
