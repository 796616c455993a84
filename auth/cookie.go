package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (a *Auth) setSessionCookie(c *gin.Context, value string) {
	maxAge := int(a.cfg.CookieMaxAge / 1000)
	ck := a.cookie(value, maxAge)
	if maxAge > 0 {
		ck.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	http.SetCookie(c.Writer, ck)
}

func (a *Auth) clearSessionCookie(c *gin.Context) {
	ck := a.cookie("", -1)
	ck.Expires = time.Unix(0, 0)
	http.SetCookie(c.Writer, ck)
}

func (a *Auth) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     a.cfg.CookieName,
		Value:    value,
		Path:     a.cfg.CookiePath,
		Domain:   a.cfg.CookieDomain,
		MaxAge:   maxAge,
		Secure:   a.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
