// Package authctx carries the authenticated identity of a request.
//
// The identity lives in the request's context.Context and, for gin
// handlers, is mirrored on the *gin.Context:
//
//	// in middleware
//	authctx.SetGin(c, authctx.Identity{Subject: claims.Subject, User: user})
//
//	// in handlers
//	id, ok := authctx.FromGin(c)
//	id, ok := authctx.Get(r.Context())
package authctx

import (
	"context"

	"github.com/gin-gonic/gin"
)

// User is the identity record supplied by the host application. The layer
// relies only on ID and Email; Attributes are carried opaquely.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Attributes   map[string]any `json:"-"`
}

// Identity is what a request knows about its caller: the token subject and
// optionally the full record.
type Identity struct {
	Subject string
	User    *User
}

// Authenticated reports whether the identity names a caller.
func (i Identity) Authenticated() bool {
	return i.Subject != "" || i.User != nil
}

// UserID returns the record's ID when present, otherwise the subject.
func (i Identity) UserID() string {
	if i.User != nil && i.User.ID != "" {
		return i.User.ID
	}
	return i.Subject
}

type contextKey struct{}

// ginKey is the gin.Context key holding the Identity.
const ginKey = "authctx.identity"

// Set returns a copy of ctx carrying id.
func Set(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Get returns the identity stored in ctx.
func Get(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || !id.Authenticated() {
		return Identity{}, false
	}
	return id, true
}

// SetGin attaches id to both the gin context and its request context.
func SetGin(c *gin.Context, id Identity) {
	c.Set(ginKey, id)
	if c.Request != nil {
		c.Request = c.Request.WithContext(Set(c.Request.Context(), id))
	}
}

// FromGin returns the identity attached to c, checking the gin keys first
// and then the request context.
func FromGin(c *gin.Context) (Identity, bool) {
	if v, ok := c.Get(ginKey); ok {
		if id, ok := v.(Identity); ok && id.Authenticated() {
			return id, true
		}
	}
	if c.Request == nil {
		return Identity{}, false
	}
	return Get(c.Request.Context())
}
