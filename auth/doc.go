// Package auth is a credential-and-session authentication layer for gin.
//
// It issues and verifies signed session tokens, hashes and checks
// passwords, and provides two middlewares plus the session endpoints:
//
//   - Authenticate: attaches an identity when the request carries a valid
//     token (cookie, then Authorization: Bearer, then ?token=); never
//     rejects an anonymous request
//   - RequireAuth: rejects requests without an attached identity
//   - RegisterRoutes: POST /register/password, POST /login/password,
//     POST /logout, GET /me
//
// User records are never stored by this package. The host supplies them
// through Store:
//
//	a, err := auth.New(auth.Config{
//	    JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
//	    Store: auth.Store{
//	        FindByID:    users.FindByID,
//	        FindByEmail: users.FindByEmail,
//	        Create:      users.Create,
//	    },
//	})
//	r.Use(a.Authenticate())
//	a.RegisterRoutes(r.Group("/auth"))
//	r.GET("/api/profile", a.RequireAuth(), profileHandler)
//
// Handlers and middleware report failures with c.Error and abort; the
// host's error middleware (server.ErrorHandler) renders them.
//
// Subpackages:
//
//   - auth/password: bcrypt and argon2id hashers
//   - auth/token: HS256 session token service
//   - auth/authctx: per-request identity context
package auth
