package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/sessionauth/auth/authctx"
	apperrors "github.com/kbukum/sessionauth/errors"
	"github.com/kbukum/sessionauth/observability"
)

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

// MessageResponse is returned by logout.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserResponse is returned by me.
type UserResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
}

// RegisterRoutes mounts the session endpoints on r.
func (a *Auth) RegisterRoutes(r gin.IRoutes) {
	r.POST("/register/password", a.handleRegister)
	r.POST("/login/password", a.handleLogin)
	r.POST("/logout", a.handleLogout)
	r.GET("/me", a.Authenticate(), RequireAuth(), a.handleMe)
}

func (a *Auth) handleRegister(c *gin.Context) {
	ctx, op := observability.StartOperation(c.Request.Context(), observability.SpanRegister, a.metrics)

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		invalid := apperrors.Validation("Invalid input")
		op.End(invalid)
		a.fail(c, invalid)
		return
	}
	in := RegisterInput{Extra: map[string]any{}}
	for k, v := range body {
		switch k {
		case "email":
			in.Email, _ = v.(string)
		case "password":
			in.Password, _ = v.(string)
		default:
			in.Extra[k] = v
		}
	}

	session, err := a.Register(ctx, in)
	if err == nil {
		op.SetAttribute(observability.AttrUserID, session.User.ID)
	}
	op.End(err)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.setSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, SessionResponse{Success: true, Token: session.Token, User: ToPublic(session.User)})
}

func (a *Auth) handleLogin(c *gin.Context) {
	ctx, op := observability.StartOperation(c.Request.Context(), observability.SpanLogin, a.metrics)

	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid := apperrors.Validation("Invalid input")
		op.End(invalid)
		a.fail(c, invalid)
		return
	}

	session, err := a.Login(ctx, in)
	op.End(err)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, SessionResponse{Success: true, Token: session.Token, User: ToPublic(session.User)})
}

func (a *Auth) handleLogout(c *gin.Context) {
	_, op := observability.StartOperation(c.Request.Context(), observability.SpanLogout, a.metrics)
	a.clearSessionCookie(c)
	op.End(nil)
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Logged out successfully"})
}

func (a *Auth) handleMe(c *gin.Context) {
	_, op := observability.StartOperation(c.Request.Context(), observability.SpanMe, a.metrics)

	id, ok := authctx.FromGin(c)
	if !ok {
		err := apperrors.Unauthorized("Authentication required")
		op.End(err)
		a.fail(c, err)
		return
	}
	user := PublicUser{ID: id.Subject}
	if id.User != nil {
		user = ToPublic(id.User)
	}
	op.End(nil)
	c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

// fail hands err, classified, to the error middleware and stops the chain.
func (a *Auth) fail(c *gin.Context, err error) {
	_ = c.Error(apperrors.Wrap(err))
	c.Abort()
}
