package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/render"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/validation"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/auth"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/pkg/view"
)

// AuthHandler signs customers in and out.
type AuthHandler struct {
	auth          *auth.Service
	carts         *cart.Manager
	flashes       *flash.Codec
	sessionCookie string
	sessionMaxAge int
	secure        bool
}

func NewAuthHandler(svc *auth.Service, carts *cart.Manager, flashes *flash.Codec, sessionCookie string, sessionMaxAge int, secure bool) *AuthHandler {
	return &AuthHandler{
		auth:          svc,
		carts:         carts,
		flashes:       flashes,
		sessionCookie: sessionCookie,
		sessionMaxAge: sessionMaxAge,
		secure:        secure,
	}
}

type loginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
	Next     string `form:"next" json:"next"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginForm
	if err := c.ShouldBind(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Enter your email and password.", nil))
		return
	}
	if fields := validation.Struct(in); fields != nil {
		middleware.Fail(c, apperr.InvalidErr("Enter your email and password.", fields))
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), strings.ToLower(strings.TrimSpace(in.Email)), in.Password)
	if err != nil {
		if ae, ok := apperr.As(err); ok && ae.Kind == apperr.Unauthorized {
			middleware.Fail(c, apperr.UnauthorizedErr("Wrong email or password."))
			return
		}
		middleware.Fail(c, err)
		return
	}

	c.SetCookie(h.sessionCookie, sess.ID, h.sessionMaxAge, "/", "", h.secure, true)

	next := in.Next
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	if middleware.WantsJSON(c) {
		render.JSON(c, http.StatusOK, gin.H{
			"email": sess.Email,
			"role":  sess.Role,
		})
		return
	}
	render.RedirectWithFlash(c, h.flashes, next, view.Flash{
		Kind:    view.FlashSuccess,
		Message: "Welcome back, " + sess.FirstName + ".",
	})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess != nil {
		if err := h.auth.Logout(c.Request.Context(), sess); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.carts.Drop(middleware.AccountCartKey(sess.AccountID))
	}
	c.SetCookie(h.sessionCookie, "", -1, "/", "", h.secure, true)

	if middleware.WantsJSON(c) {
		render.JSON(c, http.StatusOK, gin.H{"ok": true})
		return
	}
	render.RedirectWithFlash(c, h.flashes, "/", view.Flash{Kind: view.FlashInfo, Message: "Signed out."})
}
