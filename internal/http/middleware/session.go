package middleware

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/guestcookie"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/auth"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/pricing"
)

const (
	SessionKey = "session"
	GuestIDKey = "guest_id"
)

// Session resolves the signed-in session (if any) and guarantees every
// visitor carries a signed guest identifier. The guest id keys the cart
// for anonymous visitors; a signed-in visitor's cart is keyed by the
// account id instead.
func Session(svc *auth.Service, sessionCookie string, secure bool, guests *guestcookie.Codec, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
			sess, findErr := svc.Find(c.Request.Context(), id)
			if findErr == nil {
				c.Set(SessionKey, sess)
				svc.Touch(c.Request.Context(), sess.ID)
			} else {
				// Stale or tampered cookie: drop it.
				c.SetCookie(sessionCookie, "", -1, "/", "", secure, true)
			}
		}

		guestID := ""
		if raw, err := c.Cookie(guests.CookieName); err == nil {
			if id, decErr := guests.Decode(raw); decErr == nil {
				guestID = id
			}
		}
		if guestID == "" {
			guestID = guests.NewID()
			c.SetCookie(guests.CookieName, guests.Encode(guestID), guests.CookieMaxAge(), "/", "", guests.Secure, true)
			log.LogAttrs(c.Request.Context(), slog.LevelDebug, "guest_id_issued",
				slog.String("request_id", GetRequestID(c)),
			)
		}
		c.Set(GuestIDKey, guestID)

		c.Next()
	}
}

// CurrentSession returns the signed-in session, or nil.
func CurrentSession(c *gin.Context) *auth.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*auth.Session)
	if !ok {
		return nil
	}
	return sess
}

// CurrentRole returns the visitor's pricing role, retail for guests.
func CurrentRole(c *gin.Context) pricing.Role {
	if sess := CurrentSession(c); sess != nil {
		return sess.Role
	}
	return pricing.RoleRetail
}

// CartKey returns the key the visitor's cart store lives under. Signed-in
// visitors are keyed by account, so a persisted promo survives across
// sessions when they sign in again.
func CartKey(c *gin.Context) string {
	if sess := CurrentSession(c); sess != nil {
		return AccountCartKey(sess.AccountID)
	}
	return "guest:" + c.GetString(GuestIDKey)
}

// AccountCartKey is the cart store key for a signed-in account.
func AccountCartKey(accountID int64) string {
	return "acct:" + strconv.FormatInt(accountID, 10)
}

// BearerToken returns the remote API token for the visitor, "" for guests.
func BearerToken(c *gin.Context) string {
	if sess := CurrentSession(c); sess != nil {
		return sess.Token
	}
	return ""
}
