// Package guestcookie issues and verifies the signed guest identifier
// cookie. The identifier keys per-visitor state (cart, promo) for
// visitors without an account session.
package guestcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid guest cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure}
}

// NewID returns a fresh guest identifier.
func (c *Codec) NewID() string {
	return uuid.NewString()
}

// value format: id.base64(hmac(id))
func (c *Codec) Encode(id string) string {
	return id + "." + sign(c.Secret, id)
}

func (c *Codec) Decode(v string) (string, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return "", ErrInvalid
	}
	id, sig := parts[0], parts[1]
	if id == "" || !verify(c.Secret, id, sig) {
		return "", ErrInvalid
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalid
	}
	return id, nil
}

func (c *Codec) CookieMaxAge() int {
	return int((180 * 24 * time.Hour).Seconds())
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
