package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/flash"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/auth"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/cart"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/apperr"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingCartAPI echoes mutations back as accepted lines.
type countingCartAPI struct{}

func (countingCartAPI) Fetch(context.Context) ([]cart.Line, error) { return nil, nil }

func (countingCartAPI) Add(_ context.Context, variantID int64, qty int) (cart.Line, error) {
	return cart.Line{ID: 1, VariantID: variantID, Quantity: qty, UnitPriceCents: 500}, nil
}

func (countingCartAPI) UpdateQuantity(_ context.Context, lineID int64, qty int) (cart.Line, error) {
	return cart.Line{ID: lineID, VariantID: 1, Quantity: qty, UnitPriceCents: 500}, nil
}

func (countingCartAPI) Remove(context.Context, int64) error { return nil }

func (countingCartAPI) Clear(context.Context) error { return nil }

func TestRequestIDGeneratedAndReused(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
}

func TestWantsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	assert.False(t, WantsJSON(c))

	req.Header.Set("Accept", "application/json")
	assert.True(t, WantsJSON(c))

	req.Header.Del("Accept")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	assert.True(t, WantsJSON(c))
}

func TestCartKeyStableAcrossSessionsOfOneAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	keyFor := func(sess *auth.Session) string {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if sess != nil {
			c.Set(SessionKey, sess)
		}
		c.Set(GuestIDKey, "g-1")
		return CartKey(c)
	}

	// Two sign-ins of the same account get the same key, so the
	// persisted promo follows the account, not the login.
	first := keyFor(&auth.Session{ID: "sess-a", AccountID: 42})
	second := keyFor(&auth.Session{ID: "sess-b", AccountID: 42})
	assert.Equal(t, "acct:42", first)
	assert.Equal(t, first, second)

	assert.NotEqual(t, first, keyFor(&auth.Session{ID: "sess-c", AccountID: 7}))
	assert.Equal(t, "guest:g-1", keyFor(nil))
}

func TestCartCountPeeksWithoutMintingStores(t *testing.T) {
	gin.SetMode(gin.TestMode)

	factoryCalls := 0
	carts := cart.NewManager(func(sessionKey, token string) cart.Service {
		factoryCalls++
		return &countingCartAPI{}
	}, nil, testLogger())

	st := carts.ForSession(context.Background(), "guest:shopper", "")
	require.True(t, st.AddItem(context.Background(), 5, 2).Success)
	require.Equal(t, 1, factoryCalls)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(GuestIDKey, c.GetHeader("X-Test-Guest")) })
	r.Use(CartCount(carts))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "%d", GetCartCount(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Test-Guest", "shopper")
	r.ServeHTTP(w, req)
	assert.Equal(t, "2", w.Body.String())

	// A burst of cookie-less visitors: the badge reads zero and no
	// stores are created for them.
	for i := 0; i < 10; i++ {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Test-Guest", uuid.NewString())
		r.ServeHTTP(w, req)
		assert.Equal(t, "0", w.Body.String())
	}
	assert.Equal(t, 1, factoryCalls)
}

func TestErrorHandlerMapsKindToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("secret"), "flash", false)

	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.NotFoundErr("Post not found."), http.StatusNotFound, "Post not found."},
		{apperr.UnauthorizedErr("Wrong email or password."), http.StatusUnauthorized, "Wrong email or password."},
		{apperr.UnavailableErr("Cart service is unavailable.", nil), http.StatusBadGateway, "Cart service is unavailable."},
	}
	for _, tc := range cases {
		r := gin.New()
		r.Use(ErrorHandler(testLogger(), codec))
		r.GET("/", func(c *gin.Context) { Fail(c, tc.err) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.status, w.Code)
		assert.Contains(t, w.Body.String(), tc.msg)
	}
}

func TestErrorHandlerRedirectsBrowsersWithFlash(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("secret"), "flash", false)

	r := gin.New()
	r.Use(ErrorHandler(testLogger(), codec))
	r.GET("/cart", func(c *gin.Context) {
		Fail(c, apperr.InvalidErr("Enter a promo code.", nil))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Referer", "/checkout")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/checkout", w.Header().Get("Location"))

	res := w.Result()
	require.NotEmpty(t, res.Cookies())
	f, err := codec.Decode(res.Cookies()[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "Enter a promo code.", f.Message)
}
