package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/http/middleware"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/catalog"
)

// stubLister serves a fixed page and counts listing calls.
type stubLister struct {
	products int
}

func (s *stubLister) Products(context.Context, catalog.Filter) (catalog.ProductPage, error) {
	s.products++
	return catalog.ProductPage{Total: 1, Page: 1, Items: []catalog.ProductSummary{{ID: 1, Name: "Gloves"}}}, nil
}

func (s *stubLister) Categories(context.Context) (*catalog.Category, error) {
	return &catalog.Category{Label: "root"}, nil
}

func (s *stubLister) Brands(context.Context) ([]catalog.Brand, error) {
	return []catalog.Brand{{ID: 3, Name: "Atemi"}}, nil
}

func newCatalogRouter(h *CatalogHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.GuestIDKey, c.GetHeader("X-Test-Guest"))
	})
	r.GET("/catalog", h.List)
	return r
}

func listAs(t *testing.T, r *gin.Engine, guest string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("X-Test-Guest", guest)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogControllerReusedWithinSession(t *testing.T) {
	h := NewCatalogHandler(&stubLister{}, 0)
	r := newCatalogRouter(h)

	listAs(t, r, "g-1")
	listAs(t, r, "g-1")
	listAs(t, r, "g-2")

	h.mu.Lock()
	n := len(h.ctrls)
	h.mu.Unlock()
	assert.Equal(t, 2, n, "one controller per session key")
}

func TestCatalogIdleControllersEvicted(t *testing.T) {
	h := NewCatalogHandler(&stubLister{}, 0)
	clock := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return clock }
	r := newCatalogRouter(h)

	// A crawler without cookies mints a fresh id on every request.
	for i := 0; i < 5; i++ {
		listAs(t, r, "crawler-"+string(rune('a'+i)))
		clock = clock.Add(ctrlIdleTTL + time.Minute)
	}
	listAs(t, r, "g-live")

	h.mu.Lock()
	n := len(h.ctrls)
	_, live := h.ctrls["guest:g-live"]
	h.mu.Unlock()
	assert.Equal(t, 1, n, "aged-out controllers must be evicted")
	assert.True(t, live)
}
