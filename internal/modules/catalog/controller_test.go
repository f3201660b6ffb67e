package catalog

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister records listing calls and can be told to fail.
type fakeLister struct {
	mu       sync.Mutex
	tree     *Category
	brands   []Brand
	page     ProductPage
	failWith error
	calls    []Filter
	delay    time.Duration
}

func (f *fakeLister) Products(ctx context.Context, flt Filter) (ProductPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, flt)
	fail := f.failWith
	page := f.page
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail != nil {
		return ProductPage{}, fail
	}
	page.Page = flt.Page
	return page, nil
}

func (f *fakeLister) Categories(ctx context.Context) (*Category, error) {
	if f.tree == nil {
		return nil, errors.New("no tree")
	}
	return f.tree, nil
}

func (f *fakeLister) Brands(ctx context.Context) ([]Brand, error) { return f.brands, nil }

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeLister) lastCall() Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestController(t *testing.T, lister *fakeLister, debounce time.Duration) *Controller {
	t.Helper()
	c := NewController(lister, debounce)
	c.Load(context.Background())
	t.Cleanup(c.Close)
	return c
}

func TestController_LoadAndHydrate(t *testing.T) {
	lister := &fakeLister{
		tree:   sampleTree(),
		brands: []Brand{{ID: 3, Name: "Everlast"}},
		page:   ProductPage{Items: []ProductSummary{{ID: 1, Name: "Gloves"}}, Total: 1},
	}
	c := newTestController(t, lister, 0)

	c.Hydrate(context.Background(), url.Values{"category": {"boxing"}, "page": {"2"}})

	f := c.Filter()
	assert.Equal(t, int64(2), f.CategoryID)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 1, c.Products().Total)
	assert.Empty(t, c.PageError())
}

func TestController_SelectCategoryRecomputesBreadcrumbAndExpansion(t *testing.T) {
	lister := &fakeLister{tree: sampleTree()}
	c := newTestController(t, lister, 0)

	c.SelectCategory(context.Background(), 4)

	crumb := c.Breadcrumb()
	require.Len(t, crumb, 3)
	assert.Equal(t, "Gloves", crumb[2].Label)

	expanded := c.ExpandedKeys()
	assert.True(t, expanded[1])
	assert.True(t, expanded[2])
	assert.True(t, expanded[4])
	assert.False(t, expanded[3])
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	lister := &fakeLister{tree: sampleTree()}
	c := newTestController(t, lister, 0)

	c.SetPage(context.Background(), 5)
	assert.Equal(t, 5, c.Filter().Page)

	c.SetBrands(context.Background(), []int64{3})
	assert.Equal(t, 1, c.Filter().Page)

	// Only the page changed: no reset.
	c.SetPage(context.Background(), 4)
	assert.Equal(t, 4, c.Filter().Page)
	assert.Equal(t, 4, lister.lastCall().Page)
}

func TestController_FetchFailureKeepsPriorData(t *testing.T) {
	lister := &fakeLister{
		tree: sampleTree(),
		page: ProductPage{Items: []ProductSummary{{ID: 9}}, Total: 1},
	}
	c := newTestController(t, lister, 0)
	require.Equal(t, 1, c.Products().Total)

	lister.mu.Lock()
	lister.failWith = errors.New("listing down")
	lister.mu.Unlock()

	c.SetSort(context.Background(), SortPriceAsc)

	assert.Equal(t, "Could not load products.", c.PageError())
	assert.Equal(t, 1, c.Products().Total, "prior data must remain displayed")

	// Recovery clears the error.
	lister.mu.Lock()
	lister.failWith = nil
	lister.mu.Unlock()
	c.SetSort(context.Background(), SortDefault)
	assert.Empty(t, c.PageError())
}

func TestController_SearchDebouncesBursts(t *testing.T) {
	lister := &fakeLister{tree: sampleTree()}
	c := newTestController(t, lister, 30*time.Millisecond)
	base := lister.callCount()

	for _, q := range []string{"g", "gl", "glo", "glov"} {
		c.Search(context.Background(), q)
	}

	// Nothing fires inside the debounce window.
	assert.Equal(t, base, lister.callCount())

	assert.Eventually(t, func() bool {
		return lister.callCount() == base+1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "glov", lister.lastCall().Query)
	assert.Equal(t, 1, lister.lastCall().Page)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	lister := &fakeLister{tree: sampleTree(), delay: 20 * time.Millisecond}
	c := newTestController(t, lister, 0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); c.SetPage(context.Background(), 2) }()
	time.Sleep(5 * time.Millisecond)
	go func() { defer wg.Done(); c.SetPage(context.Background(), 3) }()
	wg.Wait()

	// Whichever response belongs to the older generation must not win.
	assert.Equal(t, 3, c.Products().Page)
}

func TestController_QueryStringRoundTrip(t *testing.T) {
	lister := &fakeLister{tree: sampleTree()}
	c := newTestController(t, lister, 0)

	c.SelectCategory(context.Background(), 6)
	c.SetBrands(context.Background(), []int64{3})
	c.SetPage(context.Background(), 2)

	values, err := url.ParseQuery(c.QueryString())
	require.NoError(t, err)
	assert.Equal(t, "fitness-gloves", values.Get("category"))
	assert.Equal(t, "2", values.Get("page"))
}
