package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize is the catalog page size requested from the listing service.
const DefaultPageSize = 24

// Sort keys accepted by the listing service.
const (
	SortDefault   = ""
	SortPriceAsc  = "price"
	SortPriceDesc = "-price"
	SortNewest    = "-created_at"
	SortName      = "name"
)

// Filter is the catalog page filter state. It is transient and page-scoped:
// hydrated from the URL query on load, mutated by user interaction and
// written back to the query string on every change.
type Filter struct {
	CategoryID    int64
	BrandIDs      []int64
	PriceMinCents int64
	PriceMaxCents int64
	Query         string
	Sort          string
	Page          int
	OnlyNew       bool
	OnlySale      bool
	InStock       bool
}

// Query string keys. The query string is the filter's external, user-facing
// serialization: shareable, bookmarkable and stable across back/forward
// navigation.
const (
	keyCategory = "category" // slug, not id
	keyBrand    = "brand"
	keySearch   = "search"
	keyPriceMin = "price_min"
	keyPriceMax = "price_max"
	keySort     = "sort"
	keyPage     = "page"
	keyNew      = "new"
	keySale     = "sale"
	keyInStock  = "in_stock"
)

// ParseQuery hydrates a Filter from URL query values. The category is
// addressed by slug and resolved against the tree; unknown slugs and
// malformed numbers degrade to the zero value rather than erroring.
func ParseQuery(values url.Values, tree *Category) Filter {
	var f Filter

	if slug := strings.TrimSpace(values.Get(keyCategory)); slug != "" {
		if n := FindBySlug(tree, slug); n != nil {
			f.CategoryID = n.ID
		}
	}

	for _, raw := range values[keyBrand] {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
			f.BrandIDs = append(f.BrandIDs, id)
		}
	}
	sort.Slice(f.BrandIDs, func(i, j int) bool { return f.BrandIDs[i] < f.BrandIDs[j] })

	f.Query = strings.TrimSpace(values.Get(keySearch))
	f.PriceMinCents = parseCents(values.Get(keyPriceMin))
	f.PriceMaxCents = parseCents(values.Get(keyPriceMax))
	f.Sort = strings.TrimSpace(values.Get(keySort))

	f.Page = 1
	if n, err := strconv.Atoi(values.Get(keyPage)); err == nil && n > 0 {
		f.Page = n
	}

	f.OnlyNew = parseBool(values.Get(keyNew))
	f.OnlySale = parseBool(values.Get(keySale))
	f.InStock = parseBool(values.Get(keyInStock))

	return f
}

// EncodeQuery serializes the filter back into URL query values. Zero-valued
// fields are omitted so shared links stay short; page 1 is implicit.
func (f Filter) EncodeQuery(tree *Category) url.Values {
	values := url.Values{}

	if f.CategoryID != 0 {
		if path := PathByID(tree, f.CategoryID); len(path) > 0 {
			if slug := path[len(path)-1].Slug; slug != "" {
				values.Set(keyCategory, slug)
			}
		}
	}
	for _, id := range f.BrandIDs {
		values.Add(keyBrand, strconv.FormatInt(id, 10))
	}
	if f.Query != "" {
		values.Set(keySearch, f.Query)
	}
	if f.PriceMinCents > 0 {
		values.Set(keyPriceMin, strconv.FormatInt(f.PriceMinCents/100, 10))
	}
	if f.PriceMaxCents > 0 {
		values.Set(keyPriceMax, strconv.FormatInt(f.PriceMaxCents/100, 10))
	}
	if f.Sort != "" {
		values.Set(keySort, f.Sort)
	}
	if f.Page > 1 {
		values.Set(keyPage, strconv.Itoa(f.Page))
	}
	if f.OnlyNew {
		values.Set(keyNew, "1")
	}
	if f.OnlySale {
		values.Set(keySale, "1")
	}
	if f.InStock {
		values.Set(keyInStock, "1")
	}

	return values
}

// parseCents reads a whole-currency amount from the query ("1500" rubles,
// euros, ...) into cents. Negative and malformed values are dropped.
func parseCents(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n * 100
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
