// mockremote is a development stand-in for the cart, catalog and
// accounts services. It serves all three APIs on one port with a small
// in-memory fixture set:
//
//	go run ./cmd/tools/mockremote -addr :9000
//
// Point FREESPORT_REMOTE_*_BASE_URL at it and the storefront runs with
// no external dependencies. State is per-process and resets on restart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type item struct {
	ID          int64  `json:"id"`
	VariantID   int64  `json:"variant_id"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price_cents"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	ImageURL    string `json:"image"`
	Color       string `json:"color"`
	Size        string `json:"size"`
}

type variant struct {
	ID      int64  `json:"id"`
	SKU     string `json:"sku"`
	Color   string `json:"color"`
	Size    string `json:"size"`
	InStock bool   `json:"in_stock"`
}

type product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	BrandID  int64  `json:"brand_id"`
	ImageURL string `json:"image"`
	IsNew    bool   `json:"is_new"`
	OnSale   bool   `json:"on_sale"`
	InStock  bool   `json:"in_stock"`

	RetailPrice  int64 `json:"retail_price_cents"`
	OptPrice1    int64 `json:"opt1_price_cents"`
	OptPrice2    int64 `json:"opt2_price_cents"`
	OptPrice3    int64 `json:"opt3_price_cents"`
	TrainerPrice int64 `json:"trainer_price_cents"`
	FedPrice     int64 `json:"federation_price_cents"`
	RRP          int64 `json:"rrp_cents"`

	Description string    `json:"description"`
	Variants    []variant `json:"variants"`
	Category    int64     `json:"-"`
}

type category struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	Children []*category `json:"children"`
}

type server struct {
	mu     sync.Mutex
	carts  map[string][]item // keyed by cartKey
	nextID int64
	orders int64
}

var products = []product{
	{ID: 1, Name: "Boxing Gloves Pro", Slug: "boxing-gloves-pro", BrandID: 1, InStock: true, IsNew: true,
		RetailPrice: 450000, OptPrice1: 380000, OptPrice2: 360000, OptPrice3: 340000, TrainerPrice: 350000, RRP: 490000,
		Description: "Competition gloves.", Category: 11,
		Variants: []variant{{ID: 101, SKU: "BGP-10-RED", Color: "red", Size: "10oz", InStock: true}, {ID: 102, SKU: "BGP-12-RED", Color: "red", Size: "12oz", InStock: true}}},
	{ID: 2, Name: "Training Kimono", Slug: "training-kimono", BrandID: 2, InStock: true, OnSale: true,
		RetailPrice: 320000, OptPrice1: 280000, TrainerPrice: 260000, FedPrice: 240000, RRP: 350000,
		Description: "Everyday judo kimono.", Category: 12,
		Variants: []variant{{ID: 201, SKU: "TK-160", Size: "160", InStock: true}, {ID: 202, SKU: "TK-170", Size: "170", InStock: false}}},
}

var tree = []*category{
	{ID: 10, Name: "Martial Arts", Slug: "martial-arts", Children: []*category{
		{ID: 11, Name: "Boxing", Slug: "boxing", Children: []*category{}},
		{ID: 12, Name: "Judo", Slug: "judo", Children: []*category{}},
	}},
}

func main() {
	addr := flag.String("addr", ":9000", "Listen address")
	flag.Parse()

	s := &server{carts: map[string][]item{}, nextID: 1000}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/", s.cart)
	mux.HandleFunc("/api/products/", s.products)
	mux.HandleFunc("/api/categories/", s.categories)
	mux.HandleFunc("/api/brands/", s.brands)
	mux.HandleFunc("/api/auth/login/", s.login)
	mux.HandleFunc("/api/auth/logout/", s.logout)
	mux.HandleFunc("/api/orders/", s.ordersHandler)

	log.Printf("mockremote listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func token(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// cartKey identifies the cart owner: bearer token for accounts, the guest
// session header for anonymous visitors.
func cartKey(r *http.Request) string {
	if t := token(r); t != "" {
		return "tok:" + t
	}
	return "guest:" + r.Header.Get("X-Guest-Session")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *server) cart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cartKey(r)

	switch {
	case r.URL.Path == "/api/cart/" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"items": s.carts[key]})

	case r.URL.Path == "/api/cart/" && r.Method == http.MethodDelete:
		delete(s.carts, key)
		w.WriteHeader(http.StatusNoContent)

	case r.URL.Path == "/api/cart/items/" && r.Method == http.MethodPost:
		var in struct {
			VariantID int64 `json:"variant_id"`
			Quantity  int   `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			detail(w, http.StatusBadRequest, "bad payload")
			return
		}
		p, v := findVariant(in.VariantID)
		if p == nil {
			detail(w, http.StatusNotFound, "variant not found")
			return
		}
		if !v.InStock {
			detail(w, http.StatusConflict, "Out of stock")
			return
		}
		// Merge a repeated variant into its existing line.
		for i, it := range s.carts[key] {
			if it.VariantID == in.VariantID {
				s.carts[key][i].Quantity += in.Quantity
				writeJSON(w, http.StatusOK, s.carts[key][i])
				return
			}
		}
		s.nextID++
		it := item{
			ID: s.nextID, VariantID: in.VariantID, Quantity: in.Quantity,
			UnitPrice: p.RetailPrice, ProductName: p.Name, SKU: v.SKU,
			ImageURL: p.ImageURL, Color: v.Color, Size: v.Size,
		}
		s.carts[key] = append(s.carts[key], it)
		writeJSON(w, http.StatusCreated, it)

	case strings.HasPrefix(r.URL.Path, "/api/cart/items/"):
		raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/cart/items/"), "/")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			detail(w, http.StatusNotFound, "line not found")
			return
		}
		idx := -1
		for i, it := range s.carts[key] {
			if it.ID == id {
				idx = i
			}
		}
		if idx < 0 {
			detail(w, http.StatusNotFound, "line not found")
			return
		}
		switch r.Method {
		case http.MethodPatch:
			var in struct {
				Quantity int `json:"quantity"`
			}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Quantity < 1 {
				detail(w, http.StatusBadRequest, "bad quantity")
				return
			}
			s.carts[key][idx].Quantity = in.Quantity
			writeJSON(w, http.StatusOK, s.carts[key][idx])
		case http.MethodDelete:
			s.carts[key] = append(s.carts[key][:idx], s.carts[key][idx+1:]...)
			w.WriteHeader(http.StatusNoContent)
		default:
			detail(w, http.StatusMethodNotAllowed, "method not allowed")
		}

	default:
		detail(w, http.StatusNotFound, "not found")
	}
}

func findVariant(id int64) (*product, *variant) {
	for i := range products {
		for j := range products[i].Variants {
			if products[i].Variants[j].ID == id {
				return &products[i], &products[i].Variants[j]
			}
		}
	}
	return nil, nil
}

func (s *server) products(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	if slug != "" {
		for _, p := range products {
			if p.Slug == slug {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		detail(w, http.StatusNotFound, "product not found")
		return
	}

	q := r.URL.Query()
	var out []product
	for _, p := range products {
		if c := q.Get("category"); c != "" && c != strconv.FormatInt(p.Category, 10) && !inSubtree(p.Category, c) {
			continue
		}
		if search := q.Get("search"); search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		if q.Get("in_stock") == "true" && !p.InStock {
			continue
		}
		if q.Get("is_new") == "true" && !p.IsNew {
			continue
		}
		if q.Get("on_sale") == "true" && !p.OnSale {
			continue
		}
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(out), "results": out})
}

func inSubtree(categoryID int64, filter string) bool {
	want, err := strconv.ParseInt(filter, 10, 64)
	if err != nil {
		return false
	}
	var walk func(n *category) bool
	walk = func(n *category) bool {
		if n.ID == categoryID {
			return true
		}
		for _, ch := range n.Children {
			if walk(ch) {
				return true
			}
		}
		return false
	}
	for _, root := range tree {
		if root.ID == want {
			return walk(root)
		}
		for _, ch := range root.Children {
			if ch.ID == want && walk(ch) {
				return true
			}
		}
	}
	return false
}

func (s *server) categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, tree)
}

func (s *server) brands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]any{
		{"id": 1, "name": "Green Hill"},
		{"id": 2, "name": "Adidas"},
	})
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusBadRequest, "bad payload")
		return
	}
	if in.Password != "password123" {
		detail(w, http.StatusUnauthorized, "wrong credentials")
		return
	}
	role := "retail"
	if strings.HasPrefix(in.Email, "opt") {
		role = "wholesale_level1"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": fmt.Sprintf("tok-%d", time.Now().UnixNano()),
		"account": map[string]any{
			"id": 42, "email": in.Email, "first_name": "Test", "last_name": "Customer", "role": role,
		},
	})
}

func (s *server) logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) ordersHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		var in struct {
			Lines []struct {
				VariantID int64 `json:"variant_id"`
				Quantity  int   `json:"quantity"`
			} `json:"lines"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || len(in.Lines) == 0 {
			detail(w, http.StatusBadRequest, "empty order")
			return
		}
		s.orders++
		var total int64
		for _, ln := range in.Lines {
			if p, _ := findVariant(ln.VariantID); p != nil {
				total += p.RetailPrice * int64(ln.Quantity)
			}
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"order_id":    s.orders,
			"number":      fmt.Sprintf("FS-%05d", s.orders),
			"total_cents": total,
			"created_at":  time.Now().Format(time.RFC3339),
		})
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"count": 0, "results": []any{}})
	default:
		detail(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
