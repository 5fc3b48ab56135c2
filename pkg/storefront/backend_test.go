package storefront

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeBackend is an in-memory stand-in for the storefront API
type fakeBackend struct {
	t        *testing.T
	mu       sync.Mutex
	products map[string]Product
	carts    map[string][]fakeLine
	nextID   int
	calls    map[string]int

	checkoutURL string
	statuses    []PaymentStatus
	statusFail  bool
}

type fakeLine struct {
	productID string
	quantity  int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	fb := &fakeBackend{
		t:        t,
		products: make(map[string]Product),
		carts:    make(map[string][]fakeLine),
		calls:    make(map[string]int),
	}
	for _, p := range FallbackProducts() {
		fb.products[p.ID] = p
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) callCount(key string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[key]
}

// routeKey names a request by route shape, so item calls on a cart
// ("POST cart/items") are counted apart from creating one ("POST cart")
func routeKey(method string, parts []string) string {
	if parts[0] == "cart" && len(parts) >= 3 {
		return method + " cart/" + parts[2]
	}
	return method + " " + parts[0]
}

func (fb *fakeBackend) view(id string) Cart {
	cart := Cart{ID: id, Items: []CartItem{}}
	total := 0.0
	for _, line := range fb.carts[id] {
		p := fb.products[line.productID]
		itemTotal := p.Price * float64(line.quantity)
		total += itemTotal
		cart.Items = append(cart.Items, CartItem{
			ProductID: line.productID,
			Quantity:  line.quantity,
			Product:   p,
			ItemTotal: itemTotal,
		})
		cart.ItemCount += line.quantity
	}
	cart.Total = math.Round(total*100) / 100
	return cart
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	fb.calls[routeKey(r.Method, parts)]++

	switch {
	case r.Method == http.MethodGet && path == "/products":
		list := make([]Product, 0, len(fb.products))
		for _, p := range FallbackProducts() {
			list = append(list, fb.products[p.ID])
		}
		writeJSON(w, http.StatusOK, list)

	case r.Method == http.MethodGet && parts[0] == "products" && len(parts) == 2:
		p, ok := fb.products[parts[1]]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Product niet gevonden"})
			return
		}
		writeJSON(w, http.StatusOK, p)

	case r.Method == http.MethodPost && path == "/cart":
		fb.nextID++
		id := fmt.Sprintf("c%d", fb.nextID)
		fb.carts[id] = nil
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "items": []interface{}{}})

	case parts[0] == "cart" && len(parts) >= 2:
		id := parts[1]
		lines, ok := fb.carts[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Winkelwagen niet gevonden"})
			return
		}
		switch {
		case r.Method == http.MethodGet && len(parts) == 2:
		case r.Method == http.MethodPost && len(parts) == 3:
			var req addItemRequest
			json.NewDecoder(r.Body).Decode(&req)
			if _, ok := fb.products[req.ProductID]; !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Product niet gevonden"})
				return
			}
			found := false
			for i := range lines {
				if lines[i].productID == req.ProductID {
					lines[i].quantity += req.Quantity
					found = true
				}
			}
			if !found {
				lines = append(lines, fakeLine{productID: req.ProductID, quantity: req.Quantity})
			}
		case r.Method == http.MethodPut && len(parts) == 4:
			qty, _ := strconv.Atoi(r.URL.Query().Get("quantity"))
			lines = setLine(lines, parts[3], qty)
		case r.Method == http.MethodDelete && len(parts) == 4:
			lines = setLine(lines, parts[3], 0)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fb.carts[id] = lines
		writeJSON(w, http.StatusOK, fb.view(id))

	case r.Method == http.MethodPost && path == "/checkout":
		var req checkoutRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(fb.carts[req.CartID]) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Winkelwagen is leeg"})
			return
		}
		writeJSON(w, http.StatusOK, CheckoutSession{URL: fb.checkoutURL, SessionID: "cs_test_1"})

	case r.Method == http.MethodGet && parts[0] == "checkout" && len(parts) == 3:
		if fb.statusFail {
			writeJSON(w, http.StatusBadGateway, map[string]string{"detail": "provider unavailable"})
			return
		}
		if len(fb.statuses) == 0 {
			writeJSON(w, http.StatusOK, PaymentStatus{Status: "open", PaymentStatus: "unpaid"})
			return
		}
		next := fb.statuses[0]
		if len(fb.statuses) > 1 {
			fb.statuses = fb.statuses[1:]
		}
		writeJSON(w, http.StatusOK, next)

	case r.Method == http.MethodPost && path == "/subscribe":
		writeJSON(w, http.StatusOK, map[string]string{"message": "Bedankt voor je inschrijving!"})

	case r.Method == http.MethodPost && path == "/contact":
		writeJSON(w, http.StatusOK, map[string]string{"id": "m1"})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setLine(lines []fakeLine, productID string, qty int) []fakeLine {
	out := lines[:0:0]
	for _, l := range lines {
		if l.productID == productID {
			if qty > 0 {
				l.quantity = qty
				out = append(out, l)
			}
			continue
		}
		out = append(out, l)
	}
	return out
}
