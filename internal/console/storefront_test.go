package console

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/orders"
	"github.com/aniket44788/Mahakal-Admin/internal/remote"
)

// storefront is an in-memory stand-in for the remote REST API.
type storefront struct {
	mu         sync.Mutex
	userOrders map[string][]domain.Order
	recent     []domain.Order
	usersJSON  string
	calls      map[string]int
	lastAuth   string
	lastUpdate map[string]string

	// when non-zero these replace the normal responses
	listStatus   int
	listBody     string
	updateStatus int
	updateBody   string
}

func newStorefront() *storefront {
	return &storefront{
		userOrders: map[string][]domain.Order{
			"user1": {sampleOrder("o1", domain.DeliveryStatusPending)},
		},
		recent: []domain.Order{
			sampleOrder("r1", domain.DeliveryStatusShipped),
			sampleOrder("r2", domain.DeliveryStatusPending),
		},
		usersJSON: `{"success":true,"users":[{"_id":"u1","name":"Asha","email":"asha@example.com","isVerified":true,
			"orders":["o1","o2"],"favoriteProducts":["p1","p2","p3"],"cart":[{"product":"p1","quantity":1}],"addresses":[]}]}`,
		calls: make(map[string]int),
	}
}

func sampleOrder(id string, status domain.DeliveryStatus) domain.Order {
	return domain.Order{
		ID:             id,
		Amount:         decimal.NewFromInt(130),
		PaymentStatus:  domain.PaymentStatusPaid,
		DeliveryStatus: status,
		Products: []domain.LineItem{
			{Name: "Laddu Prasad", Quantity: 2, Price: decimal.NewFromInt(50)},
			{Name: "Brass Diya", Quantity: 1, Price: decimal.NewFromInt(30)},
		},
	}
}

func (s *storefront) callCount(pattern string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[pattern]
}

func (s *storefront) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *storefront) track(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Pattern]++
		s.lastAuth = r.Header.Get("Authorization")
		s.mu.Unlock()
		h(w, r)
	}
}

func (s *storefront) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	switch b := body.(type) {
	case string:
		_, _ = io.WriteString(w, b)
	default:
		_ = json.NewEncoder(w).Encode(b)
	}
}

func (s *storefront) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/payment/admin/user/{userId}/orders", s.track(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.listStatus != 0 {
			s.writeJSON(w, s.listStatus, s.listBody)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": s.userOrders[r.PathValue("userId")]})
	}))

	mux.HandleFunc("GET /api/payment/getrecentorders", s.track(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writeJSON(w, http.StatusOK, map[string]any{"orders": s.recent})
	}))

	mux.HandleFunc("PUT /api/payment/order/update/{orderId}", s.track(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastUpdate = body
		if s.updateStatus != 0 {
			s.writeJSON(w, s.updateStatus, s.updateBody)
			return
		}
		s.writeJSON(w, http.StatusOK, `{"success":true}`)
	}))

	mux.HandleFunc("GET /api/payment/getAllUsers", s.track(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, s.usersJSON)
	}))

	mux.HandleFunc("POST /admin/login", s.track(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			s.writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
			return
		}
		s.writeJSON(w, http.StatusOK, `{"MahakalToken":"jwt-token","message":"Login successful"}`)
	}))

	mux.HandleFunc("GET /admin/profile", s.track(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, `{"admin":{"_id":"a1","email":"admin@example.com"}}`)
	}))

	mux.HandleFunc("GET /products/all", s.track(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, `{"products":[{"_id":"p1","name":"Chandan","category":"Chandan","price":200,"discountPrice":150,"unit":"gm"}],"count":1}`)
	}))

	mux.HandleFunc("POST /createproduct", s.track(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusCreated, `{"success":true}`)
	}))

	mux.HandleFunc("DELETE /delete/{id}", s.track(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, `{"success":true}`)
	}))

	return mux
}

type testConsole struct {
	mux   *http.ServeMux
	views *Views
	front *storefront
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()

	front := newStorefront()
	server := httptest.NewServer(front.handler())
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := remote.NewClient(server.URL, server.Client())
	views := NewViews(client, client, orders.NewMemoryGuard(), logger)

	mux := http.NewServeMux()
	NewHandler(client, views, currency.INR, logger).Register(mux)

	return &testConsole{mux: mux, views: views, front: front}
}

func (c *testConsole) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.mux.ServeHTTP(rec, req)
	return rec
}
