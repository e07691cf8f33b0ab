// Package console is the admin HTTP API: it serves order, user and product
// views backed by the remote storefront API.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/text/currency"

	"github.com/aniket44788/Mahakal-Admin/internal/aggregate"
	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/orders"
	"github.com/aniket44788/Mahakal-Admin/internal/remote"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
	"github.com/aniket44788/Mahakal-Admin/internal/telemetry"
)

const (
	msgAuthRequired      = "Authentication required. Please log in again."
	msgOrdersUnavailable = "Error fetching orders. Please try again later."
	msgUpdateUnavailable = "Error updating order status. Please try again later."
	msgUsersUnavailable  = "Error fetching users. Please try again later."
	msgProductsUnavail   = "Error fetching products. Please try again later."
	msgProfileUnavail    = "Error fetching profile. Please try again later."
	msgLoginUnavailable  = "Error logging in. Please try again later."
)

type API interface {
	orders.OrderSource
	orders.StatusUpdater
	ListUsers(ctx context.Context, sess session.Session) ([]domain.User, error)
	Login(ctx context.Context, email, password string) (remote.LoginResult, error)
	Profile(ctx context.Context, sess session.Session) (domain.Admin, error)
	ListProducts(ctx context.Context, sess session.Session) (remote.ProductList, error)
	GetProduct(ctx context.Context, sess session.Session, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, sess session.Session, p domain.Product) error
	UpdateProduct(ctx context.Context, sess session.Session, id string, p domain.Product) error
	DeleteProduct(ctx context.Context, sess session.Session, id string) error
}

type Handler struct {
	api      API
	views    *Views
	currency currency.Unit
	logger   *slog.Logger
}

func NewHandler(api API, views *Views, unit currency.Unit, logger *slog.Logger) *Handler {
	return &Handler{
		api:      api,
		views:    views,
		currency: unit,
		logger:   logger,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.HandleFunc("POST /login", telemetry.WithHTTPRoute(h.HandleLogin))
	mux.HandleFunc("GET /profile", telemetry.WithHTTPRoute(h.HandleProfile))
	mux.HandleFunc("GET /users", telemetry.WithHTTPRoute(h.HandleUsers))
	mux.HandleFunc("GET /users/{userId}/orders", telemetry.WithHTTPRoute(h.HandleUserOrders))
	mux.HandleFunc("PUT /users/{userId}/orders/{orderId}/status", telemetry.WithHTTPRoute(h.HandleUserOrderStatus))
	mux.HandleFunc("GET /orders/recent", telemetry.WithHTTPRoute(h.HandleRecentOrders))
	mux.HandleFunc("PUT /orders/recent/{orderId}/status", telemetry.WithHTTPRoute(h.HandleRecentOrderStatus))
	mux.HandleFunc("GET /products", telemetry.WithHTTPRoute(h.HandleListProducts))
	mux.HandleFunc("POST /products", telemetry.WithHTTPRoute(h.HandleCreateProduct))
	mux.HandleFunc("GET /products/{id}", telemetry.WithHTTPRoute(h.HandleGetProduct))
	mux.HandleFunc("PATCH /products/{id}", telemetry.WithHTTPRoute(h.HandleUpdateProduct))
	mux.HandleFunc("DELETE /products/{id}", telemetry.WithHTTPRoute(h.HandleDeleteProduct))
	mux.HandleFunc("GET /product-options", telemetry.WithHTTPRoute(h.HandleProductOptions))
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeFailure(w, err, msgLoginUnavailable)
		return
	}

	h.logger.Info("admin logged in", "email", req.Email)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	admin, err := h.api.Profile(r.Context(), session.FromRequest(r))
	if err != nil {
		h.writeFailure(w, err, msgProfileUnavail)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"admin": admin})
}

type userView struct {
	domain.User
	Counts aggregate.UserCounts `json:"counts"`
}

func (h *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.ListUsers(r.Context(), session.FromRequest(r))
	if err != nil {
		h.writeFailure(w, err, msgUsersUnavailable)
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{User: u, Counts: aggregate.CountsForUser(u)})
	}

	h.logger.Info("users listed", "count", len(views))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"count": len(views),
		"users": views,
	})
}

type orderView struct {
	domain.Order
	aggregate.OrderTotals
}

type ordersResponse struct {
	Scope   string            `json:"scope"`
	Orders  []orderView       `json:"orders"`
	Summary aggregate.Summary `json:"summary"`
}

func (h *Handler) HandleUserOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, orders.UserScope(r.PathValue("userId")))
}

func (h *Handler) HandleRecentOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, orders.RecentScope)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request, scope orders.Scope) {
	sess := session.FromRequest(r)
	if !sess.Authenticated() {
		h.writeFailure(w, session.ErrNotAuthenticated, msgOrdersUnavailable)
		return
	}

	vw, err := h.views.Load(r.Context(), sess, scope)
	if err != nil {
		h.writeFailure(w, err, msgOrdersUnavailable)
		return
	}

	current := vw.store.Get()
	resp := ordersResponse{
		Scope:   scope.String(),
		Orders:  make([]orderView, 0, len(current)),
		Summary: aggregate.Summarize(current, h.currency),
	}
	for _, o := range current {
		resp.Orders = append(resp.Orders, newOrderView(o))
	}

	h.logger.Info("orders listed", "scope", scope.String(), "count", len(current))
	h.writeJSON(w, http.StatusOK, resp)
}

type statusRequest struct {
	DeliveryStatus string `json:"deliveryStatus"`
}

type statusResponse struct {
	Changed  bool                  `json:"changed"`
	Previous domain.DeliveryStatus `json:"previous"`
	Order    orderView             `json:"order"`
}

func (h *Handler) HandleUserOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, orders.UserScope(r.PathValue("userId")))
}

func (h *Handler) HandleRecentOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, orders.RecentScope)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, scope orders.Scope) {
	orderID := r.PathValue("orderId")
	if orderID == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := domain.ParseDeliveryStatus(req.DeliveryStatus); err != nil {
		h.writeFailure(w, fmt.Errorf("%w: %w", orders.ErrInvalidStatus, err), msgUpdateUnavailable)
		return
	}

	sess := session.FromRequest(r)
	if !sess.Authenticated() {
		h.writeFailure(w, session.ErrNotAuthenticated, msgUpdateUnavailable)
		return
	}

	vw, err := h.views.Ensure(r.Context(), sess, scope)
	if err != nil {
		h.writeFailure(w, err, msgOrdersUnavailable)
		return
	}

	result, err := vw.gate.RequestTransition(r.Context(), sess, orderID, req.DeliveryStatus)
	if err != nil {
		h.writeFailure(w, err, msgUpdateUnavailable)
		return
	}

	h.writeJSON(w, http.StatusOK, statusResponse{
		Changed:  result.Changed,
		Previous: result.Previous,
		Order:    newOrderView(result.Order),
	})
}

func newOrderView(o domain.Order) orderView {
	return orderView{Order: o, OrderTotals: aggregate.TotalsForOrder(o)}
}

// writeFailure maps domain and remote errors onto HTTP responses. Messages
// for rejected requests come from the remote service.
func (h *Handler) writeFailure(w http.ResponseWriter, err error, unavailable string) {
	var rejected *remote.RejectedError

	switch {
	case errors.Is(err, session.ErrNotAuthenticated), errors.Is(err, remote.ErrUnauthorized):
		h.logger.Warn("request not authenticated", "error", err)
		h.writeError(w, http.StatusUnauthorized, msgAuthRequired)
	case errors.Is(err, orders.ErrUserIDRequired):
		h.writeError(w, http.StatusBadRequest, "User ID is required.")
	case errors.Is(err, orders.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidProduct):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrOrderNotFound):
		h.writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, orders.ErrTransitionInFlight):
		h.writeError(w, http.StatusConflict, "a status update for this order is already in progress")
	case errors.As(err, &rejected):
		h.logger.Warn("remote rejected request", "error", err)
		h.writeError(w, http.StatusUnprocessableEntity, rejected.Message)
	case errors.Is(err, remote.ErrUnavailable), errors.Is(err, remote.ErrMalformedResponse):
		h.logger.Error("remote service unavailable", "error", err)
		h.writeError(w, http.StatusBadGateway, unavailable)
	case errors.Is(err, orders.ErrStoreClosed):
		h.logger.Warn("order view closed during request", "error", err)
		w.Header().Set("Retry-After", "1")
		h.writeError(w, http.StatusServiceUnavailable, "order view was reset, please retry")
	default:
		h.logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
