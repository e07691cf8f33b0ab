package console

import (
	"encoding/json"
	"net/http"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

type productView struct {
	domain.Product
	DiscountPercent int64 `json:"discountPercent"`
}

func newProductView(p domain.Product) productView {
	return productView{Product: p, DiscountPercent: p.DiscountPercent()}
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.api.ListProducts(r.Context(), session.FromRequest(r))
	if err != nil {
		h.writeFailure(w, err, msgProductsUnavail)
		return
	}

	products := make([]productView, 0, len(list.Products))
	for _, p := range list.Products {
		products = append(products, newProductView(p))
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"count":    list.Count,
		"products": products,
	})
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.api.GetProduct(r.Context(), session.FromRequest(r), r.PathValue("id"))
	if err != nil {
		h.writeFailure(w, err, msgProductsUnavail)
		return
	}

	h.writeJSON(w, http.StatusOK, newProductView(product))
}

func (h *Handler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.api.CreateProduct(r.Context(), session.FromRequest(r), product); err != nil {
		h.writeFailure(w, err, msgProductsUnavail)
		return
	}

	h.logger.Info("product created", "name", product.Name, "category", product.Category)
	h.writeJSON(w, http.StatusCreated, map[string]string{"message": "Product created successfully!"})
}

func (h *Handler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.api.UpdateProduct(r.Context(), session.FromRequest(r), id, product); err != nil {
		h.writeFailure(w, err, msgProductsUnavail)
		return
	}

	h.logger.Info("product updated", "product_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully!"})
}

func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.api.DeleteProduct(r.Context(), session.FromRequest(r), id); err != nil {
		h.writeFailure(w, err, msgProductsUnavail)
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully!"})
}

func (h *Handler) HandleProductOptions(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"categories":       domain.Categories(),
		"units":            domain.Units(),
		"deliveryStatuses": domain.DeliveryStatuses(),
	})
}
