package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/services/catalogsvc"
)

type listProductsResponse struct {
	Products   []product.Product `json:"products"`
	TotalCount int64             `json:"totalCount"`
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := requireActorID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req catalogsvc.CreateProductRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.BadRequest("invalid request body"))
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), req, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *HTTPTransport) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	actor, err := requireActorID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req catalogsvc.UpdateProductRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.BadRequest("invalid request body"))
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), id, req, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *HTTPTransport) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	actor, err := requireActorID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.catalog.DeleteProduct(r.Context(), id, actor); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &product.QueryProductsModel{
		Name:   q.Get("name"),
		SortBy: product.ParseSortBy(q.Get("sortBy")),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if raw := q.Get("priceFrom"); raw != "" {
		v := int64(queryInt(r, "priceFrom", 0))
		filter.PriceFromCents = &v
	}
	if raw := q.Get("priceTo"); raw != "" {
		v := int64(queryInt(r, "priceTo", 0))
		filter.PriceToCents = &v
	}

	products, total, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listProductsResponse{
		Products:   products,
		TotalCount: total,
	})
}
