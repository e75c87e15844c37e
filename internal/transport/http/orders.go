package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/services/ordersvc"
	"github.com/go-playground/validator/v10"
)

type createPOSOrderRequest struct {
	Items []ordersvc.LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type createOnlineOrderRequest struct {
	Address      *string                    `json:"address,omitempty"`
	Phone        *string                    `json:"phone,omitempty"`
	Email        *string                    `json:"email,omitempty"`
	CustomerName *string                    `json:"customerName,omitempty"`
	Items        []ordersvc.LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *HTTPTransport) createPOSOrder(w http.ResponseWriter, r *http.Request) {
	staffID, err := requireActorID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createPOSOrderRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.BadRequest("invalid request body"))
		return
	}
	if err = validator.New().Struct(&req); err != nil {
		writeError(w, r, apperrors.BadRequest("%s", err.Error()))
		return
	}

	o, err := h.orders.CreatePOSOrder(r.Context(), ordersvc.CreatePOSOrderRequest{Items: req.Items}, staffID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, OrderToView(*o))
}

func (h *HTTPTransport) createOnlineOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req createOnlineOrderRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.BadRequest("invalid request body"))
		return
	}
	if err = validator.New().Struct(&req); err != nil {
		writeError(w, r, apperrors.BadRequest("%s", err.Error()))
		return
	}

	o, err := h.orders.CreateOnlineOrder(r.Context(), ordersvc.CreateOnlineOrderRequest{
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		CustomerName: req.CustomerName,
		Items:        req.Items,
	}, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, OrderToView(*o))
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
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

	var req ordersvc.UpdateOrderRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.BadRequest("invalid request body"))
		return
	}

	o, err := h.orders.UpdateOrder(r.Context(), id, req, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderToView(*o))
}

func (h *HTTPTransport) closeOrder(w http.ResponseWriter, r *http.Request) {
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

	o, err := h.orders.CloseOrder(r.Context(), id, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderToView(*o))
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
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

	if err = h.orders.DeleteOrder(r.Context(), id, actor); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderToView(*o))
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := &order.QueryOrdersModel{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			writeError(w, r, apperrors.BadRequest("unknown order status %q", raw))
			return
		}
		filter.Status = &status
	}

	orders, total, err := h.orders.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listOrdersResponse{
		Orders:     ordersToViews(orders),
		TotalCount: total,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}
