package httpserver

import (
	"errors"
	"net/http"

	ordererrors "turbo/contexts/commerce/order-service/domain/errors"
	orderhttp "turbo/contexts/commerce/order-service/transport/http"
)

func writeOrderError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, orderhttp.ErrorResponse{Code: code, Message: message})
}

func writeOrderDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ordererrors.ErrInvalidQuantity),
		errors.Is(err, ordererrors.ErrInvalidProductRef),
		errors.Is(err, ordererrors.ErrInvalidStatus),
		errors.Is(err, ordererrors.ErrEmptyCart):
		writeOrderError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ordererrors.ErrProductNotFound),
		errors.Is(err, ordererrors.ErrCartNotFound),
		errors.Is(err, ordererrors.ErrItemNotFound),
		errors.Is(err, ordererrors.ErrOrderNotFound):
		writeOrderError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeOrderError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, found, err := s.orders.Handler.GetCartHandler(r.Context(), principal.Identity)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	if !found {
		writeOrderError(w, http.StatusNotFound, "not_found", "no active cart")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req orderhttp.AddItemRequest
	if !s.decodeJSON(w, r, &req, writeOrderError) {
		return
	}
	resp, err := s.orders.Handler.AddItemHandler(r.Context(), principal.Identity, req)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	var req orderhttp.UpdateItemRequest
	if !s.decodeJSON(w, r, &req, writeOrderError) {
		return
	}
	resp, err := s.orders.Handler.UpdateItemHandler(r.Context(), principal.Identity, req.ProductID, req)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.orders.Handler.RemoveItemHandler(r.Context(), principal.Identity, r.PathValue("product_id"))
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.orders.Handler.CheckoutHandler(r.Context(), principal.Identity)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.orders.Handler.ListOrdersHandler(r.Context(), principal.Identity)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, found, err := s.orders.Handler.GetOrderHandler(r.Context(), principal.Identity, r.PathValue("order_id"))
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	if !found {
		writeOrderError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAllOrders(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	resp, err := s.orders.Handler.ListAllOrdersHandler(r.Context())
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var req orderhttp.UpdateStatusRequest
	if !s.decodeJSON(w, r, &req, writeOrderError) {
		return
	}
	resp, err := s.orders.Handler.UpdateStatusHandler(r.Context(), r.PathValue("order_id"), req)
	if err != nil {
		writeOrderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
