package httpserver

import (
	"errors"
	"net/http"

	catalogerrors "turbo/contexts/commerce/catalog-service/domain/errors"
	cataloghttp "turbo/contexts/commerce/catalog-service/transport/http"
)

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{Code: code, Message: message})
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrInvalidProduct):
		writeCatalogError(w, http.StatusBadRequest, "invalid_product", err.Error())
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		writeCatalogError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListProductsHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetProductHandler(r.Context(), r.PathValue("product_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var req cataloghttp.ProductRequest
	if !s.decodeJSON(w, r, &req, writeCatalogError) {
		return
	}
	resp, err := s.catalog.Handler.CreateProductHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var req cataloghttp.ProductRequest
	if !s.decodeJSON(w, r, &req, writeCatalogError) {
		return
	}
	resp, err := s.catalog.Handler.UpdateProductHandler(r.Context(), r.PathValue("product_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if err := s.catalog.Handler.DeleteProductHandler(r.Context(), r.PathValue("product_id")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
