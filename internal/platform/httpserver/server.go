package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	catalog "turbo/contexts/commerce/catalog-service"
	orders "turbo/contexts/commerce/order-service"
	identity "turbo/contexts/identity-access/identity-service"
	requestgate "turbo/contexts/identity-access/request-gate"
	gateapp "turbo/contexts/identity-access/request-gate/application"
	"turbo/contexts/identity-access/request-gate/domain/entities"
	"turbo/contexts/identity-access/request-gate/domain/services"
	gatehttp "turbo/contexts/identity-access/request-gate/transport/http"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	gate     requestgate.Module
	identity identity.Module
	catalog  catalog.Module
	orders   orders.Module
}

func New(
	gateModule requestgate.Module,
	identityModule identity.Module,
	catalogModule catalog.Module,
	ordersModule orders.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		gate:     gateModule,
		identity: identityModule,
		catalog:  catalogModule,
		orders:   ordersModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/users/me", s.handleProfile)

	s.mux.HandleFunc("GET /api/products", s.handleListProducts)
	s.mux.HandleFunc("GET /api/products/{product_id}", s.handleGetProduct)
	s.mux.HandleFunc("POST /api/products", s.handleCreateProduct)
	s.mux.HandleFunc("PUT /api/products/{product_id}", s.handleUpdateProduct)
	s.mux.HandleFunc("DELETE /api/products/{product_id}", s.handleDeleteProduct)

	s.mux.HandleFunc("GET /api/orders/cart", s.handleGetCart)
	s.mux.HandleFunc("POST /api/orders/cart/add", s.handleAddCartItem)
	s.mux.HandleFunc("PUT /api/orders/cart/update", s.handleUpdateCartItem)
	s.mux.HandleFunc("DELETE /api/orders/cart/remove/{product_id}", s.handleRemoveCartItem)
	s.mux.HandleFunc("POST /api/orders/checkout", s.handleCheckout)
	s.mux.HandleFunc("GET /api/orders/history", s.handleListOrders)
	s.mux.HandleFunc("GET /api/orders/{order_id}", s.handleGetOrder)

	s.mux.HandleFunc("GET /api/admin/orders", s.handleListAllOrders)
	s.mux.HandleFunc("PUT /api/admin/orders/{order_id}/status", s.handleUpdateOrderStatus)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requirePrincipal authenticates the request through the gate and returns
// the request with the principal attached to its context, so downstream
// code can recover it with application.PrincipalFromContext. Every failure
// mode renders 401 so protected routes never leak existence.
func (s *Server) requirePrincipal(w http.ResponseWriter, r *http.Request) (*http.Request, entities.Principal, bool) {
	principal, err := s.gate.Gate.Authenticate(r.Header.Get("Authorization"))
	if err != nil {
		writeGateError(w, http.StatusUnauthorized, "unauthorized", "valid bearer token is required")
		return r, entities.Principal{}, false
	}
	r = r.WithContext(gateapp.ContextWithPrincipal(r.Context(), principal))
	return r, principal, true
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (*http.Request, entities.Principal, bool) {
	r, principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return r, entities.Principal{}, false
	}
	if !services.HasRole(principal, entities.RoleAdmin) {
		writeGateError(w, http.StatusForbidden, "forbidden", "admin role is required")
		return r, entities.Principal{}, false
	}
	return r, principal, true
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any, writeError func(http.ResponseWriter, int, string, string)) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeGateError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, gatehttp.ErrorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
