package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func addCartItemHTTP(t *testing.T, server *Server, token, productID string, quantity int) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]any{"product_id": productID, "quantity": quantity})
	if err != nil {
		t.Fatalf("body marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/orders/cart/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestCartRoutesRequireAuthentication(t *testing.T) {
	server := newTestServer(t)
	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders/cart"},
		{http.MethodPost, "/api/orders/cart/add"},
		{http.MethodPost, "/api/orders/checkout"},
		{http.MethodGet, "/api/orders/history"},
	} {
		req := httptest.NewRequest(route.method, route.path, bytes.NewReader([]byte(`{}`)))
		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d body=%s", route.method, route.path, rr.Code, rr.Body.String())
		}
	}
}

func TestCartCheckoutFlowOverHTTP(t *testing.T) {
	server := newTestServer(t)
	productID := createProductHTTP(t, server, adminToken(t, server), "Monitor", "120.00")
	token := registerAndLogin(t, server, "alice")

	rr := addCartItemHTTP(t, server, token, productID, 2)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 add item, got %d body=%s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	checkoutRR := httptest.NewRecorder()
	server.mux.ServeHTTP(checkoutRR, req)
	if checkoutRR.Code != http.StatusOK {
		t.Fatalf("expected 200 checkout, got %d body=%s", checkoutRR.Code, checkoutRR.Body.String())
	}
	var placed struct {
		OrderID     string `json:"order_id"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
	}
	if err := json.Unmarshal(checkoutRR.Body.Bytes(), &placed); err != nil {
		t.Fatalf("checkout decode failed: %v", err)
	}
	if placed.Status != "PLACED" || placed.TotalAmount != "240.00" {
		t.Fatalf("unexpected placed order: %+v", placed)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	cartRR := httptest.NewRecorder()
	server.mux.ServeHTTP(cartRR, req)
	if cartRR.Code != http.StatusNotFound {
		t.Fatalf("expected 404 cart after checkout, got %d body=%s", cartRR.Code, cartRR.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+placed.OrderID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	orderRR := httptest.NewRecorder()
	server.mux.ServeHTTP(orderRR, req)
	if orderRR.Code != http.StatusOK {
		t.Fatalf("expected 200 order lookup, got %d body=%s", orderRR.Code, orderRR.Body.String())
	}
}

func TestCartLineUpdateAndRemoveOverHTTP(t *testing.T) {
	server := newTestServer(t)
	productID := createProductHTTP(t, server, adminToken(t, server), "Keyboard", "50.00")
	token := registerAndLogin(t, server, "alice")

	if rr := addCartItemHTTP(t, server, token, productID, 1); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 add item, got %d body=%s", rr.Code, rr.Body.String())
	}

	body, err := json.Marshal(map[string]any{"product_id": productID, "quantity": 3})
	if err != nil {
		t.Fatalf("body marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/api/orders/cart/update", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	updateRR := httptest.NewRecorder()
	server.mux.ServeHTTP(updateRR, req)
	if updateRR.Code != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", updateRR.Code, updateRR.Body.String())
	}
	var updated struct {
		TotalAmount string `json:"total_amount"`
	}
	if err := json.Unmarshal(updateRR.Body.Bytes(), &updated); err != nil {
		t.Fatalf("update decode failed: %v", err)
	}
	if updated.TotalAmount != "150.00" {
		t.Fatalf("expected total 150.00 after update, got %s", updated.TotalAmount)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/orders/cart/remove/"+productID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	removeRR := httptest.NewRecorder()
	server.mux.ServeHTTP(removeRR, req)
	if removeRR.Code != http.StatusOK {
		t.Fatalf("expected 200 remove, got %d body=%s", removeRR.Code, removeRR.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/orders/cart/remove/"+productID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	missingRR := httptest.NewRecorder()
	server.mux.ServeHTTP(missingRR, req)
	if missingRR.Code != http.StatusNotFound {
		t.Fatalf("expected 404 removing absent line, got %d body=%s", missingRR.Code, missingRR.Body.String())
	}
}

func TestOrderLookupHidesForeignOrders(t *testing.T) {
	server := newTestServer(t)
	productID := createProductHTTP(t, server, adminToken(t, server), "Desk", "300.00")
	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")

	if rr := addCartItemHTTP(t, server, aliceToken, productID, 1); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 add item, got %d body=%s", rr.Code, rr.Body.String())
	}
	req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	checkoutRR := httptest.NewRecorder()
	server.mux.ServeHTTP(checkoutRR, req)
	var placed struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(checkoutRR.Body.Bytes(), &placed); err != nil {
		t.Fatalf("checkout decode failed: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+placed.OrderID, nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign order, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminOrderRoutesRequireAdminRole(t *testing.T) {
	server := newTestServer(t)
	userToken := registerAndLogin(t, server, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for plain user, got %d body=%s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, server))
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 admin listing, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminStatusUpdateValidation(t *testing.T) {
	server := newTestServer(t)
	productID := createProductHTTP(t, server, adminToken(t, server), "Lamp", "25.00")
	userToken := registerAndLogin(t, server, "alice")
	admin := adminToken(t, server)

	if rr := addCartItemHTTP(t, server, userToken, productID, 1); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 add item, got %d body=%s", rr.Code, rr.Body.String())
	}
	req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	checkoutRR := httptest.NewRecorder()
	server.mux.ServeHTTP(checkoutRR, req)
	var placed struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(checkoutRR.Body.Bytes(), &placed); err != nil {
		t.Fatalf("checkout decode failed: %v", err)
	}

	statusReq := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+placed.OrderID+"/status", bytes.NewReader([]byte(`{"status":"SHIPPED"}`)))
	statusReq.Header.Set("Content-Type", "application/json")
	statusReq.Header.Set("Authorization", "Bearer "+admin)
	statusRR := httptest.NewRecorder()
	server.mux.ServeHTTP(statusRR, statusReq)
	if statusRR.Code != http.StatusOK {
		t.Fatalf("expected 200 status update, got %d body=%s", statusRR.Code, statusRR.Body.String())
	}

	badReq := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+placed.OrderID+"/status", bytes.NewReader([]byte(`{"status":"TELEPORTED"}`)))
	badReq.Header.Set("Content-Type", "application/json")
	badReq.Header.Set("Authorization", "Bearer "+admin)
	badRR := httptest.NewRecorder()
	server.mux.ServeHTTP(badRR, badReq)
	if badRR.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d body=%s", badRR.Code, badRR.Body.String())
	}

	missingReq := httptest.NewRequest(http.MethodPut, "/api/admin/orders/no-such-order/status", bytes.NewReader([]byte(`{"status":"SHIPPED"}`)))
	missingReq.Header.Set("Content-Type", "application/json")
	missingReq.Header.Set("Authorization", "Bearer "+admin)
	missingRR := httptest.NewRecorder()
	server.mux.ServeHTTP(missingRR, missingReq)
	if missingRR.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d body=%s", missingRR.Code, missingRR.Body.String())
	}
}
