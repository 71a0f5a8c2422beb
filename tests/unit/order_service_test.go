package unit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	catalog "turbo/contexts/commerce/catalog-service"
	cataloghttp "turbo/contexts/commerce/catalog-service/transport/http"
	orders "turbo/contexts/commerce/order-service"
	"turbo/contexts/commerce/order-service/adapters/pricing"
	domainerrors "turbo/contexts/commerce/order-service/domain/errors"
	httptransport "turbo/contexts/commerce/order-service/transport/http"
	"turbo/internal/shared/events"
)

type capturePublisher struct {
	mu        sync.Mutex
	published []events.Envelope
}

func (p *capturePublisher) PublishOrderEvent(_ context.Context, event events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

type orderFixture struct {
	orders    orders.Module
	catalog   catalog.Module
	publisher *capturePublisher
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	catalogModule := catalog.NewInMemoryModule(nil)
	publisher := &capturePublisher{}
	orderModule := orders.NewInMemoryModule(
		pricing.CatalogLookup{Catalog: catalogModule.Pricing},
		publisher,
		nil,
	)
	return orderFixture{orders: orderModule, catalog: catalogModule, publisher: publisher}
}

func (f orderFixture) createProduct(t *testing.T, name, price string) string {
	t.Helper()
	product, err := f.catalog.Handler.CreateProductHandler(context.Background(), cataloghttp.ProductRequest{
		Name:  name,
		Price: price,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product.ProductID
}

func TestAddItemCreatesCartAndSnapshotsPrice(t *testing.T) {
	fixture := newOrderFixture(t)
	productID := fixture.createProduct(t, "Keyboard", "19.99")

	cart, err := fixture.orders.Handler.AddItemHandler(context.Background(), "alice", httptransport.AddItemRequest{
		ProductID: productID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if cart.Status != "PENDING" {
		t.Fatalf("expected PENDING cart, got %s", cart.Status)
	}
	if cart.TotalAmount != "39.98" {
		t.Fatalf("expected total 39.98, got %s", cart.TotalAmount)
	}

	// Catalog price changes must not touch the snapshot on existing lines.
	if _, err := fixture.catalog.Handler.UpdateProductHandler(context.Background(), productID, cataloghttp.ProductRequest{
		Name:  "Keyboard",
		Price: "29.99",
	}); err != nil {
		t.Fatalf("update product failed: %v", err)
	}

	cart, err = fixture.orders.Handler.AddItemHandler(context.Background(), "alice", httptransport.AddItemRequest{
		ProductID: productID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected merged line, got %d items", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].UnitPrice != "19.99" {
		t.Fatalf("expected snapshot price 19.99, got %s", cart.Items[0].UnitPrice)
	}
	if cart.TotalAmount != "59.97" {
		t.Fatalf("expected total 59.97, got %s", cart.TotalAmount)
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	fixture := newOrderFixture(t)
	productID := fixture.createProduct(t, "Mouse", "9.50")

	if _, err := fixture.orders.Handler.AddItemHandler(context.Background(), "alice", httptransport.AddItemRequest{
		ProductID: productID,
		Quantity:  0,
	}); !errors.Is(err, domainerrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := fixture.orders.Handler.AddItemHandler(context.Background(), "alice", httptransport.AddItemRequest{
		ProductID: "missing-product",
		Quantity:  1,
	}); !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, found, err := fixture.orders.Handler.GetCartHandler(context.Background(), "alice"); err != nil || found {
		t.Fatalf("expected no cart after rejected adds, found=%v err=%v", found, err)
	}
}

func TestUpdateAndRemoveCartLines(t *testing.T) {
	fixture := newOrderFixture(t)
	keyboard := fixture.createProduct(t, "Keyboard", "19.99")
	mouse := fixture.createProduct(t, "Mouse", "9.50")

	ctx := context.Background()
	if _, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{ProductID: keyboard, Quantity: 1}); err != nil {
		t.Fatalf("add keyboard failed: %v", err)
	}
	if _, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{ProductID: mouse, Quantity: 2}); err != nil {
		t.Fatalf("add mouse failed: %v", err)
	}

	cart, err := fixture.orders.Handler.UpdateItemHandler(ctx, "alice", keyboard, httptransport.UpdateItemRequest{Quantity: 5})
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if cart.TotalAmount != "118.95" {
		t.Fatalf("expected total 118.95, got %s", cart.TotalAmount)
	}

	// Zero quantity degrades to removal.
	cart, err = fixture.orders.Handler.UpdateItemHandler(ctx, "alice", mouse, httptransport.UpdateItemRequest{Quantity: 0})
	if err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected one remaining line, got %d", len(cart.Items))
	}
	if cart.TotalAmount != "99.95" {
		t.Fatalf("expected total 99.95, got %s", cart.TotalAmount)
	}

	if _, err := fixture.orders.Handler.RemoveItemHandler(ctx, "alice", mouse); !errors.Is(err, domainerrors.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	cart, err = fixture.orders.Handler.RemoveItemHandler(ctx, "alice", keyboard)
	if err != nil {
		t.Fatalf("remove keyboard failed: %v", err)
	}
	if len(cart.Items) != 0 || cart.TotalAmount != "0.00" {
		t.Fatalf("expected empty cart with zero total, got %d items total %s", len(cart.Items), cart.TotalAmount)
	}
	if cart.Status != "PENDING" {
		t.Fatalf("emptied cart must stay PENDING, got %s", cart.Status)
	}
}

func TestCheckoutFreezesOrderAndEmitsEvent(t *testing.T) {
	fixture := newOrderFixture(t)
	productID := fixture.createProduct(t, "Monitor", "120.00")

	ctx := context.Background()
	if _, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{ProductID: productID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	placed, err := fixture.orders.Handler.CheckoutHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if placed.Status != "PLACED" {
		t.Fatalf("expected PLACED, got %s", placed.Status)
	}
	if placed.TotalAmount != "240.00" {
		t.Fatalf("expected frozen total 240.00, got %s", placed.TotalAmount)
	}

	if _, found, err := fixture.orders.Handler.GetCartHandler(ctx, "alice"); err != nil || found {
		t.Fatalf("expected no open cart after checkout, found=%v err=%v", found, err)
	}

	// A later add starts a fresh cart rather than reopening the order.
	fresh, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{ProductID: productID, Quantity: 1})
	if err != nil {
		t.Fatalf("post-checkout add failed: %v", err)
	}
	if fresh.OrderID == placed.OrderID {
		t.Fatalf("expected a new cart order id")
	}

	if err := fixture.orders.Relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(fixture.publisher.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(fixture.publisher.published))
	}
	event := fixture.publisher.published[0]
	if event.EventType != "order.placed" {
		t.Fatalf("expected order.placed, got %s", event.EventType)
	}
	if event.EntityID != placed.OrderID {
		t.Fatalf("expected entity %s, got %s", placed.OrderID, event.EntityID)
	}
	var payload struct {
		TotalAmount string `json:"total_amount"`
		Owner       string `json:"owner"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if payload.TotalAmount != "240.00" || payload.Owner != "alice" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	// A second relay pass must not republish.
	if err := fixture.orders.Relay.RunOnce(ctx); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(fixture.publisher.published) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(fixture.publisher.published))
	}
}

func TestCheckoutRejectsMissingOrEmptyCart(t *testing.T) {
	fixture := newOrderFixture(t)
	productID := fixture.createProduct(t, "Cable", "4.25")

	ctx := context.Background()
	if _, err := fixture.orders.Handler.CheckoutHandler(ctx, "alice"); !errors.Is(err, domainerrors.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	if _, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{ProductID: productID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := fixture.orders.Handler.RemoveItemHandler(ctx, "alice", productID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if _, err := fixture.orders.Handler.CheckoutHandler(ctx, "alice"); !errors.Is(err, domainerrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	cart, found, err := fixture.orders.Handler.GetCartHandler(ctx, "alice")
	if err != nil || !found {
		t.Fatalf("cart must survive rejected checkout, found=%v err=%v", found, err)
	}
	if cart.Status != "PENDING" {
		t.Fatalf("expected PENDING after rejected checkout, got %s", cart.Status)
	}
}

func TestGetOrderIsOwnerFiltered(t *testing.T) {
	fixture := newOrderFixture(t)
	productID := fixture.createProduct(t, "Desk", "300.00")

	ctx := context.Background()
	if _, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{ProductID: productID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	placed, err := fixture.orders.Handler.CheckoutHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, found, err := fixture.orders.Handler.GetOrderHandler(ctx, "bob", placed.OrderID); err != nil || found {
		t.Fatalf("foreign order must look absent, found=%v err=%v", found, err)
	}
	got, found, err := fixture.orders.Handler.GetOrderHandler(ctx, "alice", placed.OrderID)
	if err != nil || !found {
		t.Fatalf("owner lookup failed, found=%v err=%v", found, err)
	}
	if got.OrderID != placed.OrderID {
		t.Fatalf("expected order %s, got %s", placed.OrderID, got.OrderID)
	}

	aliceOrders, err := fixture.orders.Handler.ListOrdersHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(aliceOrders.Orders) != 1 {
		t.Fatalf("expected one order for alice, got %d", len(aliceOrders.Orders))
	}
	bobOrders, err := fixture.orders.Handler.ListOrdersHandler(ctx, "bob")
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(bobOrders.Orders) != 0 {
		t.Fatalf("expected no orders for bob, got %d", len(bobOrders.Orders))
	}
}

func TestAdminStatusUpdates(t *testing.T) {
	fixture := newOrderFixture(t)
	productID := fixture.createProduct(t, "Lamp", "25.00")

	ctx := context.Background()
	if _, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{ProductID: productID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	placed, err := fixture.orders.Handler.CheckoutHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	for _, status := range []string{"SHIPPED", "DELIVERED", "CANCELLED", "PENDING"} {
		updated, err := fixture.orders.Handler.UpdateStatusHandler(ctx, placed.OrderID, httptransport.UpdateStatusRequest{Status: status})
		if err != nil {
			t.Fatalf("status update to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %s, got %s", status, updated.Status)
		}
	}

	if _, err := fixture.orders.Handler.UpdateStatusHandler(ctx, placed.OrderID, httptransport.UpdateStatusRequest{Status: "EXPLODED"}); !errors.Is(err, domainerrors.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := fixture.orders.Handler.UpdateStatusHandler(ctx, "no-such-order", httptransport.UpdateStatusRequest{Status: "SHIPPED"}); !errors.Is(err, domainerrors.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	all, err := fixture.orders.Handler.ListAllOrdersHandler(ctx)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all.Orders) != 1 {
		t.Fatalf("expected one order in admin listing, got %d", len(all.Orders))
	}
}

func TestConcurrentAddsKeepOneCart(t *testing.T) {
	fixture := newOrderFixture(t)
	productID := fixture.createProduct(t, "Sticker", "1.00")

	ctx := context.Background()
	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			if _, err := fixture.orders.Handler.AddItemHandler(ctx, "alice", httptransport.AddItemRequest{
				ProductID: productID,
				Quantity:  1,
			}); err != nil {
				t.Errorf("concurrent add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	cart, found, err := fixture.orders.Handler.GetCartHandler(ctx, "alice")
	if err != nil || !found {
		t.Fatalf("expected an open cart, found=%v err=%v", found, err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != writers {
		t.Fatalf("expected one line with quantity %d, got %+v", writers, cart.Items)
	}

	history, err := fixture.orders.Handler.ListOrdersHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(history.Orders) != 1 {
		t.Fatalf("expected a single order after concurrent adds, got %d", len(history.Orders))
	}
}
