package httpadapter

import (
	"context"
	"log/slog"

	"turbo/contexts/commerce/order-service/application/commands"
	"turbo/contexts/commerce/order-service/application/queries"
	"turbo/contexts/commerce/order-service/domain/entities"
	httptransport "turbo/contexts/commerce/order-service/transport/http"
)

// Handler maps HTTP DTOs to order commands and queries. Owner identity
// arrives from the transport layer, never from request bodies.
type Handler struct {
	AddItem       commands.AddItemUseCase
	UpdateItem    commands.UpdateItemQuantityUseCase
	RemoveItem    commands.RemoveItemUseCase
	Checkout      commands.CheckoutUseCase
	UpdateStatus  commands.UpdateStatusUseCase
	GetActiveCart queries.GetActiveCartUseCase
	GetOrder      queries.GetOrderUseCase
	ListOrders    queries.ListOrdersUseCase
	ListAllOrders queries.ListAllOrdersUseCase
	Logger        *slog.Logger
}

func (h Handler) AddItemHandler(ctx context.Context, owner string, request httptransport.AddItemRequest) (httptransport.OrderResponse, error) {
	order, err := h.AddItem.Execute(ctx, commands.AddItemCommand{
		Owner:     owner,
		ProductID: request.ProductID,
		Quantity:  request.Quantity,
	})
	if err != nil {
		return httptransport.OrderResponse{}, err
	}
	return orderResponse(order), nil
}

func (h Handler) UpdateItemHandler(ctx context.Context, owner, productID string, request httptransport.UpdateItemRequest) (httptransport.OrderResponse, error) {
	order, err := h.UpdateItem.Execute(ctx, commands.UpdateItemQuantityCommand{
		Owner:     owner,
		ProductID: productID,
		Quantity:  request.Quantity,
	})
	if err != nil {
		return httptransport.OrderResponse{}, err
	}
	return orderResponse(order), nil
}

func (h Handler) RemoveItemHandler(ctx context.Context, owner, productID string) (httptransport.OrderResponse, error) {
	order, err := h.RemoveItem.Execute(ctx, commands.RemoveItemCommand{Owner: owner, ProductID: productID})
	if err != nil {
		return httptransport.OrderResponse{}, err
	}
	return orderResponse(order), nil
}

func (h Handler) CheckoutHandler(ctx context.Context, owner string) (httptransport.OrderResponse, error) {
	order, err := h.Checkout.Execute(ctx, commands.CheckoutCommand{Owner: owner})
	if err != nil {
		return httptransport.OrderResponse{}, err
	}
	return orderResponse(order), nil
}

// GetCartHandler reports cart absence through the boolean so the server
// can render 404 without a sentinel error.
func (h Handler) GetCartHandler(ctx context.Context, owner string) (httptransport.OrderResponse, bool, error) {
	order, found, err := h.GetActiveCart.Execute(ctx, queries.GetActiveCartQuery{Owner: owner})
	if err != nil || !found {
		return httptransport.OrderResponse{}, false, err
	}
	return orderResponse(order), true, nil
}

func (h Handler) GetOrderHandler(ctx context.Context, owner, orderID string) (httptransport.OrderResponse, bool, error) {
	order, found, err := h.GetOrder.Execute(ctx, queries.GetOrderQuery{Owner: owner, OrderID: orderID})
	if err != nil || !found {
		return httptransport.OrderResponse{}, false, err
	}
	return orderResponse(order), true, nil
}

func (h Handler) ListOrdersHandler(ctx context.Context, owner string) (httptransport.ListOrdersResponse, error) {
	orders, err := h.ListOrders.Execute(ctx, queries.ListOrdersQuery{Owner: owner})
	if err != nil {
		return httptransport.ListOrdersResponse{}, err
	}
	return listResponse(orders), nil
}

func (h Handler) ListAllOrdersHandler(ctx context.Context) (httptransport.ListOrdersResponse, error) {
	orders, err := h.ListAllOrders.Execute(ctx)
	if err != nil {
		return httptransport.ListOrdersResponse{}, err
	}
	return listResponse(orders), nil
}

func (h Handler) UpdateStatusHandler(ctx context.Context, orderID string, request httptransport.UpdateStatusRequest) (httptransport.OrderResponse, error) {
	order, err := h.UpdateStatus.Execute(ctx, commands.UpdateStatusCommand{OrderID: orderID, Status: request.Status})
	if err != nil {
		return httptransport.OrderResponse{}, err
	}
	return orderResponse(order), nil
}

func orderResponse(order entities.Order) httptransport.OrderResponse {
	items := make([]httptransport.LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, httptransport.LineItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}
	return httptransport.OrderResponse{
		OrderID:     order.OrderID,
		Owner:       order.Owner,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.StringFixed(2),
		Items:       items,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func listResponse(orders []entities.Order) httptransport.ListOrdersResponse {
	items := make([]httptransport.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, orderResponse(order))
	}
	return httptransport.ListOrdersResponse{Orders: items}
}
