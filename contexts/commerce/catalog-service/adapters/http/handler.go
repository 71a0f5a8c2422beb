package httpadapter

import (
	"context"
	"log/slog"

	"turbo/contexts/commerce/catalog-service/application"
	"turbo/contexts/commerce/catalog-service/domain/entities"
	domainerrors "turbo/contexts/commerce/catalog-service/domain/errors"
	httptransport "turbo/contexts/commerce/catalog-service/transport/http"

	"github.com/shopspring/decimal"
)

// Handler maps HTTP DTOs to application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateProductHandler(ctx context.Context, request httptransport.ProductRequest) (httptransport.ProductResponse, error) {
	input, err := productInput(request)
	if err != nil {
		return httptransport.ProductResponse{}, err
	}
	product, err := h.Service.CreateProduct(ctx, input)
	if err != nil {
		return httptransport.ProductResponse{}, err
	}
	return productResponse(product), nil
}

func (h Handler) UpdateProductHandler(ctx context.Context, productID string, request httptransport.ProductRequest) (httptransport.ProductResponse, error) {
	input, err := productInput(request)
	if err != nil {
		return httptransport.ProductResponse{}, err
	}
	product, err := h.Service.UpdateProduct(ctx, productID, input)
	if err != nil {
		return httptransport.ProductResponse{}, err
	}
	return productResponse(product), nil
}

func (h Handler) DeleteProductHandler(ctx context.Context, productID string) error {
	return h.Service.DeleteProduct(ctx, productID)
}

func (h Handler) GetProductHandler(ctx context.Context, productID string) (httptransport.ProductResponse, error) {
	product, err := h.Service.GetProduct(ctx, productID)
	if err != nil {
		return httptransport.ProductResponse{}, err
	}
	return productResponse(product), nil
}

func (h Handler) ListProductsHandler(ctx context.Context) (httptransport.ListProductsResponse, error) {
	products, err := h.Service.ListProducts(ctx)
	if err != nil {
		return httptransport.ListProductsResponse{}, err
	}
	items := make([]httptransport.ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, productResponse(product))
	}
	return httptransport.ListProductsResponse{Products: items}, nil
}

func productInput(request httptransport.ProductRequest) (application.ProductInput, error) {
	price, err := decimal.NewFromString(request.Price)
	if err != nil {
		return application.ProductInput{}, domainerrors.ErrInvalidProduct
	}
	return application.ProductInput{
		Name:        request.Name,
		Description: request.Description,
		Price:       price,
	}, nil
}

func productResponse(product entities.Product) httptransport.ProductResponse {
	return httptransport.ProductResponse{
		ProductID:   product.ProductID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
