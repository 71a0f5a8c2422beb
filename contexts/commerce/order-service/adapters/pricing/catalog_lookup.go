// Package pricing bridges the order engine to the catalog pricing API.
package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	catalogapp "turbo/contexts/commerce/catalog-service/application"
	catalogerrors "turbo/contexts/commerce/catalog-service/domain/errors"
	"turbo/contexts/commerce/order-service/ports"
)

// CatalogLookup resolves unit prices through the catalog service. A
// missing product is a miss, not an error, so the order engine owns the
// resulting domain error.
type CatalogLookup struct {
	Catalog catalogapp.Service
}

var _ ports.PriceLookup = CatalogLookup{}

func (l CatalogLookup) UnitPrice(ctx context.Context, productID string) (decimal.Decimal, bool, error) {
	price, err := l.Catalog.GetUnitPrice(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrProductNotFound) {
			return decimal.Decimal{}, false, nil
		}
		return decimal.Decimal{}, false, err
	}
	return price, true, nil
}
