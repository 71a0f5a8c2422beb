package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"turbo/contexts/commerce/catalog-service/domain/entities"
	domainerrors "turbo/contexts/commerce/catalog-service/domain/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type productModel struct {
	ProductID   string          `gorm:"column:product_id;primaryKey"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

func (r *Repository) CreateProduct(ctx context.Context, product entities.Product) error {
	row := productModelFromEntity(product)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) UpdateProduct(ctx context.Context, product entities.Product) error {
	result := r.db.WithContext(ctx).
		Model(&productModel{}).
		Where("product_id = ?", product.ProductID).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"updated_at":  product.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ?", strings.TrimSpace(productID)).
		Delete(&productModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}
	return nil
}

func (r *Repository) GetProduct(ctx context.Context, productID string) (entities.Product, bool, error) {
	var row productModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", strings.TrimSpace(productID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Product{}, false, nil
		}
		return entities.Product{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]entities.Product, error) {
	var rows []productModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func productModelFromEntity(product entities.Product) productModel {
	return productModel{
		ProductID:   product.ProductID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func (m productModel) toEntity() entities.Product {
	return entities.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
