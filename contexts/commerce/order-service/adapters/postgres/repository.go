package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"turbo/contexts/commerce/order-service/domain/entities"
	domainerrors "turbo/contexts/commerce/order-service/domain/errors"
	"turbo/contexts/commerce/order-service/domain/services"
	"turbo/contexts/commerce/order-service/ports"
	"turbo/internal/shared/outbox"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type orderModel struct {
	OrderID     string    `gorm:"column:order_id;primaryKey"`
	Owner       string    `gorm:"column:owner;index"`
	Status      string    `gorm:"column:status"`
	TotalAmount string    `gorm:"column:total_amount;type:numeric(14,2)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

type lineItemModel struct {
	OrderID   string `gorm:"column:order_id;primaryKey"`
	ProductID string `gorm:"column:product_id;primaryKey"`
	Quantity  int    `gorm:"column:quantity"`
	UnitPrice string `gorm:"column:unit_price;type:numeric(12,2)"`
}

func (lineItemModel) TableName() string { return "order_items" }

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "order_outbox" }

// Repository is the gorm-backed order store. The one-cart-per-owner
// guarantee rests on the orders_one_pending_per_owner partial unique
// index from migrations/0001_init.up.sql.
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

var (
	_ ports.Repository       = (*Repository)(nil)
	_ ports.OutboxRepository = (*Repository)(nil)
)

func (r *Repository) MutateActiveCart(ctx context.Context, input ports.MutateCartInput, mutate func(order *entities.Order) error) (entities.Order, error) {
	var result entities.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := r.lockOrSeedCart(tx, input)
		if err != nil {
			return err
		}

		if err := mutate(&order); err != nil {
			return err
		}

		if err := r.persistOrder(tx, order); err != nil {
			return err
		}
		if input.Outbox != nil {
			if err := r.insertOutbox(tx, *input.Outbox, order); err != nil {
				return err
			}
		}
		result = order
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	return result, nil
}

// lockOrSeedCart fetches the owner's PENDING order FOR UPDATE. When no
// cart exists and a seed is provided, the seed row is inserted; losing
// an insert race falls back to locking the winner's row.
func (r *Repository) lockOrSeedCart(tx *gorm.DB, input ports.MutateCartInput) (entities.Order, error) {
	var row orderModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner = ? AND status = ?", input.Owner, string(entities.StatusPending)).
		First(&row).
		Error
	if err == nil {
		return r.loadOrder(tx, row)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Order{}, err
	}
	if input.Seed == nil {
		return entities.Order{}, domainerrors.ErrCartNotFound
	}

	seed := input.Seed.Clone()
	seed.Status = entities.StatusPending
	if createErr := tx.Create(orderModelFromEntity(seed)).Error; createErr != nil {
		if isUniqueViolation(createErr) {
			retryErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("owner = ? AND status = ?", input.Owner, string(entities.StatusPending)).
				First(&row).
				Error
			if retryErr != nil {
				return entities.Order{}, retryErr
			}
			return r.loadOrder(tx, row)
		}
		return entities.Order{}, createErr
	}
	return seed, nil
}

func (r *Repository) persistOrder(tx *gorm.DB, order entities.Order) error {
	update := tx.Model(&orderModel{}).
		Where("order_id = ?", order.OrderID).
		Updates(map[string]any{
			"status":       string(order.Status),
			"total_amount": order.TotalAmount.StringFixed(2),
			"updated_at":   order.UpdatedAt,
		})
	if update.Error != nil {
		return update.Error
	}

	// Line items are replaced wholesale; carts are small.
	if err := tx.Where("order_id = ?", order.OrderID).Delete(&lineItemModel{}).Error; err != nil {
		return err
	}
	if len(order.Items) == 0 {
		return nil
	}
	rows := make([]lineItemModel, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, lineItemModel{
			OrderID:   order.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}
	return tx.Create(&rows).Error
}

func (r *Repository) insertOutbox(tx *gorm.DB, spec ports.OutboxSpec, order entities.Order) error {
	envelope, err := services.OrderPlacedEnvelope(spec.EventID, spec.SourceService, order)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return tx.Create(&outboxModel{
		OutboxID:  spec.OutboxID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: order.UpdatedAt,
	}).Error
}

func (r *Repository) FindActiveCart(ctx context.Context, owner string) (entities.Order, bool, error) {
	var row orderModel
	err := r.db.WithContext(ctx).
		Where("owner = ? AND status = ?", owner, string(entities.StatusPending)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}
	order, err := r.loadOrder(r.db.WithContext(ctx), row)
	if err != nil {
		return entities.Order{}, false, err
	}
	return order, true, nil
}

func (r *Repository) GetOrder(ctx context.Context, orderID string) (entities.Order, bool, error) {
	var row orderModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}
	order, err := r.loadOrder(r.db.WithContext(ctx), row)
	if err != nil {
		return entities.Order{}, false, err
	}
	return order, true, nil
}

func (r *Repository) ListOrdersByOwner(ctx context.Context, owner string) ([]entities.Order, error) {
	var rows []orderModel
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC, order_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return r.loadOrders(r.db.WithContext(ctx), rows)
}

func (r *Repository) ListAllOrders(ctx context.Context) ([]entities.Order, error) {
	var rows []orderModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, order_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return r.loadOrders(r.db.WithContext(ctx), rows)
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID string, status entities.Status, now time.Time) (entities.Order, error) {
	var result entities.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row orderModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrOrderNotFound
			}
			return err
		}

		update := tx.Model(&orderModel{}).
			Where("order_id = ?", orderID).
			Updates(map[string]any{
				"status":     string(status),
				"updated_at": now,
			})
		if update.Error != nil {
			return update.Error
		}

		row.Status = string(status)
		row.UpdatedAt = now
		order, loadErr := r.loadOrder(tx, row)
		if loadErr != nil {
			return loadErr
		}
		result = order
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	return result, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	messages := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, outbox.Message{
			ID:        row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			Status:    row.Status,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func (r *Repository) loadOrder(tx *gorm.DB, row orderModel) (entities.Order, error) {
	var itemRows []lineItemModel
	if err := tx.Where("order_id = ?", row.OrderID).Order("product_id ASC").Find(&itemRows).Error; err != nil {
		return entities.Order{}, err
	}
	return orderEntityFromModel(row, itemRows)
}

func (r *Repository) loadOrders(tx *gorm.DB, rows []orderModel) ([]entities.Order, error) {
	orders := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		order, err := r.loadOrder(tx, row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func orderModelFromEntity(order entities.Order) *orderModel {
	return &orderModel{
		OrderID:     order.OrderID,
		Owner:       order.Owner,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.StringFixed(2),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func orderEntityFromModel(row orderModel, itemRows []lineItemModel) (entities.Order, error) {
	total, err := decimal.NewFromString(row.TotalAmount)
	if err != nil {
		return entities.Order{}, err
	}
	items := make([]entities.LineItem, 0, len(itemRows))
	for _, itemRow := range itemRows {
		unitPrice, err := decimal.NewFromString(itemRow.UnitPrice)
		if err != nil {
			return entities.Order{}, err
		}
		items = append(items, entities.LineItem{
			ProductID: itemRow.ProductID,
			Quantity:  itemRow.Quantity,
			UnitPrice: unitPrice,
		})
	}
	return entities.Order{
		OrderID:     row.OrderID,
		Owner:       row.Owner,
		Status:      entities.Status(row.Status),
		TotalAmount: total,
		Items:       items,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
