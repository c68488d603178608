package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/niaga-platform/service-analytics/internal/models"
	"github.com/niaga-platform/service-analytics/internal/providers"
)

// OrderRepository reads and writes the analytics order read model.
type OrderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *gorm.DB, logger *zap.Logger) *OrderRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderRepository{db: db, logger: logger}
}

// ListOrders returns the orders of a shop placed in [start, end), oldest first.
func (r *OrderRepository) ListOrders(ctx context.Context, shopID uuid.UUID, start, end time.Time) ([]providers.Order, error) {
	var rows []models.AnalyticsOrder
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND placed_at >= ? AND placed_at < ?", shopID, start, end).
		Order("placed_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]providers.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, r.toOrder(&rows[i]))
	}
	return orders, nil
}

// Upsert stores an order, replacing an existing row with the same ID.
func (r *OrderRepository) Upsert(ctx context.Context, order *models.AnalyticsOrder) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(order).Error
	if err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (r *OrderRepository) toOrder(row *models.AnalyticsOrder) providers.Order {
	order, err := ToOrder(row)
	if err != nil {
		r.logger.Warn("Ignoring malformed order attributes",
			zap.String("order_id", row.ID.String()),
			zap.Error(err),
		)
	}
	return order
}

// ToOrder converts a stored row into a providers.Order. Attributes that fail
// to decode are dropped and the error is returned with the otherwise complete
// order.
func ToOrder(row *models.AnalyticsOrder) (providers.Order, error) {
	order := providers.Order{
		ID:             row.ID,
		ShopID:         row.ShopID,
		Status:         row.Status,
		Quantity:       row.Quantity,
		GrossAmount:    row.GrossAmount,
		DiscountAmount: row.DiscountAmount,
		RefundedAmount: row.RefundedAmount,
		PlacedAt:       row.PlacedAt,
	}
	if len(row.Attributes) == 0 {
		return order, nil
	}

	var attrs map[string]any
	if err := json.Unmarshal(row.Attributes, &attrs); err != nil {
		return order, fmt.Errorf("decode attributes: %w", err)
	}
	order.Attributes = attrs
	return order, nil
}
