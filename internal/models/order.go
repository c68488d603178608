package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsOrder is the analytics read model of an order, kept in sync from
// order events.
type AnalyticsOrder struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_analytics_orders_shop_placed,priority:1" json:"shop_id"`
	Status         string         `gorm:"size:32;not null" json:"status"`
	Quantity       int            `gorm:"not null;default:0" json:"quantity"`
	GrossAmount    float64        `gorm:"type:numeric(14,2);not null;default:0" json:"gross_amount"`
	DiscountAmount float64        `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	RefundedAmount float64        `gorm:"type:numeric(14,2);not null;default:0" json:"refunded_amount"`
	Currency       string         `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Attributes     datatypes.JSON `gorm:"type:jsonb" json:"attributes,omitempty"`
	PlacedAt       time.Time      `gorm:"not null;index:idx_analytics_orders_shop_placed,priority:2" json:"placed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName returns the table name.
func (AnalyticsOrder) TableName() string {
	return "analytics_orders"
}
