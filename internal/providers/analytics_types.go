// Package providers defines where sales data comes from and how raw orders
// are bucketed into chart series.
package providers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

// ErrInvalidTimeFrame is returned for time frames no window is defined for.
var ErrInvalidTimeFrame = errors.New("invalid time frame")

// Order statuses that matter for bucketing.
const (
	StatusCancelled = "cancelled"
	StatusCanceled  = "canceled"
)

// Order is the slice of an order the analytics read model needs.
type Order struct {
	ID             uuid.UUID      `json:"id"`
	ShopID         uuid.UUID      `json:"shop_id"`
	Status         string         `json:"status"`
	Quantity       int            `json:"quantity"`
	GrossAmount    float64        `json:"gross_amount"`
	DiscountAmount float64        `json:"discount_amount"`
	RefundedAmount float64        `json:"refunded_amount"`
	PlacedAt       time.Time      `json:"placed_at"`
	Attributes     map[string]any `json:"attributes,omitempty"`
}

// Cancelled reports whether the order was cancelled and should not count.
func (o Order) Cancelled() bool {
	s := strings.ToLower(o.Status)
	return s == StatusCancelled || s == StatusCanceled
}

// NetRevenue is the amount kept after discounts and refunds.
func (o Order) NetRevenue() float64 {
	return o.GrossAmount - o.DiscountAmount - o.RefundedAmount
}

// SeriesQuery selects the series of one shop over one time frame.
type SeriesQuery struct {
	ShopID    uuid.UUID       `json:"shop_id"`
	TimeFrame chart.TimeFrame `json:"time_frame"`
	// Refresh bypasses the cache.
	Refresh bool `json:"refresh,omitempty"`
}

// OrderSource lists the orders of a shop placed in [start, end).
type OrderSource interface {
	ListOrders(ctx context.Context, shopID uuid.UUID, start, end time.Time) ([]Order, error)
}
