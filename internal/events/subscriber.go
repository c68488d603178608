package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/niaga-platform/service-analytics/internal/models"
	"github.com/niaga-platform/service-analytics/internal/providers"
)

// Event subjects
const (
	SubjectOrderCreated   = "order.created"
	SubjectOrderUpdated   = "order.updated"
	SubjectOrderCancelled = "order.cancelled"
)

const handleTimeout = 5 * time.Second

// OrderEvent is published by the order service whenever an order changes.
type OrderEvent struct {
	OrderID        uuid.UUID      `json:"order_id"`
	ShopID         uuid.UUID      `json:"shop_id"`
	Status         string         `json:"status"`
	Quantity       int            `json:"quantity"`
	GrossAmount    float64        `json:"gross_amount"`
	DiscountAmount float64        `json:"discount_amount"`
	RefundedAmount float64        `json:"refunded_amount"`
	Currency       string         `json:"currency,omitempty"`
	Attributes     map[string]any `json:"attributes,omitempty"`
	PlacedAt       time.Time      `json:"placed_at"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Model converts the event into a read model row.
func (e *OrderEvent) Model() (*models.AnalyticsOrder, error) {
	row := &models.AnalyticsOrder{
		ID:             e.OrderID,
		ShopID:         e.ShopID,
		Status:         e.Status,
		Quantity:       e.Quantity,
		GrossAmount:    e.GrossAmount,
		DiscountAmount: e.DiscountAmount,
		RefundedAmount: e.RefundedAmount,
		Currency:       e.Currency,
		PlacedAt:       e.PlacedAt,
	}
	if row.Currency == "" {
		row.Currency = "INR"
	}
	if len(e.Attributes) > 0 {
		attrs, err := json.Marshal(e.Attributes)
		if err != nil {
			return nil, fmt.Errorf("encode attributes: %w", err)
		}
		row.Attributes = datatypes.JSON(attrs)
	}
	return row, nil
}

// SeriesInvalidator drops the cached series of a shop.
type SeriesInvalidator interface {
	Invalidate(ctx context.Context, shopID uuid.UUID) error
}

// OrderStore keeps the analytics read model in sync.
type OrderStore interface {
	Upsert(ctx context.Context, order *models.AnalyticsOrder) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Subscriber handles NATS event subscriptions
type Subscriber struct {
	nc          *nats.Conn
	logger      *zap.Logger
	invalidator SeriesInvalidator
	store       OrderStore
	subs        []*nats.Subscription
}

// NewSubscriber creates a new NATS subscriber. store may be nil when the
// read model is owned by another service.
func NewSubscriber(nc *nats.Conn, invalidator SeriesInvalidator, store OrderStore, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{
		nc:          nc,
		logger:      logger,
		invalidator: invalidator,
		store:       store,
		subs:        make([]*nats.Subscription, 0),
	}
}

// Start subscribes to all order subjects
func (s *Subscriber) Start() error {
	for _, subject := range []string{SubjectOrderCreated, SubjectOrderUpdated, SubjectOrderCancelled} {
		sub, err := s.nc.Subscribe(subject, s.handleOrderEvent)
		if err != nil {
			s.Stop()
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
		s.logger.Info("Subscribed to event", zap.String("subject", subject))
	}

	s.logger.Info("NATS subscriber started with all subscriptions")
	return nil
}

// Stop unsubscribes from all events
func (s *Subscriber) Stop() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn("Failed to unsubscribe", zap.String("subject", sub.Subject), zap.Error(err))
		}
	}
	s.subs = s.subs[:0]
	s.logger.Info("NATS subscriber stopped")
}

// handleOrderEvent syncs the read model and invalidates the shop's series.
func (s *Subscriber) handleOrderEvent(msg *nats.Msg) {
	var event OrderEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Error("Failed to unmarshal order event", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}
	if event.ShopID == uuid.Nil {
		s.logger.Error("Order event without shop_id",
			zap.String("subject", msg.Subject),
			zap.String("order_id", event.OrderID.String()),
		)
		return
	}

	s.logger.Info("Received order event",
		zap.String("subject", msg.Subject),
		zap.String("order_id", event.OrderID.String()),
		zap.String("shop_id", event.ShopID.String()),
		zap.String("status", event.Status),
	)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if s.store != nil {
		if err := s.syncOrder(ctx, msg.Subject, &event); err != nil {
			s.logger.Error("Failed to sync order",
				zap.String("order_id", event.OrderID.String()),
				zap.Error(err),
			)
		}
	}

	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx, event.ShopID); err != nil {
		s.logger.Error("Failed to invalidate series cache",
			zap.String("shop_id", event.ShopID.String()),
			zap.Error(err),
		)
	}
}

func (s *Subscriber) syncOrder(ctx context.Context, subject string, event *OrderEvent) error {
	if event.OrderID == uuid.Nil {
		return fmt.Errorf("order event without order_id")
	}
	if subject == SubjectOrderCancelled {
		return s.store.UpdateStatus(ctx, event.OrderID, providers.StatusCancelled)
	}

	row, err := event.Model()
	if err != nil {
		return err
	}
	return s.store.Upsert(ctx, row)
}
