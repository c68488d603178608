package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/niaga-platform/service-analytics/internal/models"
)

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(ctx context.Context, shopID uuid.UUID) error {
	return m.Called(ctx, shopID).Error(0)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upsert(ctx context.Context, order *models.AnalyticsOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func message(t *testing.T, subject string, event any) *nats.Msg {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return &nats.Msg{Subject: subject, Data: data}
}

func TestSubscriber_OrderCreated(t *testing.T) {
	inv := &mockInvalidator{}
	store := &mockStore{}
	s := NewSubscriber(nil, inv, store, nil)

	event := OrderEvent{
		OrderID:     uuid.New(),
		ShopID:      uuid.New(),
		Status:      "paid",
		Quantity:    2,
		GrossAmount: 1500,
		Attributes:  map[string]any{"shipping_fee": 40},
		PlacedAt:    time.Date(2023, 5, 21, 10, 0, 0, 0, time.UTC),
	}

	store.On("Upsert", mock.Anything, mock.MatchedBy(func(row *models.AnalyticsOrder) bool {
		return row.ID == event.OrderID &&
			row.ShopID == event.ShopID &&
			row.Quantity == 2 &&
			row.Currency == "INR" &&
			string(row.Attributes) == `{"shipping_fee":40}`
	})).Return(nil).Once()
	inv.On("Invalidate", mock.Anything, event.ShopID).Return(nil).Once()

	s.handleOrderEvent(message(t, SubjectOrderCreated, event))

	store.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestSubscriber_OrderCancelled(t *testing.T) {
	inv := &mockInvalidator{}
	store := &mockStore{}
	s := NewSubscriber(nil, inv, store, nil)

	event := OrderEvent{OrderID: uuid.New(), ShopID: uuid.New(), Status: "cancelled"}
	store.On("UpdateStatus", mock.Anything, event.OrderID, "cancelled").Return(nil).Once()
	inv.On("Invalidate", mock.Anything, event.ShopID).Return(nil).Once()

	s.handleOrderEvent(message(t, SubjectOrderCancelled, event))

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	inv.AssertExpectations(t)
}

func TestSubscriber_InvalidatesEvenWhenSyncFails(t *testing.T) {
	inv := &mockInvalidator{}
	store := &mockStore{}
	s := NewSubscriber(nil, inv, store, nil)

	event := OrderEvent{OrderID: uuid.New(), ShopID: uuid.New(), Status: "paid"}
	store.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	inv.On("Invalidate", mock.Anything, event.ShopID).Return(errors.New("redis down")).Once()

	s.handleOrderEvent(message(t, SubjectOrderUpdated, event))

	inv.AssertExpectations(t)
}

func TestSubscriber_WithoutStore(t *testing.T) {
	inv := &mockInvalidator{}
	s := NewSubscriber(nil, inv, nil, nil)

	shop := uuid.New()
	inv.On("Invalidate", mock.Anything, shop).Return(nil).Once()

	s.handleOrderEvent(message(t, SubjectOrderUpdated, OrderEvent{OrderID: uuid.New(), ShopID: shop}))

	inv.AssertExpectations(t)
}

func TestSubscriber_IgnoresBadMessages(t *testing.T) {
	inv := &mockInvalidator{}
	store := &mockStore{}
	s := NewSubscriber(nil, inv, store, nil)

	s.handleOrderEvent(&nats.Msg{Subject: SubjectOrderCreated, Data: []byte("{")})
	s.handleOrderEvent(message(t, SubjectOrderCreated, OrderEvent{OrderID: uuid.New()}))

	inv.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestOrderEvent_Model(t *testing.T) {
	event := OrderEvent{OrderID: uuid.New(), ShopID: uuid.New(), Currency: "MYR"}
	row, err := event.Model()
	require.NoError(t, err)
	assert.Equal(t, "MYR", row.Currency)
	assert.Empty(t, row.Attributes)
}
