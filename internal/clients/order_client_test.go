package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niaga-platform/service-analytics/internal/providers"
)

func fastRetry() *RetryPolicy {
	return DefaultRetryPolicy().WithInitialDelay(time.Millisecond).WithJitter(0)
}

func writePage(t *testing.T, w http.ResponseWriter, page, totalPages int, orders []providers.Order) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    orders,
		"pagination": map[string]int{
			"page":        page,
			"page_size":   len(orders),
			"total_pages": totalPages,
		},
	}))
}

func TestOrderClient_ListOrders_Paginates(t *testing.T) {
	shopID := uuid.New()
	start := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/internal/orders", r.URL.Path)
		assert.Equal(t, shopID.String(), r.URL.Query().Get("shop_id"))
		assert.Equal(t, "2023-05-15T00:00:00Z", r.URL.Query().Get("from"))
		assert.Equal(t, "2023-05-22T00:00:00Z", r.URL.Query().Get("to"))
		assert.Equal(t, "2", r.URL.Query().Get("page_size"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		switch page {
		case 1:
			writePage(t, w, 1, 2, []providers.Order{
				{ID: uuid.New(), Quantity: 1, GrossAmount: 100, PlacedAt: start},
				{ID: uuid.New(), Quantity: 2, GrossAmount: 200, PlacedAt: start},
			})
		case 2:
			writePage(t, w, 2, 2, []providers.Order{
				{ID: uuid.New(), Quantity: 3, GrossAmount: 300, PlacedAt: start, Status: "cancelled"},
			})
		default:
			t.Errorf("unexpected page %d", page)
		}
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, nil, WithPageSize(2), WithRetryPolicy(fastRetry()))
	orders, err := c.ListOrders(context.Background(), shopID, start, end)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, 300.0, orders[2].GrossAmount)
	assert.True(t, orders[2].Cancelled())
}

func TestOrderClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		writePage(t, w, 1, 1, []providers.Order{{ID: uuid.New(), Quantity: 1}})
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, nil, WithRetryPolicy(fastRetry()))
	orders, err := c.ListOrders(context.Background(), uuid.New(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestOrderClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "no such shop", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, nil, WithRetryPolicy(fastRetry()))
	_, err := c.ListOrders(context.Background(), uuid.New(), time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOrderClient_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, nil, WithRetryPolicy(fastRetry().WithMaxAttempts(2)))
	_, err := c.ListOrders(context.Background(), uuid.New(), time.Now().Add(-time.Hour), time.Now())
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOrderClient_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(t, w, 1, 0, nil)
	}))
	defer srv.Close()

	orders, err := NewOrderClient(srv.URL, nil).ListOrders(context.Background(), uuid.New(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
