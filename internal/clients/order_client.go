package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/niaga-platform/service-analytics/internal/providers"
)

const defaultPageSize = 500

// OrderClient reads orders from service-order.
type OrderClient struct {
	baseURL     string
	httpClient  *http.Client
	retryPolicy *RetryPolicy
	rateLimiter *RateLimiter
	pageSize    int
	logger      *zap.Logger
}

// OrderClientOption configures an OrderClient.
type OrderClientOption func(*OrderClient)

// WithRetryPolicy sets the retry policy.
func WithRetryPolicy(p *RetryPolicy) OrderClientOption {
	return func(c *OrderClient) {
		c.retryPolicy = p
	}
}

// WithRateLimiter sets the per-shop rate limiter. A nil limiter disables
// rate limiting.
func WithRateLimiter(rl *RateLimiter) OrderClientOption {
	return func(c *OrderClient) {
		c.rateLimiter = rl
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) OrderClientOption {
	return func(c *OrderClient) {
		c.httpClient = hc
	}
}

// WithPageSize sets how many orders are requested per page.
func WithPageSize(n int) OrderClientOption {
	return func(c *OrderClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewOrderClient creates a new OrderClient
func NewOrderClient(baseURL string, logger *zap.Logger, opts ...OrderClientOption) *OrderClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &OrderClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryPolicy: DefaultRetryPolicy(),
		rateLimiter: NewRateLimiter(DefaultRateLimitConfig()),
		pageSize:    defaultPageSize,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Internal endpoints return {success, message, data, pagination}.
type orderPage struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       []providers.Order `json:"data"`
	Pagination pagination        `json:"pagination"`
}

// ListOrders fetches every order of the shop placed in [start, end), following
// pagination until the last page.
func (c *OrderClient) ListOrders(ctx context.Context, shopID uuid.UUID, start, end time.Time) ([]providers.Order, error) {
	var orders []providers.Order

	for page := 1; ; page++ {
		var result orderPage
		retry := NewExecutor(c.retryPolicy).Execute(ctx, func() error {
			var err error
			result, err = c.fetchPage(ctx, shopID, start, end, page)
			return err
		})
		if retry.LastError != nil {
			c.logger.Error("Failed to fetch orders",
				zap.String("shop_id", shopID.String()),
				zap.Int("page", page),
				zap.Int("attempts", retry.Attempts),
				zap.Error(retry.LastError),
			)
			return nil, retry.LastError
		}

		orders = append(orders, result.Data...)
		if len(result.Data) == 0 || page >= result.Pagination.TotalPages {
			break
		}
	}

	c.logger.Debug("Fetched orders from service-order",
		zap.String("shop_id", shopID.String()),
		zap.Int("count", len(orders)),
	)
	return orders, nil
}

func (c *OrderClient) fetchPage(ctx context.Context, shopID uuid.UUID, start, end time.Time, page int) (orderPage, error) {
	q := url.Values{}
	q.Set("shop_id", shopID.String())
	q.Set("from", start.UTC().Format(time.RFC3339))
	q.Set("to", end.UTC().Format(time.RFC3339))
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(c.pageSize))
	endpoint := fmt.Sprintf("%s/api/v1/internal/orders?%s", c.baseURL, q.Encode())

	var result orderPage
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx, shopID); err != nil {
			return result, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return result, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return result, &StatusError{Service: "service-order", StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}
