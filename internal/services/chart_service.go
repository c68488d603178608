package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/niaga-platform/service-analytics/internal/chart"
	"github.com/niaga-platform/service-analytics/internal/providers"
	"github.com/niaga-platform/service-analytics/internal/render"
)

// ErrSourceUnavailable wraps failures of the order source.
var ErrSourceUnavailable = errors.New("order source unavailable")

// SeriesStore caches series per shop, time frame and bucket day.
type SeriesStore interface {
	Get(ctx context.Context, shopID uuid.UUID, tf chart.TimeFrame, bucketDay string) (*CachedSeries, error)
	Set(ctx context.Context, shopID uuid.UUID, tf chart.TimeFrame, bucketDay string, points []chart.TimeSeriesPoint) error
}

// ChartService turns orders into sales charts.
type ChartService struct {
	source       providers.OrderSource
	cache        SeriesStore
	location     *time.Location
	defaultColor string
	options      render.Options
	now          func() time.Time
	logger       *zap.Logger
}

// ChartServiceConfig holds configuration
type ChartServiceConfig struct {
	Location     *time.Location
	DefaultColor string
	Options      render.Options
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewChartService creates a new ChartService. cache may be nil.
func NewChartService(source providers.OrderSource, cache SeriesStore, cfg *ChartServiceConfig, logger *zap.Logger) *ChartService {
	if cfg == nil {
		cfg = &ChartServiceConfig{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ChartService{
		source:       source,
		cache:        cache,
		location:     cfg.Location,
		defaultColor: cfg.DefaultColor,
		options:      cfg.Options,
		now:          cfg.Now,
		logger:       logger,
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.defaultColor == "" {
		s.defaultColor = chart.DefaultColor
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Series returns the bucketed series for q, from the cache when possible.
func (s *ChartService) Series(ctx context.Context, q providers.SeriesQuery) ([]chart.TimeSeriesPoint, error) {
	now := s.now().In(s.location)
	w, err := providers.NewWindow(q.TimeFrame, now, s.location)
	if err != nil {
		return nil, err
	}
	bucketDay := now.Format("2006-01-02")

	if s.cache != nil && !q.Refresh {
		cached, err := s.cache.Get(ctx, q.ShopID, q.TimeFrame, bucketDay)
		if err == nil && cached != nil {
			return cached.Points, nil
		}
	}

	orders, err := s.source.ListOrders(ctx, q.ShopID, w.Start, w.End)
	if err != nil {
		s.logger.Error("Failed to list orders",
			zap.String("shop_id", q.ShopID.String()),
			zap.String("time_frame", q.TimeFrame.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	points := w.Bucketize(orders)

	if s.cache != nil {
		if err := s.cache.Set(ctx, q.ShopID, q.TimeFrame, bucketDay, points); err != nil {
			s.logger.Warn("Failed to cache series", zap.String("shop_id", q.ShopID.String()), zap.Error(err))
		}
	}
	return points, nil
}

// Config returns the chart configuration for a shop's series.
func (s *ChartService) Config(ctx context.Context, q providers.SeriesQuery, metric chart.MetricKey, color string) (chart.Config, error) {
	points, err := s.Series(ctx, q)
	if err != nil {
		return chart.Config{}, err
	}
	return chart.Config{
		Data:      points,
		DataKey:   metric,
		Color:     color,
		TimeFrame: q.TimeFrame,
	}, nil
}

// Build builds the chart model for cfg, filling in the default color.
// It returns nil when there is nothing to draw.
func (s *ChartService) Build(cfg chart.Config) *chart.LineChart {
	if cfg.Color == "" {
		cfg.Color = s.defaultColor
	}
	return chart.Build(cfg)
}

// Render draws cfg in the given format. It returns chart.ErrNoData when there
// is nothing to draw.
func (s *ChartService) Render(ctx context.Context, cfg chart.Config, format render.Format, opts render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := s.Build(cfg)
	if c == nil {
		return nil, chart.ErrNoData
	}

	r, err := render.For(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, c, s.withDefaults(opts)); err != nil {
		s.logger.Error("Failed to render chart", zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

// Tooltip returns the hover state of the point at index on a shop's chart.
func (s *ChartService) Tooltip(ctx context.Context, q providers.SeriesQuery, metric chart.MetricKey, index int) (chart.HoverState, error) {
	cfg, err := s.Config(ctx, q, metric, "")
	if err != nil {
		return nil, err
	}
	return s.Build(cfg).Hover(index), nil
}

func (s *ChartService) withDefaults(opts render.Options) render.Options {
	if opts.Width <= 0 {
		opts.Width = s.options.Width
	}
	if opts.Height <= 0 {
		opts.Height = s.options.Height
	}
	if opts.HTMLHeight == "" {
		opts.HTMLHeight = s.options.HTMLHeight
	}
	return opts
}
