package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/niaga-platform/service-analytics/internal/chart"
	"github.com/niaga-platform/service-analytics/internal/middleware"
	"github.com/niaga-platform/service-analytics/internal/providers"
	"github.com/niaga-platform/service-analytics/internal/render"
	"github.com/niaga-platform/service-analytics/internal/services"
)

const (
	defaultTimeFrame = chart.SevenDays
	defaultMetric    = chart.Amount
	maxDimension     = 4000
)

// ChartService is the part of services.ChartService the handler uses.
type ChartService interface {
	Config(ctx context.Context, q providers.SeriesQuery, metric chart.MetricKey, color string) (chart.Config, error)
	Render(ctx context.Context, cfg chart.Config, format render.Format, opts render.Options) ([]byte, error)
	Tooltip(ctx context.Context, q providers.SeriesQuery, metric chart.MetricKey, index int) (chart.HoverState, error)
}

// ChartHandler serves the sales over time chart.
type ChartHandler struct {
	service ChartService
	logger  *zap.Logger
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service ChartService, logger *zap.Logger) *ChartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartHandler{
		service: service,
		logger:  logger,
	}
}

// RenderRequest is the body of a render call on caller-supplied data.
type RenderRequest struct {
	Data      []chart.TimeSeriesPoint `json:"data"`
	DataKey   chart.MetricKey         `json:"data_key"`
	Color     string                  `json:"color"`
	TimeFrame chart.TimeFrame         `json:"time_frame"`
	Format    string                  `json:"format"`
	Width     int                     `json:"width"`
	Height    int                     `json:"height"`
}

// TooltipResponse is the tooltip of the hovered point.
type TooltipResponse struct {
	Label      string `json:"label"`
	ValueLabel string `json:"value_label"`
	Value      string `json:"value"`
	Text       string `json:"text"`
}

// GetSalesChart renders a shop's sales over time chart
// @Summary Get sales over time chart
// @Tags Analytics
// @Param shop_id query string false "Shop ID (defaults to the token's shop)"
// @Param time_frame query string false "today, 7days or 30days"
// @Param metric query string false "units, amount, revenue, orders or an extra field"
// @Param color query string false "Line color"
// @Param format query string false "json, png, svg, html or xlsx"
// @Param refresh query bool false "Force refresh (bypass cache)"
// @Success 200
// @Success 204 "No data"
// @Router /admin/analytics/sales-chart [get]
func (h *ChartHandler) GetSalesChart(c *gin.Context) {
	q, ok := h.seriesQuery(c)
	if !ok {
		return
	}
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts, ok := sizeOptions(c, c.Query("width"), c.Query("height"))
	if !ok {
		return
	}

	cfg, err := h.service.Config(c.Request.Context(), q, metricParam(c), c.Query("color"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.render(c, cfg, format, opts)
}

// RenderChart renders caller-supplied series data
// @Summary Render a sales chart from supplied data
// @Tags Analytics
// @Accept json
// @Param request body RenderRequest true "Chart data"
// @Success 200
// @Success 204 "No data"
// @Router /admin/analytics/sales-chart/render [post]
func (h *ChartHandler) RenderChart(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.DataKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data_key is required"})
		return
	}
	format, err := render.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDimension(req.Width) || !validDimension(req.Height) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("width and height must be between 0 and %d", maxDimension)})
		return
	}

	cfg := chart.Config{
		Data:      req.Data,
		DataKey:   req.DataKey,
		Color:     req.Color,
		TimeFrame: req.TimeFrame,
	}
	h.render(c, cfg, format, render.Options{Width: req.Width, Height: req.Height})
}

// GetTooltip returns the tooltip of one point of a shop's chart
// @Summary Get the tooltip of a hovered point
// @Tags Analytics
// @Param index query int false "Hovered point index"
// @Success 200 {object} TooltipResponse
// @Success 204 "Nothing hovered"
// @Router /admin/analytics/sales-chart/tooltip [get]
func (h *ChartHandler) GetTooltip(c *gin.Context) {
	q, ok := h.seriesQuery(c)
	if !ok {
		return
	}

	raw := c.Query("index")
	if raw == "" {
		c.Status(http.StatusNoContent)
		return
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}

	state, err := h.service.Tooltip(c.Request.Context(), q, metricParam(c), index)
	if err != nil {
		h.writeError(c, err)
		return
	}

	tip, ok := chart.FormatTooltip(state)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, TooltipResponse{
		Label:      tip.Label,
		ValueLabel: tip.ValueLabel,
		Value:      tip.Value,
		Text:       tip.Text(),
	})
}

func (h *ChartHandler) render(c *gin.Context, cfg chart.Config, format render.Format, opts render.Options) {
	out, err := h.service.Render(c.Request.Context(), cfg, format, opts)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if format == render.FormatXLSX {
		filename := "sales-chart"
		if cfg.TimeFrame != "" {
			filename += "-" + cfg.TimeFrame.String()
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+"."+format.Extension()))
	}
	c.Data(http.StatusOK, format.ContentType(), out)
}

// seriesQuery reads the shop and time frame. The shop comes from the
// token when it carries one, otherwise from the shop_id query parameter.
func (h *ChartHandler) seriesQuery(c *gin.Context) (providers.SeriesQuery, bool) {
	shopID, ok := shopIDFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing shop_id"})
		return providers.SeriesQuery{}, false
	}

	tf := chart.TimeFrame(c.DefaultQuery("time_frame", defaultTimeFrame.String()))
	if !tf.Known() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time_frame, expected today, 7days or 30days"})
		return providers.SeriesQuery{}, false
	}

	return providers.SeriesQuery{
		ShopID:    shopID,
		TimeFrame: tf,
		Refresh:   c.Query("refresh") == "true",
	}, true
}

func (h *ChartHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chart.ErrNoData):
		c.Status(http.StatusNoContent)
	case errors.Is(err, providers.ErrInvalidTimeFrame), errors.Is(err, render.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSourceUnavailable):
		h.logger.Error("sales data unavailable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Sales data is temporarily unavailable"})
	default:
		h.logger.Error("failed to build sales chart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales chart"})
	}
}

func shopIDFrom(c *gin.Context) (uuid.UUID, bool) {
	if id, ok := middleware.ShopID(c); ok {
		return id, true
	}
	id, err := uuid.Parse(c.Query("shop_id"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func metricParam(c *gin.Context) chart.MetricKey {
	if m := strings.TrimSpace(c.Query("metric")); m != "" {
		return chart.MetricKey(m)
	}
	return defaultMetric
}

func sizeOptions(c *gin.Context, width, height string) (render.Options, bool) {
	var opts render.Options
	for _, dim := range []struct {
		name string
		raw  string
		dst  *int
	}{
		{"width", width, &opts.Width},
		{"height", height, &opts.Height},
	} {
		if dim.raw == "" {
			continue
		}
		v, err := strconv.Atoi(dim.raw)
		if err != nil || !validDimension(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", dim.name)})
			return render.Options{}, false
		}
		*dim.dst = v
	}
	return opts, true
}

func validDimension(v int) bool {
	return v >= 0 && v <= maxDimension
}
