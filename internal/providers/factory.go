package providers

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnsupportedSource is returned for a source kind that is not configured.
var ErrUnsupportedSource = errors.New("unsupported order source")

// Source kinds.
const (
	SourceDatabase     = "database"
	SourceOrderService = "order_service"
)

// SourceFactory picks the order source the service reads from.
type SourceFactory struct {
	database     OrderSource
	orderService OrderSource
	logger       *zap.Logger
}

// FactoryConfig holds the available sources. Either may be nil.
type FactoryConfig struct {
	Database     OrderSource
	OrderService OrderSource
	Logger       *zap.Logger
}

// NewSourceFactory creates a new source factory.
func NewSourceFactory(cfg *FactoryConfig) *SourceFactory {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SourceFactory{
		database:     cfg.Database,
		orderService: cfg.OrderService,
		logger:       logger,
	}
}

// Create returns the source of the given kind.
func (f *SourceFactory) Create(kind string) (OrderSource, error) {
	var src OrderSource
	switch kind {
	case SourceDatabase, "":
		src = f.database
	case SourceOrderService:
		src = f.orderService
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, kind)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: %s is not configured", ErrUnsupportedSource, kind)
	}

	f.logger.Info("order source selected", zap.String("source", kind))
	return src, nil
}

// IsDatabaseConfigured returns true if the database source is available.
func (f *SourceFactory) IsDatabaseConfigured() bool {
	return f.database != nil
}

// IsOrderServiceConfigured returns true if the order service source is available.
func (f *SourceFactory) IsOrderServiceConfigured() bool {
	return f.orderService != nil
}
