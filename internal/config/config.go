package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone database for minimal images

	"github.com/spf13/viper"
)

// Data sources the chart can read orders from.
const (
	SourceDatabase     = "database"
	SourceOrderService = "order_service"
)

// Config holds all configuration for the analytics service
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Services  ServicesConfig  `mapstructure:"services"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Chart     ChartConfig     `mapstructure:"chart"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the host:port of the redis server.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// AppConfig holds application configuration
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// SentryConfig holds Sentry error tracking configuration
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
	Release     string `mapstructure:"release"`
}

// ServicesConfig holds URLs for other microservices
type ServicesConfig struct {
	OrderURL string `mapstructure:"order_url"`
}

// AnalyticsConfig controls where sales series come from and how they are cached.
type AnalyticsConfig struct {
	Source       string        `mapstructure:"source"`
	Timezone     string        `mapstructure:"timezone"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	DefaultColor string        `mapstructure:"default_color"`
}

// Location loads the timezone buckets are computed in.
func (a AnalyticsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid analytics timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

// ChartConfig holds the default rendered chart size.
type ChartConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	HTMLHeight string `mapstructure:"html_height"`
}

// CORSConfig holds the origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Automatically load environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("") // No prefix, read exact variable names

	// Bind specific environment variables
	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")

	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.ssl_mode", "DB_SSLMODE")

	_ = v.BindEnv("nats.url", "NATS_URL")

	// Redis
	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	_ = v.BindEnv("sentry.dsn", "SENTRY_DSN")
	_ = v.BindEnv("sentry.environment", "APP_ENV")
	_ = v.BindEnv("sentry.release", "APP_VERSION")

	// Services
	_ = v.BindEnv("services.order_url", "SERVICE_ORDER_URL")

	// Analytics
	_ = v.BindEnv("analytics.source", "ANALYTICS_SOURCE")
	_ = v.BindEnv("analytics.timezone", "ANALYTICS_TIMEZONE")
	_ = v.BindEnv("analytics.cache_ttl", "ANALYTICS_CACHE_TTL")
	_ = v.BindEnv("analytics.default_color", "ANALYTICS_DEFAULT_COLOR")

	// Chart
	_ = v.BindEnv("chart.width", "CHART_WIDTH")
	_ = v.BindEnv("chart.height", "CHART_HEIGHT")
	_ = v.BindEnv("chart.html_height", "CHART_HTML_HEIGHT")

	_ = v.BindEnv("cors.allowed_origins", "ALLOWED_ORIGINS")

	// Set defaults
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Analytics.Source {
	case SourceDatabase, SourceOrderService:
	default:
		return fmt.Errorf("invalid analytics source %q, expected %s or %s", c.Analytics.Source, SourceDatabase, SourceOrderService)
	}
	if _, err := c.Analytics.Location(); err != nil {
		return err
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "service-analytics")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8012")

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.ssl_mode", "disable")

	// NATS
	v.SetDefault("nats.url", "nats://localhost:4222")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Services
	v.SetDefault("services.order_url", "http://localhost:8005")

	// Analytics
	v.SetDefault("analytics.source", SourceDatabase)
	v.SetDefault("analytics.timezone", "Asia/Kolkata")
	v.SetDefault("analytics.cache_ttl", "5m")
	v.SetDefault("analytics.default_color", "#2563eb")

	// Chart
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 320)
	v.SetDefault("chart.html_height", "360px")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://localhost:3001,http://localhost:3002,http://localhost:3003")

	// Sentry
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.release", "1.0.0")
}
