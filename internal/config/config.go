package config

import (
	"github.com/maxviazov/egretwind/internal/logger"
)

// Config is the full runtime configuration, loaded from YAML and APP_* env.
type Config struct {
	App        AppConfig           `mapstructure:"app"`
	HTTP       HTTPConfig          `mapstructure:"http"`
	Logger     logger.LoggerConfig `mapstructure:"logger"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Redis      RedisConfig         `mapstructure:"redis"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
}

// HTTPConfig tunes the server and its middleware. Durations are seconds.
type HTTPConfig struct {
	ReadTimeout     int      `mapstructure:"read_timeout" validate:"min=1"`
	WriteTimeout    int      `mapstructure:"write_timeout" validate:"min=1"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout" validate:"min=1"`
	RequestTimeout  int      `mapstructure:"request_timeout" validate:"min=1"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	// RateLimit is the sustained requests per second allowed per client; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" validate:"min=0"`
	RateBurst int     `mapstructure:"rate_burst" validate:"min=0"`
}

// PostgresConfig holds connection and pool settings. Credentials come from env only.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=1"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// RedisConfig configures the optional article view cache.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	PoolSize int    `mapstructure:"pool_size" validate:"min=0"`
	TTL      int    `mapstructure:"ttl" validate:"min=1"`
	Prefix   string `mapstructure:"prefix"`
}

type PaginationConfig struct {
	MaxPageSize int `mapstructure:"max_page_size" validate:"min=1"`
}
