package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "USERMAP"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, docs).
const (
	EnvAppEnv         = "USERMAP_APP_ENV"
	EnvPort           = "USERMAP_APP_PORT"
	EnvRedisURL       = "USERMAP_REDIS_URL"
	EnvGatewayBaseURL = "USERMAP_GATEWAY_BASE_URL"
	EnvMapsBrowserKey = "USERMAP_GOOGLE_MAPS_BROWSER_KEY"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Gateway GatewayConfig
	Maps    MapsConfig
	Stream  StreamConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"USERMAP_APP_ENV" required:"true"`
	Port         string `envconfig:"USERMAP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"USERMAP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"USERMAP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RedisConfig points at the realtime record store: a hash of id to record
// JSON plus a pub/sub channel signalling changes.
type RedisConfig struct {
	URL          string        `envconfig:"USERMAP_REDIS_URL"`
	Address      string        `envconfig:"USERMAP_REDIS_ADDR"`
	Password     string        `envconfig:"USERMAP_REDIS_PASSWORD"`
	DB           int           `envconfig:"USERMAP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"USERMAP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"USERMAP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"USERMAP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"USERMAP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"USERMAP_REDIS_WRITE_TIMEOUT" default:"5s"`

	UsersKey      string `envconfig:"USERMAP_REDIS_USERS_KEY" default:"usermap:users"`
	ChangeChannel string `envconfig:"USERMAP_REDIS_CHANGE_CHANNEL" default:"usermap:users:changed"`
}

// GatewayConfig points at the external CRUD API user mutations are
// forwarded to.
type GatewayConfig struct {
	BaseURL string        `envconfig:"USERMAP_GATEWAY_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"USERMAP_GATEWAY_TIMEOUT" default:"10s"`
}

type MapsConfig struct {
	// BrowserKey is handed to the page for the Maps JS loader. Empty key
	// means the map surface never reports ready and renders nothing.
	BrowserKey string `envconfig:"USERMAP_GOOGLE_MAPS_BROWSER_KEY"`
}

type StreamConfig struct {
	ClientBuffer int `envconfig:"USERMAP_STREAM_CLIENT_BUFFER" default:"100"`
}
