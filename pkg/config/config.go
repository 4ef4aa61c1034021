package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	RateLimit    RateLimitConfig
	Outbox       OutboxConfig
	Settlement   SettlementConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AGRISETU_APP_ENV" required:"true"`
	Port         string `envconfig:"AGRISETU_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AGRISETU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AGRISETU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AGRISETU_DB_DSN"`
	Driver string `envconfig:"AGRISETU_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AGRISETU_DB_HOST"`
	LegacyPort     int    `envconfig:"AGRISETU_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AGRISETU_DB_USER"`
	LegacyPassword string `envconfig:"AGRISETU_DB_PASSWORD"`
	LegacyName     string `envconfig:"AGRISETU_DB_NAME"`
	LegacySSLMode  string `envconfig:"AGRISETU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AGRISETU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AGRISETU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AGRISETU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AGRISETU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AGRISETU_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AGRISETU_REDIS_ADDR"`
	Password     string        `envconfig:"AGRISETU_REDIS_PASSWORD"`
	DB           int           `envconfig:"AGRISETU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AGRISETU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AGRISETU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AGRISETU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AGRISETU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AGRISETU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AGRISETU_AUTO_MIGRATE" default:"false"`
}

// RateLimitConfig throttles the API per client IP over a fixed window.
// A zero IP limit disables the limiter.
type RateLimitConfig struct {
	Window  time.Duration `envconfig:"AGRISETU_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"AGRISETU_RATE_LIMIT_IP_LIMIT" default:"120"`
}

// OutboxConfig tunes the relay that drains outbox_events to the bus.
type OutboxConfig struct {
	BatchSize    int           `envconfig:"AGRISETU_OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval time.Duration `envconfig:"AGRISETU_OUTBOX_POLL_INTERVAL" default:"500ms"`
}

// SettlementConfig identifies the reserved platform wallet that collects
// commission. It is an ordinary wallet row, not a magic sentinel.
type SettlementConfig struct {
	PlatformAccountID string `envconfig:"AGRISETU_PLATFORM_ACCOUNT_ID" required:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
