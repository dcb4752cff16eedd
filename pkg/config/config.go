package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "slabtrack"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SLABTRACK_APP_ENV"
	EnvDBDSN  = "SLABTRACK_DB_DSN"
	EnvDBHost = "SLABTRACK_DB_HOST"
	EnvDBUser = "SLABTRACK_DB_USER"
	EnvDBName = "SLABTRACK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App            AppConfig
	DB             DBConfig
	Redis          RedisConfig
	JWT            JWTConfig
	WriteRateLimit WriteRateLimitConfig
	FeatureFlags   FeatureFlagsConfig
	GCP            GCPConfig
	PubSub         PubSubConfig
	Outbox         OutboxConfig
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
	Env          string `envconfig:"SLABTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"SLABTRACK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SLABTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SLABTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SLABTRACK_DB_DSN"`
	Driver string `envconfig:"SLABTRACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SLABTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"SLABTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SLABTRACK_DB_USER"`
	LegacyPassword string `envconfig:"SLABTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"SLABTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"SLABTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SLABTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SLABTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SLABTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SLABTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SLABTRACK_REDIS_URL"`
	Address      string        `envconfig:"SLABTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"SLABTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"SLABTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SLABTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SLABTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SLABTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SLABTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SLABTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SLABTRACK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SLABTRACK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SLABTRACK_JWT_EXPIRATION_MINUTES" default:"60"`
}

type WriteRateLimitConfig struct {
	Window  time.Duration `envconfig:"SLABTRACK_WRITE_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"SLABTRACK_WRITE_RATE_LIMIT_IP_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SLABTRACK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SLABTRACK_GCP_PROJECT_ID"`
	ApplicationCredentials string `envconfig:"SLABTRACK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic string `envconfig:"SLABTRACK_PUBSUB_DOMAIN_TOPIC" default:"slabtrack-domain-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"SLABTRACK_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"SLABTRACK_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"SLABTRACK_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// PollInterval returns the publisher poll cadence as a duration.
func (o OutboxConfig) PollInterval() time.Duration {
	if o.PollIntervalMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(o.PollIntervalMS) * time.Millisecond
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
