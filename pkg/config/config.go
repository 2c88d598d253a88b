package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every variable read by envconfig.
	EnvPrefix = "TINDAHAN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "TINDAHAN_DB_DSN"
	EnvDBHost = "TINDAHAN_DB_HOST"
	EnvDBUser = "TINDAHAN_DB_USER"
	EnvDBName = "TINDAHAN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Session      SessionConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"TINDAHAN_APP_ENV" required:"true"`
	Port         string `envconfig:"TINDAHAN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TINDAHAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TINDAHAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TINDAHAN_DB_DSN"`
	Driver string `envconfig:"TINDAHAN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TINDAHAN_DB_HOST"`
	LegacyPort     int    `envconfig:"TINDAHAN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TINDAHAN_DB_USER"`
	LegacyPassword string `envconfig:"TINDAHAN_DB_PASSWORD"`
	LegacyName     string `envconfig:"TINDAHAN_DB_NAME"`
	LegacySSLMode  string `envconfig:"TINDAHAN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TINDAHAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TINDAHAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TINDAHAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TINDAHAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TINDAHAN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TINDAHAN_REDIS_ADDR"`
	Password     string        `envconfig:"TINDAHAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"TINDAHAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TINDAHAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TINDAHAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TINDAHAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TINDAHAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TINDAHAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TINDAHAN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TINDAHAN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TINDAHAN_JWT_EXPIRATION_MINUTES" default:"480"`
}

type SessionConfig struct {
	// CartTTL bounds how long an idle register session keeps its cart.
	CartTTLMinutes  int `envconfig:"TINDAHAN_SESSION_CART_TTL_MINUTES" default:"720"`
	TokenTTLMinutes int `envconfig:"TINDAHAN_SESSION_TOKEN_TTL_MINUTES" default:"720"`
}

// CartTTL returns the idle cart retention window.
func (s SessionConfig) CartTTL() time.Duration {
	if s.CartTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(s.CartTTLMinutes) * time.Minute
}

// TokenTTL returns the anti-replay token retention window.
func (s SessionConfig) TokenTTL() time.Duration {
	if s.TokenTTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TINDAHAN_AUTO_MIGRATE" default:"false"`
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
