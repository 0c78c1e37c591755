package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	ConnectRate ConnectRateLimitConfig
	Features    FeaturesConfig
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
	Env          string `envconfig:"ECOM_APP_ENV" required:"true"`
	Port         string `envconfig:"ECOM_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"ECOM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECOM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ECOM_DB_DSN"`
	Driver string `envconfig:"ECOM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ECOM_DB_HOST"`
	LegacyPort     int    `envconfig:"ECOM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ECOM_DB_USER"`
	LegacyPassword string `envconfig:"ECOM_DB_PASSWORD"`
	LegacyName     string `envconfig:"ECOM_DB_NAME"`
	LegacySSLMode  string `envconfig:"ECOM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ECOM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ECOM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ECOM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ECOM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"ECOM_REDIS_URL"`
	Address      string        `envconfig:"ECOM_REDIS_ADDR"`
	Password     string        `envconfig:"ECOM_REDIS_PASSWORD"`
	DB           int           `envconfig:"ECOM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ECOM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ECOM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ECOM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ECOM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ECOM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The rate
// limiter is skipped entirely when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret          string `envconfig:"ECOM_JWT_SECRET" required:"true"`
	Issuer          string `envconfig:"ECOM_JWT_ISSUER" default:"cryptocart"`
	ExpirationHours int    `envconfig:"ECOM_JWT_EXPIRATION_HOURS" default:"168"`
}

// TokenTTL returns the configured credential lifetime (default 7 days).
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationHours <= 0 {
		return 168 * time.Hour
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

type ConnectRateLimitConfig struct {
	Window      time.Duration `envconfig:"ECOM_CONNECT_RATE_LIMIT_WINDOW" default:"1m"`
	WalletLimit int           `envconfig:"ECOM_CONNECT_RATE_LIMIT_WALLET_LIMIT" default:"10"`
	IPLimit     int           `envconfig:"ECOM_CONNECT_RATE_LIMIT_IP_LIMIT" default:"30"`
}

type FeaturesConfig struct {
	AutoMigrate bool `envconfig:"ECOM_AUTO_MIGRATE" default:"false"`

	// StrictErrors switches the gateway from the legacy undifferentiated 500
	// surface to precise 403/409/503 mappings.
	StrictErrors bool `envconfig:"ECOM_STRICT_ERRORS" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:cryptocart.db?cache=shared"
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
