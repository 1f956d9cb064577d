package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "DINNERTIME"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv    = "DINNERTIME_APP_ENV"
	EnvPort      = "DINNERTIME_APP_PORT"
	EnvDBDSN     = "DINNERTIME_DB_DSN"
	EnvRedisURL  = "DINNERTIME_REDIS_URL"
	EnvJWTSecret = "DINNERTIME_JWT_SECRET"
	EnvJWTIssuer = "DINNERTIME_JWT_ISSUER"
	EnvJWTExp    = "DINNERTIME_JWT_EXPIRATION_MINUTES"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Bootstrap     BootstrapConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"DINNERTIME_APP_ENV" required:"true"`
	Port         string `envconfig:"DINNERTIME_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DINNERTIME_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DINNERTIME_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"DINNERTIME_DB_DSN"`

	Host     string `envconfig:"DINNERTIME_DB_HOST"`
	Port     int    `envconfig:"DINNERTIME_DB_PORT" default:"5432"`
	User     string `envconfig:"DINNERTIME_DB_USER"`
	Password string `envconfig:"DINNERTIME_DB_PASSWORD"`
	Name     string `envconfig:"DINNERTIME_DB_NAME"`
	SSLMode  string `envconfig:"DINNERTIME_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DINNERTIME_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DINNERTIME_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DINNERTIME_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DINNERTIME_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Host == "" || db.User == "" || db.Name == "" {
		return fmt.Errorf("either %s or DINNERTIME_DB_HOST/USER/NAME must be set", EnvDBDSN)
	}
	db.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"DINNERTIME_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DINNERTIME_REDIS_ADDR"`
	Password     string        `envconfig:"DINNERTIME_REDIS_PASSWORD"`
	DB           int           `envconfig:"DINNERTIME_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DINNERTIME_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DINNERTIME_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DINNERTIME_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DINNERTIME_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DINNERTIME_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"DINNERTIME_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"DINNERTIME_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"DINNERTIME_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"DINNERTIME_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DINNERTIME_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DINNERTIME_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DINNERTIME_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DINNERTIME_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DINNERTIME_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"DINNERTIME_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"DINNERTIME_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"DINNERTIME_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"DINNERTIME_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"DINNERTIME_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"DINNERTIME_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// BootstrapConfig controls the optional startup seeding of the admin account.
type BootstrapConfig struct {
	InitAdmin     bool   `envconfig:"DINNERTIME_INIT_ADMIN" default:"false"`
	AdminUsername string `envconfig:"DINNERTIME_ADMIN_USERNAME" default:"admin"`
	AdminEmail    string `envconfig:"DINNERTIME_ADMIN_EMAIL" default:"admin@familydinnertime.com"`
	AdminPassword string `envconfig:"DINNERTIME_ADMIN_PASSWORD" default:"admin123"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DINNERTIME_AUTO_MIGRATE" default:"false"`
}
