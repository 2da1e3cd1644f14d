package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	Scan          ScanConfig
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
	Env          string `envconfig:"CORNEYE_APP_ENV" required:"true"`
	Port         string `envconfig:"CORNEYE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CORNEYE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CORNEYE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CORNEYE_DB_DSN"`
	Driver string `envconfig:"CORNEYE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CORNEYE_DB_HOST"`
	LegacyPort     int    `envconfig:"CORNEYE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CORNEYE_DB_USER"`
	LegacyPassword string `envconfig:"CORNEYE_DB_PASSWORD"`
	LegacyName     string `envconfig:"CORNEYE_DB_NAME"`
	LegacySSLMode  string `envconfig:"CORNEYE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CORNEYE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CORNEYE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CORNEYE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CORNEYE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CORNEYE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CORNEYE_REDIS_ADDR"`
	Password     string        `envconfig:"CORNEYE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CORNEYE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CORNEYE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CORNEYE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CORNEYE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CORNEYE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CORNEYE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CORNEYE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CORNEYE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CORNEYE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CORNEYE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CORNEYE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CORNEYE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CORNEYE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CORNEYE_ARGON_KEY_LEN" default:"32"`
}

// SessionConfig controls the server-side session records kept in Redis.
// TTLMinutes of zero means sessions never expire on their own; they live
// until the next login overwrites them or a logout clears them, matching
// the app's observed lifecycle.
type SessionConfig struct {
	TTLMinutes int `envconfig:"CORNEYE_SESSION_TTL_MINUTES" default:"0"`
}

func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CORNEYE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CORNEYE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CORNEYE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"CORNEYE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"CORNEYE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"CORNEYE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// ScanConfig tunes the leaf analysis stub.
type ScanConfig struct {
	DetectorSeed int64 `envconfig:"CORNEYE_SCAN_DETECTOR_SEED" default:"0"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CORNEYE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CORNEYE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DriverSQLite {
		db.DSN = "file::memory:?cache=shared"
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
