package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/catalog-pricing/pkg/enums"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
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
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOG_PRICING_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOG_PRICING_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CATALOG_PRICING_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOG_PRICING_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CATALOG_PRICING_DB_DSN"`
	Driver string `envconfig:"CATALOG_PRICING_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CATALOG_PRICING_DB_HOST"`
	LegacyPort     int    `envconfig:"CATALOG_PRICING_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CATALOG_PRICING_DB_USER"`
	LegacyPassword string `envconfig:"CATALOG_PRICING_DB_PASSWORD"`
	LegacyName     string `envconfig:"CATALOG_PRICING_DB_NAME"`
	LegacySSLMode  string `envconfig:"CATALOG_PRICING_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CATALOG_PRICING_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOG_PRICING_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOG_PRICING_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOG_PRICING_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite dialector is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

// RedisConfig is optional. Leaving both URL and Address empty disables the
// snapshot cache.
type RedisConfig struct {
	URL          string        `envconfig:"CATALOG_PRICING_REDIS_URL"`
	Address      string        `envconfig:"CATALOG_PRICING_REDIS_ADDR"`
	Password     string        `envconfig:"CATALOG_PRICING_REDIS_PASSWORD"`
	DB           int           `envconfig:"CATALOG_PRICING_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CATALOG_PRICING_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CATALOG_PRICING_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CATALOG_PRICING_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CATALOG_PRICING_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CATALOG_PRICING_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type PricingConfig struct {
	ShippingTierPolicy string        `envconfig:"CATALOG_PRICING_SHIPPING_TIER_POLICY" default:"legacy"`
	SnapshotCacheTTL   time.Duration `envconfig:"CATALOG_PRICING_SNAPSHOT_CACHE_TTL" default:"5m"`
	MaxLineQuantity    int           `envconfig:"CATALOG_PRICING_MAX_LINE_QUANTITY" default:"10000"`
}

// Policy returns the parsed shipping tier policy.
func (p PricingConfig) Policy() enums.ShippingTierPolicy {
	policy, err := enums.ParseShippingTierPolicy(p.ShippingTierPolicy)
	if err != nil {
		return enums.ShippingTierPolicyLegacy
	}
	return policy
}

func (p PricingConfig) validate() error {
	if _, err := enums.ParseShippingTierPolicy(p.ShippingTierPolicy); err != nil {
		return fmt.Errorf("%s: %w", EnvShippingTierPolicy, err)
	}
	if p.MaxLineQuantity <= 0 {
		return fmt.Errorf("%s must be positive", EnvMaxLineQuantity)
	}
	if p.SnapshotCacheTTL < 0 {
		return fmt.Errorf("%s must not be negative", EnvSnapshotCacheTTL)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool `envconfig:"CATALOG_PRICING_AUTO_MIGRATE" default:"false"`
	SnapshotCache bool `envconfig:"CATALOG_PRICING_SNAPSHOT_CACHE" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the %s driver", EnvDBDSN, DBDriverSQLite)
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
