package config

const EnvPrefix = "CATALOG_PRICING"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv       = "CATALOG_PRICING_APP_ENV"
	EnvPort         = "CATALOG_PRICING_APP_PORT"
	EnvLogLevel     = "CATALOG_PRICING_LOG_LEVEL"
	EnvLogWarnStack = "CATALOG_PRICING_LOG_WARN_STACK"

	EnvDBDSN      = "CATALOG_PRICING_DB_DSN"
	EnvDBDriver   = "CATALOG_PRICING_DB_DRIVER"
	EnvDBHost     = "CATALOG_PRICING_DB_HOST"
	EnvDBPort     = "CATALOG_PRICING_DB_PORT"
	EnvDBUser     = "CATALOG_PRICING_DB_USER"
	EnvDBPassword = "CATALOG_PRICING_DB_PASSWORD"
	EnvDBName     = "CATALOG_PRICING_DB_NAME"

	EnvRedisURL  = "CATALOG_PRICING_REDIS_URL"
	EnvRedisAddr = "CATALOG_PRICING_REDIS_ADDR"

	EnvShippingTierPolicy = "CATALOG_PRICING_SHIPPING_TIER_POLICY"
	EnvSnapshotCacheTTL   = "CATALOG_PRICING_SNAPSHOT_CACHE_TTL"
	EnvMaxLineQuantity    = "CATALOG_PRICING_MAX_LINE_QUANTITY"

	EnvAutoMigrate   = "CATALOG_PRICING_AUTO_MIGRATE"
	EnvSnapshotCache = "CATALOG_PRICING_SNAPSHOT_CACHE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
