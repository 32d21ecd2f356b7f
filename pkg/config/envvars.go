package config

// EnvPrefix is passed to envconfig; the struct tags already carry the full
// RFQTRACKER_ names, so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "RFQTRACKER_APP_ENV"
	EnvPort                   = "RFQTRACKER_APP_PORT"
	EnvDBDSN                  = "RFQTRACKER_DB_DSN"
	EnvDBHost                 = "RFQTRACKER_DB_HOST"
	EnvDBUser                 = "RFQTRACKER_DB_USER"
	EnvDBName                 = "RFQTRACKER_DB_NAME"
	EnvRedisURL               = "RFQTRACKER_REDIS_URL"
	EnvJWTSecret              = "RFQTRACKER_JWT_SECRET"
	EnvJWTIssuer              = "RFQTRACKER_JWT_ISSUER"
	EnvJWTExpMins             = "RFQTRACKER_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "RFQTRACKER_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
