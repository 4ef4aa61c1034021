package config

const EnvPrefix = "AGRISETU"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv  = "AGRISETU_APP_ENV"
	EnvAppPort = "AGRISETU_APP_PORT"

	EnvDBDSN  = "AGRISETU_DB_DSN"
	EnvDBHost = "AGRISETU_DB_HOST"
	EnvDBUser = "AGRISETU_DB_USER"
	EnvDBName = "AGRISETU_DB_NAME"

	EnvRedisURL = "AGRISETU_REDIS_URL"

	EnvPlatformAccountID = "AGRISETU_PLATFORM_ACCOUNT_ID"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
