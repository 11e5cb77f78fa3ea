package config

const EnvPrefix = "TOPICDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "TOPICDESK_APP_ENV"
	EnvPort     = "TOPICDESK_APP_PORT"
	EnvLogLevel = "TOPICDESK_LOG_LEVEL"

	EnvDBDSN    = "TOPICDESK_DB_DSN"
	EnvDBDriver = "TOPICDESK_DB_DRIVER"
	EnvDBHost   = "TOPICDESK_DB_HOST"
	EnvDBPort   = "TOPICDESK_DB_PORT"
	EnvDBUser   = "TOPICDESK_DB_USER"
	EnvDBPass   = "TOPICDESK_DB_PASSWORD"
	EnvDBName   = "TOPICDESK_DB_NAME"

	EnvRedisURL = "TOPICDESK_REDIS_URL"

	EnvCORSOrigins = "TOPICDESK_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
