package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "CORNEYE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "CORNEYE_DB_DSN"
	EnvDBHost = "CORNEYE_DB_HOST"
	EnvDBUser = "CORNEYE_DB_USER"
	EnvDBName = "CORNEYE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
