package config

const (
	EnvPrefix = "ECOM"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "ECOM_DB_DSN"
	EnvDBHost = "ECOM_DB_HOST"
	EnvDBUser = "ECOM_DB_USER"
	EnvDBName = "ECOM_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
