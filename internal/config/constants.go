package config

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Credential store backends
const (
	CredentialsBackendFile  = "file"
	CredentialsBackendRedis = "redis"
)

// EnvironmentProduction is the ENVIRONMENT value of production deployments
const EnvironmentProduction = "production"
