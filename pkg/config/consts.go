package config

const EnvPrefix = "FREEFIND"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv       = "FREEFIND_APP_ENV"
	EnvPort         = "FREEFIND_APP_PORT"
	EnvDataDir      = "FREEFIND_DATA_DIR"
	EnvRedisURL     = "FREEFIND_REDIS_URL"
	EnvJWTSecret    = "FREEFIND_JWT_SECRET"
	EnvJWTIssuer    = "FREEFIND_JWT_ISSUER"
	EnvJWTExpMins   = "FREEFIND_JWT_EXPIRATION_MINUTES"
	EnvAIBackendURL = "FREEFIND_AI_BACKEND_URL"
	EnvPhotosDir    = "FREEFIND_PHOTOS_DIR"
)
