package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Password  PasswordConfig
	AIBackend AIBackendConfig
	Photos    PhotosConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FREEFIND_APP_ENV" required:"true"`
	Port         string `envconfig:"FREEFIND_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FREEFIND_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FREEFIND_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig locates the JSON documents that back the ledger and accounts.
type StorageConfig struct {
	DataDir         string `envconfig:"FREEFIND_DATA_DIR" default:"./data"`
	DonationsFile   string `envconfig:"FREEFIND_DONATIONS_FILE" default:"donations.json"`
	AccountsFile    string `envconfig:"FREEFIND_ACCOUNTS_FILE" default:"accounts.json"`
	CredentialsFile string `envconfig:"FREEFIND_CREDENTIALS_FILE" default:"credentials.json"`
}

// DonationsPath locates the donation ledger document.
func (s StorageConfig) DonationsPath() string {
	return filepath.Join(s.DataDir, s.DonationsFile)
}

// AccountsPath locates the account document.
func (s StorageConfig) AccountsPath() string {
	return filepath.Join(s.DataDir, s.AccountsFile)
}

// CredentialsPath locates the credential document.
func (s StorageConfig) CredentialsPath() string {
	return filepath.Join(s.DataDir, s.CredentialsFile)
}

type RedisConfig struct {
	URL          string        `envconfig:"FREEFIND_REDIS_URL"`
	Address      string        `envconfig:"FREEFIND_REDIS_ADDR"`
	Password     string        `envconfig:"FREEFIND_REDIS_PASSWORD"`
	DB           int           `envconfig:"FREEFIND_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FREEFIND_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FREEFIND_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FREEFIND_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FREEFIND_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FREEFIND_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"FREEFIND_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FREEFIND_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FREEFIND_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FREEFIND_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FREEFIND_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FREEFIND_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FREEFIND_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FREEFIND_ARGON_KEY_LEN" default:"32"`
}

// AIBackendConfig points at the remote analysis service consumed best-effort.
type AIBackendConfig struct {
	BaseURL          string        `envconfig:"FREEFIND_AI_BACKEND_URL"`
	ImageTimeout     time.Duration `envconfig:"FREEFIND_AI_IMAGE_TIMEOUT" default:"30s"`
	TextTimeout      time.Duration `envconfig:"FREEFIND_AI_TEXT_TIMEOUT" default:"15s"`
	EstimateCacheTTL time.Duration `envconfig:"FREEFIND_AI_ESTIMATE_CACHE_TTL" default:"24h"`
}

// Enabled reports whether the remote estimation layer is configured.
func (a AIBackendConfig) Enabled() bool {
	return a.BaseURL != ""
}

type PhotosConfig struct {
	Dir         string `envconfig:"FREEFIND_PHOTOS_DIR" default:"./data/photos"`
	MaxUploadMB int    `envconfig:"FREEFIND_PHOTOS_MAX_UPLOAD_MB" default:"10"`
}
