package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/quickconvert/entitlement-system/internal/core/domain"
)

// Store backend selectors.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs session tokens. Rotating it invalidates every
	// outstanding session at once.
	SessionSecret string `env:"SESSION_SECRET"`
	// AdminToken gates /admin routes. Empty means the admin surface is
	// disabled: every grant request is rejected.
	AdminToken string `env:"ADMIN_TOKEN"`
	// WebhookSecret verifies payment webhook signatures. Empty means every
	// webhook is rejected.
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	// Store selects the persistence backend: "mongo" (MongoDB for records,
	// Redis for quota counters) or "memory" (in-process, non-persistent).
	Store string `env:"STORE_BACKEND, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
	Quota QuotaConfig
	Proxy ProxyConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=entitlement"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// QuotaConfig holds the daily free limit per tool. A limit of zero means the
// tool is Pro-only for anonymous and free identities.
type QuotaConfig struct {
	Image     int `env:"FREE_DAILY_IMAGE,     default=2"`
	PDFMerge  int `env:"FREE_DAILY_PDFMERGE,  default=2"`
	ZipFolder int `env:"FREE_DAILY_ZIPFOLDER, default=2"`
	HEIC      int `env:"FREE_DAILY_HEIC,      default=0"`
	ImagePro  int `env:"FREE_DAILY_IMAGEPRO,  default=0"`
	PDFTools  int `env:"FREE_DAILY_PDFTOOLS,  default=0"`
}

type ProxyConfig struct {
	// OCRAPIKey authenticates against ocr.space. The fallback key is the
	// provider's shared test key and is heavily rate limited.
	OCRAPIKey string `env:"OCR_SPACE_API_KEY, default=helloworld"`
}

// Limits maps each tool to its configured daily free limit.
func (q QuotaConfig) Limits() map[domain.Tool]int {
	return map[domain.Tool]int{
		domain.ToolImage:     q.Image,
		domain.ToolPDFMerge:  q.PDFMerge,
		domain.ToolZipFolder: q.ZipFolder,
		domain.ToolHEIC:      q.HEIC,
		domain.ToolImagePro:  q.ImagePro,
		domain.ToolPDFTools:  q.PDFTools,
	}
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
