package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	JWTSecret      string

	// ImportAPITokenHash is the bcrypt hash of the key the scheduler sends in x-api-key.
	ImportAPITokenHash string `mapstructure:"IMPORT_API_TOKEN_HASH"`

	// Import pipeline
	ImportTxTimeout         time.Duration
	ImportMaxConcurrentHOAs int
	ImportMaxUploadBytes    int64
	LegacyCodepage          string

	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "30-M"
}

const (
	defaultTxTimeout      = 30 * time.Second
	defaultMaxUploadBytes = 64 << 20
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("IMPORT_API_TOKEN_HASH", "")
	v.SetDefault("IMPORT_TX_TIMEOUT", defaultTxTimeout.String())
	v.SetDefault("IMPORT_MAX_CONCURRENT_HOAS", 0)
	v.SetDefault("IMPORT_MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	v.SetDefault("LEGACY_CODEPAGE", "windows-1250")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "30-M")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.ImportAPITokenHash = v.GetString("IMPORT_API_TOKEN_HASH")
	if cfg.ImportAPITokenHash == "" {
		log.Println("Warning: IMPORT_API_TOKEN_HASH not set. Scheduled imports must authenticate with a JWT.")
	}

	// Load import transaction timeout (e.g. "30s", "2m")
	txTimeoutStr := v.GetString("IMPORT_TX_TIMEOUT")
	txTimeout, err := time.ParseDuration(txTimeoutStr)
	if err != nil || txTimeout <= 0 {
		txTimeout = defaultTxTimeout
		log.Printf("Warning: Invalid value for IMPORT_TX_TIMEOUT ('%s'). Defaulting to %s.\n", txTimeoutStr, txTimeout)
	}
	cfg.ImportTxTimeout = txTimeout

	cfg.ImportMaxConcurrentHOAs = v.GetInt("IMPORT_MAX_CONCURRENT_HOAS")
	if cfg.ImportMaxConcurrentHOAs < 0 {
		log.Printf("Warning: Negative IMPORT_MAX_CONCURRENT_HOAS (%d). Defaulting to unlimited.\n", cfg.ImportMaxConcurrentHOAs)
		cfg.ImportMaxConcurrentHOAs = 0
	}

	cfg.ImportMaxUploadBytes = v.GetInt64("IMPORT_MAX_UPLOAD_BYTES")
	if cfg.ImportMaxUploadBytes <= 0 {
		cfg.ImportMaxUploadBytes = defaultMaxUploadBytes
	}

	cfg.LegacyCodepage = v.GetString("LEGACY_CODEPAGE")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
