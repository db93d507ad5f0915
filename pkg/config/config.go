package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	BlobDriverBaaS  = "baas"
	BlobDriverLocal = "local"
)

// ErrMissingBaaS is returned when either backing-store value is absent.
var ErrMissingBaaS = errors.New("missing backing store configuration")

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	BaaS      BaaSConfig
	CORS      CORSConfig
	Log       LogConfig
	Blob      BlobConfig
	Documents DocumentsConfig
	Audit     AuditConfig
	ViewState ViewStateConfig
	Dashboard DashboardConfig
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// BaaSConfig points at the hosted backend used for auth and blob storage.
type BaaSConfig struct {
	URL           string
	ServiceKey    string
	JWTSecret     string
	StorageBucket string
	Timeout       time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BlobConfig selects where document binaries are written.
type BlobConfig struct {
	Driver          string
	LocalDir        string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// DocumentsConfig validates uploads.
type DocumentsConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// AuditConfig sizes the audit side channel.
type AuditConfig struct {
	Workers    int
	BufferSize int
	Retries    int
}

// ViewStateConfig governs persisted admin view state.
type ViewStateConfig struct {
	Enabled bool
	TTL     time.Duration
}

// DashboardConfig holds the timezone used for "this month" counts.
type DashboardConfig struct {
	Timezone string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.BaaS = BaaSConfig{
		URL:           strings.TrimRight(strings.TrimSpace(v.GetString("SUPABASE_URL")), "/"),
		ServiceKey:    strings.TrimSpace(v.GetString("SUPABASE_SERVICE_KEY")),
		JWTSecret:     v.GetString("SUPABASE_JWT_SECRET"),
		StorageBucket: v.GetString("SUPABASE_STORAGE_BUCKET"),
		Timeout:       parseDuration(v.GetString("SUPABASE_TIMEOUT"), 15*time.Second),
	}
	if cfg.BaaS.URL == "" {
		return nil, fmt.Errorf("%w: SUPABASE_URL is required", ErrMissingBaaS)
	}
	if cfg.BaaS.ServiceKey == "" {
		return nil, fmt.Errorf("%w: SUPABASE_SERVICE_KEY is required", ErrMissingBaaS)
	}

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DB_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Blob = BlobConfig{
		Driver:          strings.ToLower(v.GetString("BLOB_DRIVER")),
		LocalDir:        v.GetString("BLOB_LOCAL_DIR"),
		SignedURLSecret: v.GetString("BLOB_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("BLOB_SIGNED_URL_TTL"), time.Hour),
	}
	if cfg.Blob.Driver != BlobDriverLocal {
		cfg.Blob.Driver = BlobDriverBaaS
	}

	maxDocumentSize := v.GetInt64("DOCUMENTS_MAX_FILE_SIZE")
	if maxDocumentSize <= 0 {
		maxDocumentSize = 20 * 1024 * 1024
	}
	cfg.Documents = DocumentsConfig{
		MaxFileSizeBytes: maxDocumentSize,
		AllowedMIMEs:     splitAndTrim(v.GetString("DOCUMENTS_ALLOWED_MIME_TYPES")),
	}

	cfg.Audit = AuditConfig{
		Workers:    v.GetInt("AUDIT_QUEUE_WORKERS"),
		BufferSize: v.GetInt("AUDIT_QUEUE_BUFFER"),
		Retries:    v.GetInt("AUDIT_QUEUE_RETRIES"),
	}

	cfg.ViewState = ViewStateConfig{
		Enabled: v.GetBool("ENABLE_VIEW_STATE"),
		TTL:     parseDuration(v.GetString("VIEW_STATE_TTL"), 12*time.Hour),
	}

	cfg.Dashboard = DashboardConfig{Timezone: v.GetString("DASHBOARD_TIMEZONE")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SUPABASE_STORAGE_BUCKET", "documents")
	v.SetDefault("SUPABASE_TIMEOUT", "15s")

	v.SetDefault("DB_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("BLOB_DRIVER", BlobDriverBaaS)
	v.SetDefault("BLOB_LOCAL_DIR", "./uploads")
	v.SetDefault("BLOB_SIGNED_URL_SECRET", "dev_blob_secret")
	v.SetDefault("BLOB_SIGNED_URL_TTL", "1h")

	v.SetDefault("DOCUMENTS_MAX_FILE_SIZE", 20*1024*1024)
	v.SetDefault("DOCUMENTS_ALLOWED_MIME_TYPES", "application/pdf,image/jpeg,image/png,application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	v.SetDefault("AUDIT_QUEUE_WORKERS", 1)
	v.SetDefault("AUDIT_QUEUE_BUFFER", 256)
	v.SetDefault("AUDIT_QUEUE_RETRIES", 0)

	v.SetDefault("ENABLE_VIEW_STATE", true)
	v.SetDefault("VIEW_STATE_TTL", "12h")

	v.SetDefault("DASHBOARD_TIMEZONE", "Local")
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
