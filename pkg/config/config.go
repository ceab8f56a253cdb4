package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Fees     FeesConfig
	AI       AIConfig
}

type DatabaseConfig struct {
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

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FeesConfig tunes ledger-adjacent behaviour.
type FeesConfig struct {
	DueCacheTTL     time.Duration
	PreviewCacheTTL time.Duration
}

// AIProviderConfig describes one language-model provider. A provider with
// an empty APIKey is treated as unconfigured and skipped by the pipeline.
type AIProviderConfig struct {
	Name   string
	APIKey string
	Model  string
}

// AIConfig carries the ordered provider list plus shared call limits.
type AIConfig struct {
	Providers   []AIProviderConfig
	CallTimeout time.Duration
	MaxTokens   int
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
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

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Fees = FeesConfig{
		DueCacheTTL:     parseDuration(v.GetString("FEES_DUE_CACHE_TTL"), 2*time.Minute),
		PreviewCacheTTL: parseDuration(v.GetString("FEES_PREVIEW_CACHE_TTL"), 5*time.Minute),
	}

	cfg.AI = AIConfig{
		// Precedence is fixed: Claude, OpenAI, xAI, Gemini, DeepSeek.
		Providers: []AIProviderConfig{
			{Name: "claude", APIKey: v.GetString("ANTHROPIC_API_KEY"), Model: v.GetString("CLAUDE_MODEL")},
			{Name: "openai", APIKey: v.GetString("OPENAI_API_KEY"), Model: v.GetString("OPENAI_MODEL")},
			{Name: "xai", APIKey: v.GetString("XAI_API_KEY"), Model: v.GetString("XAI_MODEL")},
			{Name: "gemini", APIKey: v.GetString("GEMINI_API_KEY"), Model: v.GetString("GEMINI_MODEL")},
			{Name: "deepseek", APIKey: v.GetString("DEEPSEEK_API_KEY"), Model: v.GetString("DEEPSEEK_MODEL")},
		},
		CallTimeout: parseDuration(v.GetString("AI_CALL_TIMEOUT"), 120*time.Second),
		MaxTokens:   v.GetInt("AI_MAX_TOKENS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_core")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "school-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FEES_DUE_CACHE_TTL", "2m")
	v.SetDefault("FEES_PREVIEW_CACHE_TTL", "5m")

	v.SetDefault("ANTHROPIC_API_KEY", "")
	v.SetDefault("CLAUDE_MODEL", "claude-3-5-sonnet-20241022")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	v.SetDefault("XAI_API_KEY", "")
	v.SetDefault("XAI_MODEL", "grok-2-latest")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	v.SetDefault("DEEPSEEK_API_KEY", "")
	v.SetDefault("DEEPSEEK_MODEL", "deepseek-chat")
	v.SetDefault("AI_CALL_TIMEOUT", "120s")
	v.SetDefault("AI_MAX_TOKENS", 4096)
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
