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

type Config struct {
	App            AppConfig
	Log            LogConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	JWT            JWTConfig
	AI             AIConfig
	Interview      InterviewConfig
	Recommendation RecommendationConfig
	Search         SearchConfig
}

type AppConfig struct {
	AppName      string
	Environment  string
	HTTPPort     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	CookieSecure     bool
	CookieDomain     string
}

// AIConfig selects the providers behind embeddings, chat and transcription.
type AIConfig struct {
	EmbeddingProvider   string
	EmbeddingModel      string
	EmbeddingDimensions int

	LLMProvider string
	LLMModel    string

	TranscriptionModel string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string

	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

type InterviewConfig struct {
	DefaultQuestionCount int
	MaxQuestionCount     int
	SessionTTL           time.Duration
	MaxAudioBytes        int64
}

type RecommendationConfig struct {
	CacheTTL time.Duration
}

type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidValue       = errors.New("invalid configuration value")
)

// Load reads .env (when present), an optional config file and the process
// environment, in increasing order of precedence.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "hirelink")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("HTTP_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 60*time.Second)
	v.SetDefault("HTTP_BODY_LIMIT", 16*1024*1024)

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("DB_POOL_MIN_CONNS", 1)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME", time.Hour)
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute)
	v.SetDefault("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", 10*time.Minute)

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", 30*time.Minute)
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour)
	v.SetDefault("JWT_COOKIE_SECURE", true)

	v.SetDefault("AI_EMBEDDING_PROVIDER", ProviderGemini)
	v.SetDefault("AI_EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("AI_EMBEDDING_DIMENSIONS", 768)
	v.SetDefault("AI_LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("AI_LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("AI_TRANSCRIPTION_MODEL", "whisper-1")
	v.SetDefault("AI_TIMEOUT", 30*time.Second)
	v.SetDefault("AI_REQUESTS_PER_SECOND", 5.0)
	v.SetDefault("AI_BURST", 10)

	v.SetDefault("INTERVIEW_DEFAULT_QUESTIONS", 5)
	v.SetDefault("INTERVIEW_MAX_QUESTIONS", 10)
	v.SetDefault("INTERVIEW_SESSION_TTL", 2*time.Hour)
	v.SetDefault("INTERVIEW_MAX_AUDIO_BYTES", 10*1024*1024)

	v.SetDefault("RECOMMENDATION_CACHE_TTL", 5*time.Minute)

	v.SetDefault("SEARCH_DEFAULT_LIMIT", 5)
	v.SetDefault("SEARCH_MAX_LIMIT", 50)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:      opt("APP_NAME"),
		Environment:  opt("APP_ENV"),
		HTTPPort:     req("HTTP_PORT"),
		ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
		BodyLimit:    v.GetInt("HTTP_BODY_LIMIT"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
		CookieSecure:     v.GetBool("JWT_COOKIE_SECURE"),
		CookieDomain:     opt("JWT_COOKIE_DOMAIN"),
	}

	cfg.AI = AIConfig{
		EmbeddingProvider:   strings.ToLower(opt("AI_EMBEDDING_PROVIDER")),
		EmbeddingModel:      opt("AI_EMBEDDING_MODEL"),
		EmbeddingDimensions: v.GetInt("AI_EMBEDDING_DIMENSIONS"),
		LLMProvider:         strings.ToLower(opt("AI_LLM_PROVIDER")),
		LLMModel:            opt("AI_LLM_MODEL"),
		TranscriptionModel:  opt("AI_TRANSCRIPTION_MODEL"),
		OpenAIAPIKey:        opt("OPENAI_API_KEY"),
		OpenAIBaseURL:       opt("OPENAI_BASE_URL"),
		GeminiAPIKey:        opt("GEMINI_API_KEY"),
		Timeout:             v.GetDuration("AI_TIMEOUT"),
		RequestsPerSecond:   v.GetFloat64("AI_REQUESTS_PER_SECOND"),
		Burst:               v.GetInt("AI_BURST"),
	}

	cfg.Interview = InterviewConfig{
		DefaultQuestionCount: v.GetInt("INTERVIEW_DEFAULT_QUESTIONS"),
		MaxQuestionCount:     v.GetInt("INTERVIEW_MAX_QUESTIONS"),
		SessionTTL:           v.GetDuration("INTERVIEW_SESSION_TTL"),
		MaxAudioBytes:        v.GetInt64("INTERVIEW_MAX_AUDIO_BYTES"),
	}

	cfg.Recommendation = RecommendationConfig{
		CacheTTL: v.GetDuration("RECOMMENDATION_CACHE_TTL"),
	}

	cfg.Search = SearchConfig{
		DefaultLimit: v.GetInt("SEARCH_DEFAULT_LIMIT"),
		MaxLimit:     v.GetInt("SEARCH_MAX_LIMIT"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.AI.EmbeddingProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: AI_EMBEDDING_PROVIDER=%q", errInvalidValue, c.AI.EmbeddingProvider)
	}
	switch c.AI.LLMProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: AI_LLM_PROVIDER=%q", errInvalidValue, c.AI.LLMProvider)
	}
	if c.AI.EmbeddingDimensions <= 0 {
		return fmt.Errorf("%w: AI_EMBEDDING_DIMENSIONS must be positive", errInvalidValue)
	}
	if c.Interview.MaxQuestionCount <= 0 || c.Interview.DefaultQuestionCount <= 0 ||
		c.Interview.DefaultQuestionCount > c.Interview.MaxQuestionCount {
		return fmt.Errorf("%w: interview question counts", errInvalidValue)
	}
	return nil
}

// DSN is the libpq-style connection string for the configured database.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.DBHost, d.DBPort, d.DBUser, d.DBPassword, d.DBName, d.DBSSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}
