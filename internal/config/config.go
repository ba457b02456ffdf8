package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Tokenizer  TokenizerConfig  `yaml:"tokenizer"`
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Admin      AdminConfig      `yaml:"admin"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used when the
// lexicon is served from postgres.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Lexicon sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// LexiconConfig selects where the reference tables are read from.
type LexiconConfig struct {
	Source      string `yaml:"source"       env:"LEXICON_SOURCE"       env-default:"csv"`
	WordPath    string `yaml:"word_path"    env:"LEXICON_WORD_PATH"    env-default:"data/word.csv"`
	GrammarPath string `yaml:"grammar_path" env:"LEXICON_GRAMMAR_PATH" env-default:"data/grammar.csv"`
	SQLitePath  string `yaml:"sqlite_path"  env:"LEXICON_SQLITE_PATH"  env-default:"data/lexicon.db"`
	// RetryInterval re-attempts a failed startup load, e.g. while the
	// tokenizer sidecar is still booting. Zero disables retries.
	RetryInterval time.Duration `yaml:"retry_interval" env:"LEXICON_RETRY_INTERVAL" env-default:"30s"`
}

// TokenizerConfig points at the morphological analyzer sidecar. An empty
// URL leaves the engine without a tokenizer.
type TokenizerConfig struct {
	URL      string        `yaml:"url"       env:"TOKENIZER_URL"       env-default:"http://localhost:5000"`
	Timeout  time.Duration `yaml:"timeout"   env:"TOKENIZER_TIMEOUT"   env-default:"5s"`
	RetryMax int           `yaml:"retry_max" env:"TOKENIZER_RETRY_MAX" env-default:"2"`
}

// LLM providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// LLMConfig holds the language model used for disambiguation and
// sentence generation.
type LLMConfig struct {
	Provider  string        `yaml:"provider"   env:"LLM_PROVIDER"   env-default:"none"`
	APIKey    string        `yaml:"api_key"    env:"LLM_API_KEY"`
	Model     string        `yaml:"model"      env:"LLM_MODEL"      env-default:"claude-3-5-haiku-latest"`
	BaseURL   string        `yaml:"base_url"   env:"LLM_BASE_URL"`
	MaxTokens int64         `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"1024"`
	Timeout   time.Duration `yaml:"timeout"    env:"LLM_TIMEOUT"    env-default:"30s"`
	RetryMax  int           `yaml:"retry_max"  env:"LLM_RETRY_MAX"  env-default:"2"`
}

// Enabled reports whether a model is configured.
func (c LLMConfig) Enabled() bool {
	return c.Provider != ProviderNone && c.Provider != ""
}

// GenerationConfig holds the validated generation loop settings.
type GenerationConfig struct {
	MaxAttempts int `yaml:"max_attempts" env:"GENERATION_MAX_ATTEMPTS" env-default:"5"`
}

// AdminConfig holds operator token settings. An empty secret disables the
// admin routes.
type AdminConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"ADMIN_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"ADMIN_JWT_ISSUER" env-default:"hangyeol"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"ADMIN_TOKEN_TTL"  env-default:"1h"`
}

// Enabled reports whether admin routes are mounted.
func (c AdminConfig) Enabled() bool { return c.JWTSecret != "" }

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	GradePerMinute    int           `yaml:"grade_per_minute"    env:"RATE_LIMIT_GRADE"    env-default:"120"`
	GeneratePerMinute int           `yaml:"generate_per_minute" env:"RATE_LIMIT_GENERATE" env-default:"10"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP"  env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
