// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// LLMProvider selects the gateway adapter: openrouter or gemini.
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"openrouter"`
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	KimiAPIKey     string        `env:"KIMI_API_KEY"`
	LLMBaseURL     string        `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel       string        `env:"LLM_MODEL" envDefault:"deepseek/deepseek-chat:free"`
	LLMTemperature float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMReferer     string        `env:"LLM_REFERER" envDefault:"http://localhost:3000"`
	LLMTitle       string        `env:"LLM_TITLE" envDefault:"SkillBridge Assessment"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	GeminiModel    string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	// LLMBreakerThreshold consecutive gateway failures open the circuit; 0 disables it.
	LLMBreakerThreshold int           `env:"LLM_BREAKER_THRESHOLD" envDefault:"5"`
	LLMBreakerCooldown  time.Duration `env:"LLM_BREAKER_COOLDOWN" envDefault:"30s"`

	// Assessment tuning
	AssessCompleteThreshold   int           `env:"ASSESS_COMPLETE_THRESHOLD" envDefault:"10"`
	AssessHistoryWindow       int           `env:"ASSESS_HISTORY_WINDOW" envDefault:"5"`
	AssessReportAttempts      int           `env:"ASSESS_REPORT_ATTEMPTS" envDefault:"3"`
	AssessReportRetryInterval time.Duration `env:"ASSESS_REPORT_RETRY_INTERVAL" envDefault:"500ms"`

	// CatalogPath overrides the embedded course catalog when set.
	CatalogPath string `env:"CATALOG_PATH"`

	// RedisURL enables the Redis question cache; empty means in-process cache.
	RedisURL          string        `env:"REDIS_URL"`
	QuestionCacheTTL  time.Duration `env:"QUESTION_CACHE_TTL" envDefault:"24h"`
	QuestionCacheSize int           `env:"QUESTION_CACHE_SIZE" envDefault:"256"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"skillbridge-assessor"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"60"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"190s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	// HTTPRequestTimeout bounds one API call. It must exceed the worst case
	// of a report turn, see WorstCaseTurn.
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"180s"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = cfg.KimiAPIKey
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Provider() {
	case "openrouter", "gemini":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.AssessCompleteThreshold < 9 {
		return fmt.Errorf("ASSESS_COMPLETE_THRESHOLD must be >= 9, got %d", c.AssessCompleteThreshold)
	}
	if c.AssessHistoryWindow < 1 {
		return fmt.Errorf("ASSESS_HISTORY_WINDOW must be positive, got %d", c.AssessHistoryWindow)
	}
	if c.LLMBreakerThreshold < 0 {
		return fmt.Errorf("LLM_BREAKER_THRESHOLD must not be negative, got %d", c.LLMBreakerThreshold)
	}
	if c.AssessReportAttempts < 1 {
		return fmt.Errorf("ASSESS_REPORT_ATTEMPTS must be positive, got %d", c.AssessReportAttempts)
	}
	if worst := c.WorstCaseTurn(); c.HTTPRequestTimeout <= worst {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must exceed %s (reply + report attempts + simplified report at LLM_TIMEOUT each), got %s",
			worst, c.HTTPRequestTimeout)
	}
	return nil
}

// WorstCaseTurn is the longest a report-producing turn can spend on the
// gateway: the reply, every full report attempt and the simplified report,
// plus the pauses between attempts.
func (c Config) WorstCaseTurn() time.Duration {
	calls := time.Duration(2 + c.AssessReportAttempts)
	pauses := time.Duration(c.AssessReportAttempts - 1)
	return calls*c.LLMTimeout + pauses*c.AssessReportRetryInterval
}

// Provider returns the normalised LLM provider name.
func (c Config) Provider() string { return strings.ToLower(strings.TrimSpace(c.LLMProvider)) }

// LLMConfigured reports whether the selected provider has credentials.
func (c Config) LLMConfigured() bool {
	if c.Provider() == "gemini" {
		return c.GeminiAPIKey != ""
	}
	return c.LLMAPIKey != ""
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
