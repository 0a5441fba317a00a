package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ux_auditor/internal/domain/adaptors"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-2.0-flash",
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

type AuditConfig struct {
	FetchTimeout    time.Duration
	FetchMaxBytes   int64
	MaxContentChars int
	// AllowPrivateHosts lets the fetcher reach loopback and private networks. Tests and local use only.
	AllowPrivateHosts bool
	RateLimitRPS      float64
	RateLimitBurst    int
}

type AppConfig struct {
	LogLevel    string
	DebugMode   bool
	MetricsHost string
	PprofHost   string
	LLM         LLMConfig
	Audit       AuditConfig
}

// NewAppConfig reads config.env (if present) and the process environment.
func NewAppConfig() (*AppConfig, error) {
	return LoadAppConfig(`config.env`)
}

func LoadAppConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	var errMsg []string
	parseDuration := func(envVar string, fallback time.Duration) time.Duration {
		value := os.Getenv(envVar)
		if value == "" {
			return fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			errMsg = append(errMsg, fmt.Sprintf("%s: invalid duration format: %v", envVar, err))
			return fallback
		}
		return d
	}
	parseInt := func(envVar string, fallback int64) int64 {
		value := os.Getenv(envVar)
		if value == "" {
			return fallback
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			errMsg = append(errMsg, fmt.Sprintf("%s: invalid integer: %v", envVar, err))
			return fallback
		}
		return n
	}
	parseFloat := func(envVar string, fallback float64) float64 {
		value := os.Getenv(envVar)
		if value == "" {
			return fallback
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			errMsg = append(errMsg, fmt.Sprintf("%s: invalid number: %v", envVar, err))
			return fallback
		}
		return f
	}

	cfg := AppConfig{}
	cfg.LogLevel = strings.ToLower(getEnv("APP_LOG_LEVEL", string(adaptors.Info)))
	cfg.DebugMode = os.Getenv("APP_ENABLE_DEBUG") == "true"
	cfg.MetricsHost = getEnv("HTTP_APP_METRICS_HOST", ":9090")
	cfg.PprofHost = getEnv("HTTP_APP_PPROF_HOST", ":6060")

	cfg.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", os.Getenv("OPENAI_API_KEY"))
	cfg.LLM.Model = getEnv("LLM_MODEL", getEnv("OPENAI_MODEL", defaultModels[cfg.LLM.Provider]))
	cfg.LLM.BaseURL = os.Getenv("LLM_BASE_URL")
	cfg.LLM.Timeout = parseDuration("LLM_TIMEOUT_DURATION", 30*time.Second)

	cfg.Audit.FetchTimeout = parseDuration("AUDIT_FETCH_TIMEOUT_DURATION", 10*time.Second)
	cfg.Audit.FetchMaxBytes = parseInt("AUDIT_FETCH_MAX_BYTES", 1_000_000)
	cfg.Audit.MaxContentChars = int(parseInt("AUDIT_MAX_CONTENT_CHARS", 12000))
	cfg.Audit.AllowPrivateHosts = os.Getenv("AUDIT_FETCH_ALLOW_PRIVATE") == "true"
	cfg.Audit.RateLimitRPS = parseFloat("AUDIT_RATE_LIMIT_RPS", 0)
	cfg.Audit.RateLimitBurst = int(parseInt("AUDIT_RATE_LIMIT_BURST", 5))

	if len(errMsg) != 0 {
		return nil, fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) error {
	var errMsg []string
	if !adaptors.LogLevel(cfg.LogLevel).Valid() {
		errMsg = append(errMsg, fmt.Sprintf(`log level %q is invalid`, cfg.LogLevel))
	}

	if cfg.MetricsHost == "" {
		errMsg = append(errMsg, `metrics host is empty`)
	}

	if _, ok := defaultModels[cfg.LLM.Provider]; !ok {
		errMsg = append(errMsg, fmt.Sprintf(`llm provider %q is not supported`, cfg.LLM.Provider))
	}

	if cfg.LLM.APIKey == "" {
		errMsg = append(errMsg, `llm api key is empty`)
	}

	if cfg.LLM.Timeout <= 0 {
		errMsg = append(errMsg, `llm timeout must be positive`)
	}

	if cfg.Audit.FetchTimeout <= 0 {
		errMsg = append(errMsg, `fetch timeout must be positive`)
	}

	if cfg.Audit.FetchMaxBytes <= 0 {
		errMsg = append(errMsg, `fetch max bytes must be positive`)
	}

	if cfg.Audit.MaxContentChars <= 0 {
		errMsg = append(errMsg, `max content chars must be positive`)
	}

	if cfg.Audit.RateLimitRPS < 0 || cfg.Audit.RateLimitBurst < 0 {
		errMsg = append(errMsg, `rate limit must not be negative`)
	}

	if len(errMsg) != 0 {
		return fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
