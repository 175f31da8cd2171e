package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// PromptPlaceholder is replaced with the user's prompt inside the instruction template.
	PromptPlaceholder = "{prompt}"

	DefaultModel               = "veo-3.1-exp-1204"
	DefaultInstructionTemplate = "Generate an 8K ultra realistic cinematic video: " + PromptPlaceholder
	DefaultMaxDuration         = 5 * time.Minute
	DefaultAPIBaseURL          = "https://generativelanguage.googleapis.com"

	TransportSDK  = "sdk"
	TransportREST = "rest"

	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Server
	Port   string
	AppEnv string

	// Veo generation
	Model               string
	InstructionTemplate string
	MaxDuration         time.Duration
	Transport           string
	APIBaseURL          string

	// Observability
	LogLevel         string
	LogFormat        string
	MetricsNamespace string
}

// LoadConfig - .env + 환경변수 로드
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	return FromEnv()
}

// FromEnv builds a Config from the process environment without touching .env files.
func FromEnv() (*Config, error) {
	maxDuration := DefaultMaxDuration
	if raw := os.Getenv("VEO_MAX_DURATION"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("VEO_MAX_DURATION: %w", err)
		}
		maxDuration = parsed
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),

		Model:               getEnv("VEO_MODEL", DefaultModel),
		InstructionTemplate: getEnv("VEO_INSTRUCTION_TEMPLATE", DefaultInstructionTemplate),
		MaxDuration:         maxDuration,
		Transport:           strings.ToLower(getEnv("VEO_TRANSPORT", TransportSDK)),
		APIBaseURL:          strings.TrimRight(getEnv("VEO_API_BASE_URL", DefaultAPIBaseURL), "/"),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "veo_studio"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, used by tests and the CLI.
func Default() *Config {
	return &Config{
		Port:                "8080",
		AppEnv:              EnvDevelopment,
		Model:               DefaultModel,
		InstructionTemplate: DefaultInstructionTemplate,
		MaxDuration:         DefaultMaxDuration,
		Transport:           TransportSDK,
		APIBaseURL:          DefaultAPIBaseURL,
		LogLevel:            "info",
		LogFormat:           "json",
		MetricsNamespace:    "veo_studio",
	}
}

// IsProduction reports whether diagnostic details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Instruction renders the upstream instruction for a user prompt.
func (c *Config) Instruction(prompt string) string {
	return strings.ReplaceAll(c.InstructionTemplate, PromptPlaceholder, prompt)
}

// Addr - listen 주소
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) validate() error {
	if c.Model == "" {
		return fmt.Errorf("VEO_MODEL must not be empty")
	}
	if !strings.Contains(c.InstructionTemplate, PromptPlaceholder) {
		return fmt.Errorf("VEO_INSTRUCTION_TEMPLATE must contain %s", PromptPlaceholder)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("VEO_MAX_DURATION must be positive, got %s", c.MaxDuration)
	}
	switch c.Transport {
	case TransportSDK, TransportREST:
	default:
		return fmt.Errorf("VEO_TRANSPORT must be %q or %q, got %q", TransportSDK, TransportREST, c.Transport)
	}
	return nil
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
