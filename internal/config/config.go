package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"UploadTimeAdvisor/pkg/logger"
)

const (
	defaultTimezone = "Asia/Seoul"

	configPathEnv     = "UPLOAD_ADVISOR_CONFIG"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIBaseURLEnv  = "OPENAI_BASE_URL"
	defaultModelEnv   = "DEFAULT_MODEL"
	maxTokensEnv      = "MAX_TOKENS"
	temperatureEnv    = "TEMPERATURE"
	hostEnv           = "HOST"
	portEnv           = "PORT"
	debugEnv          = "DEBUG"
	frontendURLEnv    = "FRONTEND_URL"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "LOG_LEVEL"
	timezoneEnv       = "TIMEZONE"
)

var bootLog = logger.New("config")

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Server        ServerConfig       `yaml:"server"`
	OpenAI        OpenAIConfig       `yaml:"openai"`
	Weekly        WeeklyConfig       `yaml:"weekly"`
	Calendar      CalendarConfig     `yaml:"calendar"`
	Database      DatabaseConfig     `yaml:"database"`
	Schedule      ScheduleConfig     `yaml:"schedule"`
	Notifications NotificationConfig `yaml:"notifications"`
	Timezone      string             `yaml:"timezone"`

	location *time.Location
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Debug           bool          `yaml:"debug"`
	FrontendURL     string        `yaml:"frontendUrl"`
	Environment     string        `yaml:"environment"`
	Version         string        `yaml:"version"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OpenAIConfig defines how to contact the chat completion API.
type OpenAIConfig struct {
	APIKey       string        `yaml:"apiKey"`
	BaseURL      string        `yaml:"baseUrl"`
	Model        string        `yaml:"model"`
	MaxTokens    int           `yaml:"maxTokens"`
	Temperature  float32       `yaml:"temperature"`
	SystemPrompt string        `yaml:"systemPrompt"`
	Timeout      time.Duration `yaml:"timeout"`
	// RequestsPerMinute throttles outgoing calls. Zero disables throttling.
	RequestsPerMinute int `yaml:"requestsPerMinute"`
}

// WeeklyConfig tunes the seven-day fan-out.
type WeeklyConfig struct {
	Parallelism int `yaml:"parallelism"`
}

// CalendarConfig extends the built-in holiday table.
type CalendarConfig struct {
	RecurringFrom int            `yaml:"recurringFrom"`
	RecurringTo   int            `yaml:"recurringTo"`
	Sources       []SourceConfig `yaml:"sources"`
}

// SourceConfig describes a single holiday feed with its loader strategy.
type SourceConfig struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind"`
	URL     string            `yaml:"url"`
	Options map[string]string `yaml:"options"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ScheduleConfig defines when the digest should run.
type ScheduleConfig struct {
	Cron     string `yaml:"cron"`
	Category string `yaml:"category"`
	Weekly   bool   `yaml:"weekly"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	BaseURL  string `yaml:"baseUrl"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Location resolves the configured timezone.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidateGeneration checks the settings needed to call the text generator.
func (c Config) ValidateGeneration() error {
	var errs []error
	if c.OpenAI.APIKey == "" {
		errs = append(errs, fmt.Errorf("%s is not set", openAIAPIKeyEnv))
	}
	if c.OpenAI.MaxTokens < 1 {
		errs = append(errs, fmt.Errorf("openai.maxTokens must be positive, got %d", c.OpenAI.MaxTokens))
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		errs = append(errs, fmt.Errorf("openai.temperature must be within [0, 2], got %g", c.OpenAI.Temperature))
	}
	return errors.Join(errs...)
}

// Load reads YAML configuration from UPLOAD_ADVISOR_CONFIG (if set) and
// applies environment overrides.
func Load() Config {
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom is Load with an explicit file path. An empty path skips the file.
func LoadFrom(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			bootLog.Printf("cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg := defaultConfig()
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				bootLog.Printf("cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = fileCfg
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if cfg.Weekly.Parallelism < 1 {
		cfg.Weekly.Parallelism = 1
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	setString(&c.OpenAI.APIKey, openAIAPIKeyEnv)
	setString(&c.OpenAI.BaseURL, openAIBaseURLEnv)
	setString(&c.OpenAI.Model, defaultModelEnv)
	setString(&c.Server.Host, hostEnv)
	setString(&c.Server.FrontendURL, frontendURLEnv)
	setString(&c.Database.DSN, databaseDSNEnv)
	setString(&c.Notifications.Telegram.BotToken, telegramTokenEnv)
	setString(&c.Notifications.Telegram.ChatID, telegramChatIDEnv)
	setString(&c.Logging.Level, logLevelEnv)
	setString(&c.Timezone, timezoneEnv)

	if v := os.Getenv(maxTokensEnv); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			bootLog.Printf("ignoring %s=%q: %v", maxTokensEnv, v, err)
		} else {
			c.OpenAI.MaxTokens = n
		}
	}

	if v := os.Getenv(temperatureEnv); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err != nil {
			bootLog.Printf("ignoring %s=%q: %v", temperatureEnv, v, err)
		} else {
			c.OpenAI.Temperature = float32(f)
		}
	}

	if v := os.Getenv(portEnv); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			bootLog.Printf("ignoring %s=%q: %v", portEnv, v, err)
		} else {
			c.Server.Port = n
		}
	}

	if v := os.Getenv(debugEnv); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err != nil {
			bootLog.Printf("ignoring %s=%q: %v", debugEnv, v, err)
		} else {
			c.Server.Debug = b
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		bootLog.Printf("unknown timezone %s, reverting to %s", tz, defaultTimezone)
		tz = defaultTimezone
		if loc, err = time.LoadLocation(defaultTimezone); err != nil {
			loc = time.UTC
		}
	}
	c.Timezone = tz
	c.location = loc
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			FrontendURL:     "http://localhost:3000",
			Environment:     "development",
			Version:         "1.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		OpenAI: OpenAIConfig{
			BaseURL:           "https://api.openai.com/v1",
			Model:             "gpt-4o",
			MaxTokens:         4000,
			Temperature:       0.7,
			Timeout:           30 * time.Second,
			RequestsPerMinute: 60,
		},
		Weekly:   WeeklyConfig{Parallelism: 1},
		Schedule: ScheduleConfig{Category: "general"},
		Timezone: defaultTimezone,
	}
}
