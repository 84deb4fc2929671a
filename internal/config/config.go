package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "America/Sao_Paulo"
	fallbackTimezone  = "UTC"
	configPathEnv     = "NEWSLETTER_CONFIG"
	databasePathEnv   = "DATABASE_PATH"
	logLevelEnv       = "LOG_LEVEL"
	outputDirEnv      = "OUTPUT_DIR"
	sentimentURLEnv   = "SENTIMENT_URL"
	sentimentKeyEnv   = "SENTIMENT_API_KEY"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Output        OutputConfig       `yaml:"output"`
	Sentiment     SentimentConfig    `yaml:"sentiment"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sites         []SiteConfig       `yaml:"sites"`
}

// LoggingConfig selects slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig points at the sqlite article store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines when the daily edition runs.
type SchedulerConfig struct {
	Hour     int            `yaml:"hour"`
	Minute   int            `yaml:"minute"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
	// timeSet records that hour or minute appeared in the file, so 00:00
	// still overrides the default.
	timeSet bool
}

// UnmarshalYAML tracks whether the schedule time was given explicitly.
func (s *SchedulerConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Hour     *int   `yaml:"hour"`
		Minute   *int   `yaml:"minute"`
		Timezone string `yaml:"timezone"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Hour != nil {
		s.Hour = *raw.Hour
		s.timeSet = true
	}
	if raw.Minute != nil {
		s.Minute = *raw.Minute
		s.timeSet = true
	}
	s.Timezone = raw.Timezone
	return nil
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.UTC
}

// OutputConfig tells where rendered newsletters are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// SentimentConfig describes the text-analysis service.
type SentimentConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both token and chat are set.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// SiteConfig describes a single news site with its scanner strategy.
type SiteConfig struct {
	Name             string            `yaml:"name"`
	Scanner          string            `yaml:"scanner"`
	BaseURL          string            `yaml:"baseUrl"`
	RequestDelayMS   int               `yaml:"requestDelayMs"`
	MinContentLength int               `yaml:"minContentLength"`
	Options          map[string]string `yaml:"options"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		loaded, err := LoadFile(path, cfg)
		if err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = loaded
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

// LoadFile merges the YAML file at path over base.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, &fileError{op: "read", path: path, err: err}
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return base, &fileError{op: "parse", path: path, err: err}
	}
	return mergeConfig(base, fileCfg), nil
}

type fileError struct {
	op   string
	path string
	err  error
}

func (e *fileError) Error() string {
	return "cannot " + e.op + " " + e.path + ": " + e.err.Error()
}

func (e *fileError) Unwrap() error { return e.err }

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}

	if v := os.Getenv(sentimentURLEnv); v != "" {
		c.Sentiment.InferenceURL = v
	}

	if v := os.Getenv(sentimentKeyEnv); v != "" {
		c.Sentiment.APIKey = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv("SCHEDULER_HOUR"); v != "" {
		if hour, err := strconv.Atoi(v); err == nil && hour >= 0 && hour < 24 {
			c.Scheduler.Hour = hour
		} else {
			log.Printf("config: invalid SCHEDULER_HOUR %q ignored", v)
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, fallbackTimezone)
		loc = time.UTC
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Scheduler.timeSet || override.Scheduler.Hour != 0 || override.Scheduler.Minute != 0 {
		base.Scheduler.Hour = override.Scheduler.Hour
		base.Scheduler.Minute = override.Scheduler.Minute
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Output.Dir != "" {
		base.Output = override.Output
	}

	if override.Sentiment.InferenceURL != "" {
		base.Sentiment.InferenceURL = override.Sentiment.InferenceURL
	}
	if override.Sentiment.APIKey != "" {
		base.Sentiment.APIKey = override.Sentiment.APIKey
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Database:  DatabaseConfig{Path: "news.db"},
		Scheduler: SchedulerConfig{Hour: 8, Minute: 0, Timezone: defaultTimezone},
		Output:    OutputConfig{Dir: "outputs"},
		Sentiment: SentimentConfig{},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Sites: []SiteConfig{
			{
				Name:             "cnn-brasil-economia",
				Scanner:          "cnnbrasil",
				BaseURL:          "https://www.cnnbrasil.com.br/economia/",
				RequestDelayMS:   1000,
				MinContentLength: 100,
			},
		},
	}
}
