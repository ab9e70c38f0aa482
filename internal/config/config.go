package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "SECNEWSRADAR_CONFIG"
	dataDirEnv       = "SECNEWSRADAR_DATA_DIR"
	opmlPathEnv      = "SECNEWSRADAR_OPML"
	daysBackEnv      = "DAYS_BACK"
	logLevelEnv      = "LOG_LEVEL"
	chatAPIKeyEnv    = "CHATGPT_API_KEY"
	chatModelEnv     = "CHATGPT_MODEL"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Data          DataConfig         `yaml:"data"`
	Feeds         FeedsConfig        `yaml:"feeds"`
	Rules         RulesConfig        `yaml:"rules"`
	Watch         WatchConfig        `yaml:"watch"`
	Briefing      BriefingConfig     `yaml:"briefing"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DataConfig locates the output data directory.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// FeedsConfig describes the feed catalog and the snapshot window.
type FeedsConfig struct {
	OPMLPath string `yaml:"opmlPath"`
	DaysBack int    `yaml:"daysBack"`
}

// RulesConfig points at an optional YAML rule file; empty selects the
// built-in rule set.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig defines the watch-mode interval.
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// BriefingConfig defines how to contact the chat API for briefings.
type BriefingConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.Data.Dir = v
	}

	if v := os.Getenv(opmlPathEnv); v != "" {
		c.Feeds.OPMLPath = v
	}

	if v := os.Getenv(daysBackEnv); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			c.Feeds.DaysBack = days
		} else {
			log.Printf("config: ignoring invalid %s=%q", daysBackEnv, v)
		}
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(chatAPIKeyEnv); v != "" {
		c.Briefing.APIKey = v
	}

	if v := os.Getenv(chatModelEnv); v != "" {
		c.Briefing.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Data.Dir != "" {
		base.Data.Dir = override.Data.Dir
	}

	if override.Feeds.OPMLPath != "" {
		base.Feeds.OPMLPath = override.Feeds.OPMLPath
	}
	if override.Feeds.DaysBack > 0 {
		base.Feeds.DaysBack = override.Feeds.DaysBack
	}

	if override.Rules.Path != "" {
		base.Rules.Path = override.Rules.Path
	}

	if override.Watch.Interval > 0 {
		base.Watch.Interval = override.Watch.Interval
	}

	if override.Briefing.Endpoint != "" {
		base.Briefing.Endpoint = override.Briefing.Endpoint
	}
	if override.Briefing.Model != "" {
		base.Briefing.Model = override.Briefing.Model
	}
	if override.Briefing.APIKey != "" {
		base.Briefing.APIKey = override.Briefing.APIKey
	}
	if override.Briefing.SystemPrompt != "" {
		base.Briefing.SystemPrompt = override.Briefing.SystemPrompt
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Data:    DataConfig{Dir: "data"},
		Feeds: FeedsConfig{
			OPMLPath: "sec_feeds.xml",
			DaysBack: 30,
		},
		Watch: WatchConfig{Interval: 6 * time.Hour},
		Briefing: BriefingConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "You are a security analyst. Write a concise daily briefing from the high-signal news items you receive.",
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
	}
}
