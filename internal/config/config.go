package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL  string        `yaml:"base_url"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		BannerCron  string `yaml:"banner_cron"`
	} `yaml:"schedule"`
	Widget struct {
		OmegaShift bool   `yaml:"omega_shift"`
		StateFile  string `yaml:"state_file"`
	} `yaml:"widget"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// envOverrides lists the variables that take precedence over the file. Empty or nil means unset.
type envOverrides struct {
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID"`
	BaseURL          string `envconfig:"VST_BASE_URL"`
	RefreshCron      string `envconfig:"CRON_REFRESH"`
	SQLitePath       string `envconfig:"SQLITE_PATH"`
	StateFile        string `envconfig:"STATE_FILE"`
	HTTPAddr         string `envconfig:"HTTP_ADDR"`
	LogLevel         string `envconfig:"LOG_LEVEL"`
	OmegaShift       *bool  `envconfig:"OMEGA_SHIFT"`
	Proxy            string `envconfig:"HTTPS_PROXY"`
}

// EnvPrefix is prepended to every override variable, e.g. DBWIDGET_SQLITE_PATH.
const EnvPrefix = "DBWIDGET"

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.applyEnv(&env)
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv(env *envOverrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Telegram.BotToken, env.TelegramBotToken)
	set(&c.Telegram.ChatID, env.TelegramChatID)
	set(&c.DataSource.BaseURL, env.BaseURL)
	set(&c.Schedule.RefreshCron, env.RefreshCron)
	set(&c.Database.SQLitePath, env.SQLitePath)
	set(&c.Widget.StateFile, env.StateFile)
	set(&c.HTTP.Addr, env.HTTPAddr)
	set(&c.LogLevel, env.LogLevel)
	set(&c.Proxy, env.Proxy)
	if env.OmegaShift != nil {
		c.Widget.OmegaShift = *env.OmegaShift
	}
}

func (c *Config) applyDefaults() {
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://vst.ninja"
	}
	if c.DataSource.CacheTTL == 0 {
		c.DataSource.CacheTTL = 30 * time.Second
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 * * * * *"
	}
	if c.Schedule.BannerCron == "" {
		c.Schedule.BannerCron = "0 0 0,6,12,18 * * *"
	}
	if c.Widget.StateFile == "" {
		c.Widget.StateFile = "data/state.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/dbwidget.db"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// TelegramEnabled reports whether push notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.DataSource.CacheTTL < 0 {
		return fmt.Errorf("data_source.cache_ttl must not be negative")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("schedule.refresh_cron: %w", err)
	}
	if _, err := parser.Parse(c.Schedule.BannerCron); err != nil {
		return fmt.Errorf("schedule.banner_cron: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
