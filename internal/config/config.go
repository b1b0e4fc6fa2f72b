package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config keeps runtime settings for the planner daemon.
type Config struct {
	Env          string `env:"ENV" env-default:"local"`
	DatabasePath string `env:"DATABASE_PATH" env-default:"focusdo.db"`

	SyncInterval     time.Duration `env:"SYNC_INTERVAL" env-default:"10s"`
	SyncTimeout      time.Duration `env:"SYNC_TIMEOUT" env-default:"30s"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" env-default:"30s"`
	DailySummaryAt   string        `env:"DAILY_SUMMARY_AT" env-default:"08:00"`

	TrashMaxEntries int           `env:"TRASH_MAX_ENTRIES" env-default:"100"`
	TrashMaxAge     time.Duration `env:"TRASH_MAX_AGE" env-default:"720h"`

	WeeklyGoal int `env:"WEEKLY_GOAL" env-default:"0"`

	Remote   RemoteConfig
	Telegram TelegramConfig
	Calendar CalendarConfig
}

// RemoteConfig points at the cloud record store. An empty base URL keeps the
// app fully local.
type RemoteConfig struct {
	BaseURL string        `env:"REMOTE_BASE_URL" env-default:""`
	Token   string        `env:"REMOTE_TOKEN" env-default:""`
	Timeout time.Duration `env:"REMOTE_TIMEOUT" env-default:"15s"`
}

// TelegramConfig configures reminder delivery. An empty token disables it.
type TelegramConfig struct {
	Token  string `env:"TELEGRAM_TOKEN" env-default:""`
	ChatID int64  `env:"TELEGRAM_CHAT_ID" env-default:"0"`
}

// CalendarConfig configures the Google Calendar mirror. An empty calendar
// name disables it.
type CalendarConfig struct {
	CredentialsDir string `env:"GOOGLE_CREDENTIALS_DIR" env-default:""`
	CalendarName   string `env:"GOOGLE_CALENDAR_NAME" env-default:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
