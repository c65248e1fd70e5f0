package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	CRM      CRMConfig
	Reminder ReminderConfig
}

type AppConfig struct {
	Port       string
	Env        string
	CORSOrigin string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CRMConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type ReminderConfig struct {
	Enabled bool
	// Cron spec, e.g. "0 7 * * *" for every day at 07:00
	Cron string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine when everything comes from the
		// environment (containers); any other read error is fatal. With an
		// explicit config file viper reports the miss as *fs.PathError, not
		// ConfigFileNotFoundError.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	crmTimeout, err := time.ParseDuration(viper.GetString("CRM_TIMEOUT"))
	if err != nil {
		crmTimeout = 10 * time.Second
	}

	reminderCron := viper.GetString("REMINDER_CRON")
	if reminderCron == "" {
		reminderCron = "0 7 * * *"
	}

	migrationsDir := viper.GetString("DB_MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "db/migrations"
	}

	config := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			CORSOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			MigrationsDir: migrationsDir,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		CRM: CRMConfig{
			BaseURL: viper.GetString("CRM_BASE_URL"),
			Token:   viper.GetString("CRM_TOKEN"),
			Timeout: crmTimeout,
		},
		Reminder: ReminderConfig{
			Enabled: viper.GetBool("REMINDER_ENABLED"),
			Cron:    reminderCron,
		},
	}

	return config, nil
}
