package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Log
		Database
		Dates
		Export
		Tasks
	}

	HTTP struct {
		Port     int32
		Host     string
		ReadOnly bool // Reject API writes, e.g. when serving the demo library
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // console or json
	}
	Database struct {
		Path  string
		Debug bool // Log every SQL statement through gorm
	}
	Dates struct {
		PreferMonthFirst bool // 01/02/2024 is January 2nd when true
	}
	Export struct {
		Dir             string
		ScheduleEnabled bool
		Schedule        string // Cron format: "0 * * * *" = hourly
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("read_only", false)
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", LogFormatConsole)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_debug", false)
	v.SetDefault("dates_prefer_month_first", true)

	// Journal export defaults
	v.SetDefault("export_dir", "")
	v.SetDefault("export_schedule_enabled", false)
	v.SetDefault("export_schedule", DefaultExportSchedule)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: Database{
			Path:  v.GetString("DATABASE_PATH"),
			Debug: v.GetBool("DATABASE_DEBUG"),
		},
		Dates: Dates{
			PreferMonthFirst: v.GetBool("DATES_PREFER_MONTH_FIRST"),
		},
		Export: Export{
			Dir:             v.GetString("EXPORT_DIR"),
			ScheduleEnabled: v.GetBool("EXPORT_SCHEDULE_ENABLED"),
			Schedule:        v.GetString("EXPORT_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}

// Validate checks the configuration for values the application cannot start with.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HTTP),
		validation.Field(&c.Log),
		validation.Field(&c.Database),
		validation.Field(&c.Export),
		validation.Field(&c.Tasks),
	)
}

func (h HTTP) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Port, validation.Required, validation.Min(int32(1)), validation.Max(int32(65535))),
		validation.Field(&h.Host, validation.Required),
	)
}

func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.Required, validation.In(LogFormatConsole, LogFormatJSON)),
	)
}

func (d Database) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Path, validation.Required),
	)
}

func (e Export) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Dir, validation.When(e.ScheduleEnabled, validation.Required.Error("is required when the export schedule is enabled"))),
		validation.Field(&e.Schedule, validation.When(e.ScheduleEnabled, validation.Required, validation.By(validCronSchedule))),
	)
}

func (t Tasks) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Workers, validation.When(t.Enabled, validation.Min(1))),
	)
}

// ShutdownTimeout returns the graceful shutdown window.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Global.ShutdownTimeoutInSeconds) * time.Second
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// ValidateCronSchedule reports whether the schedule is a valid five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cron.ParseStandard(schedule)
	return err
}

func validCronSchedule(value interface{}) error {
	schedule, _ := value.(string)
	if err := ValidateCronSchedule(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule: %w", err)
	}
	return nil
}
