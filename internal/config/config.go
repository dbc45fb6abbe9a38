// Package config loads the TOML configuration and resolves the
// effective startup defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dkrenn/tempus/internal/domain"
)

// Config mirrors ~/.tempus/config.toml. Duration fields hold the
// duration grammar ("25:00", "1d 10:00:00"), not Go duration syntax.
type Config struct {
	Mode      string             `mapstructure:"mode"`
	Style     string             `mapstructure:"style"`
	ShowDecis bool               `mapstructure:"show_decis"`
	Blink     bool               `mapstructure:"blink"`
	Countdown CountdownConfig    `mapstructure:"countdown"`
	Pomodoro  PomodoroConfig     `mapstructure:"pomodoro"`
	Event     EventConfig        `mapstructure:"event"`
	Notify    NotificationConfig `mapstructure:"notifications"`
	Storage   StorageConfig      `mapstructure:"storage"`
}

type CountdownConfig struct {
	Initial string `mapstructure:"initial"`
	Met     bool   `mapstructure:"met"`
}

type PomodoroConfig struct {
	Work  string `mapstructure:"work"`
	Break string `mapstructure:"break"`
}

type EventConfig struct {
	Target string `mapstructure:"target"`
	Title  string `mapstructure:"title"`
}

type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// DefaultDir returns the application directory (~/.tempus).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".tempus"), nil
}

// Load reads the config file at the default location, creating the
// directory on first run. Missing file means defaults.
func Load() (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No file yet, defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Storage.DataDir == "" || cfg.Storage.DataDir == "~/.tempus" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.Storage.DataDir = dir
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "countdown")
	v.SetDefault("style", "full")
	v.SetDefault("show_decis", false)
	v.SetDefault("blink", true)
	v.SetDefault("countdown.initial", "10:00")
	v.SetDefault("countdown.met", false)
	v.SetDefault("pomodoro.work", "25:00")
	v.SetDefault("pomodoro.break", "5:00")
	v.SetDefault("event.target", "")
	v.SetDefault("event.title", "")
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", false)
	v.SetDefault("storage.data_dir", "~/.tempus")
}

// StatePath returns the snapshot file location.
func (c *Config) StatePath() string {
	return filepath.Join(c.Storage.DataDir, "state.json")
}

// HistoryPath returns the session database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Storage.DataDir, "history.db")
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Storage.DataDir, "tempus.log")
}

// ToDefaults resolves the config into typed startup defaults.
func (c *Config) ToDefaults() (domain.Defaults, error) {
	var d domain.Defaults
	var err error

	if d.Mode, err = ResolveMode(c.Mode); err != nil {
		return d, err
	}
	if d.Style, err = ResolveStyle(c.Style); err != nil {
		return d, err
	}
	if d.Countdown, err = domain.ParseDuration(c.Countdown.Initial); err != nil {
		return d, fmt.Errorf("countdown.initial: %w", err)
	}
	if d.Work, err = domain.ParseDuration(c.Pomodoro.Work); err != nil {
		return d, fmt.Errorf("pomodoro.work: %w", err)
	}
	if d.Break, err = domain.ParseDuration(c.Pomodoro.Break); err != nil {
		return d, fmt.Errorf("pomodoro.break: %w", err)
	}
	if c.Event.Target != "" {
		target, title, err := domain.ParseEventTarget(c.Event.Target)
		if err != nil {
			return d, fmt.Errorf("event.target: %w", err)
		}
		d.EventTarget = target
		d.EventTitle = title
	}
	if c.Event.Title != "" {
		d.EventTitle = c.Event.Title
	}
	d.Met = c.Countdown.Met
	d.ShowDecis = c.ShowDecis
	d.Blink = c.Blink
	d.Notify = c.Notify.Enabled
	d.Sound = c.Notify.Sound
	return d, nil
}
