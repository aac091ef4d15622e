package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// User is one account allowed to call the sheet API.
type User struct {
	Username string `yaml:"username" mapstructure:"username"`
	// PasswordHash is a bcrypt hash, see `timebox hash-password`.
	PasswordHash string `yaml:"password_hash" mapstructure:"password_hash"`
}

// Remote points the client at a running `timebox serve`.
type Remote struct {
	URL      string        `yaml:"url" mapstructure:"url"`
	Username string        `yaml:"username" mapstructure:"username"`
	Password string        `yaml:"password,omitempty" mapstructure:"password"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type Config struct {
	// Listen is the HTTP listen address of the API server.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Database is the SQLite file backing the API server.
	Database string `yaml:"database" mapstructure:"database"`
	// GuestDir holds the local sheet collection of guest sessions.
	GuestDir string `yaml:"guest_dir" mapstructure:"guest_dir"`
	// Timezone is the IANA zone day keys are computed in; empty means local.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
	// Locale of date labels, e.g. es_ES or en_US.
	Locale   string `yaml:"locale" mapstructure:"locale"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	LogJSON  bool   `yaml:"log_json" mapstructure:"log_json"`

	Remote Remote `yaml:"remote" mapstructure:"remote"`
	Users  []User `yaml:"users" mapstructure:"users"`
}

const (
	defaultListen   = "127.0.0.1:8080"
	defaultDatabase = "~/.local/share/timebox/timebox.db"
	defaultGuestDir = "~/.local/share/timebox/guest"
	defaultLocale   = "es_ES"
	defaultLogLevel = "info"
	defaultTimeout  = 10 * time.Second
)

func DefaultConfig() *Config {
	return &Config{
		Listen:   defaultListen,
		Database: defaultDatabase,
		GuestDir: defaultGuestDir,
		Locale:   defaultLocale,
		LogLevel: defaultLogLevel,
		Remote:   Remote{Timeout: defaultTimeout},
		Users:    []User{},
	}
}

// Normalize fills zero values so partially written files still work.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = defaultListen
	}
	if strings.TrimSpace(c.Database) == "" {
		c.Database = defaultDatabase
	}
	if strings.TrimSpace(c.GuestDir) == "" {
		c.GuestDir = defaultGuestDir
	}
	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = defaultLocale
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "off":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = defaultLogLevel
	}
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = defaultTimeout
	}
	c.Remote.URL = strings.TrimRight(strings.TrimSpace(c.Remote.URL), "/")
	if c.Users == nil {
		c.Users = []User{}
	}
}

// Location resolves Timezone, falling back to the process zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Authenticated reports whether the client has what it needs to talk to a
// server; without it sessions run as guests.
func (c *Config) Authenticated() bool {
	return c.Remote.URL != "" && c.Remote.Username != ""
}

// DatabasePath is Database with "~" expanded.
func (c *Config) DatabasePath() (string, error) {
	if c.Database == ":memory:" {
		return c.Database, nil
	}
	return homedir.Expand(c.Database)
}

// GuestPath is GuestDir with "~" expanded.
func (c *Config) GuestPath() (string, error) {
	return homedir.Expand(c.GuestDir)
}

// DefaultPath returns ~/.config/timebox/config.yaml.
func DefaultPath() (string, error) {
	return homedir.Expand("~/.config/timebox/config.yaml")
}

// Load reads the YAML file at path, applies TIMEBOX_* environment overrides
// (TIMEBOX_REMOTE_PASSWORD, TIMEBOX_LISTEN, ...) and normalizes the result.
// A missing file is created with defaults on first run.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path: %w", err)
	}
	if _, err := os.Stat(expanded); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := Save(expanded, cfg); err != nil {
			return cfg, err
		}
	}

	v := viper.New()
	v.SetConfigFile(expanded)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TIMEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", expanded, err)
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", expanded, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// setDefaults registers every scalar key so AutomaticEnv can override keys
// the file does not mention.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("listen", d.Listen)
	v.SetDefault("database", d.Database)
	v.SetDefault("guest_dir", d.GuestDir)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_json", d.LogJSON)
	v.SetDefault("remote.url", d.Remote.URL)
	v.SetDefault("remote.username", d.Remote.Username)
	v.SetDefault("remote.password", d.Remote.Password)
	v.SetDefault("remote.timeout", d.Remote.Timeout)
}

// Save writes cfg atomically (temp file + rename) with 0600 permissions; the
// file may hold a remote password.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".timebox-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
