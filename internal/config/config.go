// Package config loads server settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Wizard   WizardConfig   `yaml:"wizard"`
	Document DocumentConfig `yaml:"document"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	Secret       string        `yaml:"secret"`
	DraftTTL     time.Duration `yaml:"draft_ttl"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

type WizardConfig struct {
	StrictOrder bool `yaml:"strict_order"`
}

type DocumentConfig struct {
	Variant string `yaml:"variant"`
}

type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads path (skipped when empty), applies environment overrides and
// fills defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/wisps.db"
	}
	if c.Session.DraftTTL == 0 {
		c.Session.DraftTTL = 24 * time.Hour
	}
	if c.Document.Variant == "" {
		c.Document.Variant = "comprehensive"
	}
	if c.Archive.Bucket == "" {
		c.Archive.Bucket = "wisps"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = b
		return nil
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Server.Port = port
	}
	str("DB_PATH", &c.Database.Path)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("SESSION_SECRET", &c.Session.Secret)
	str("WISP_VARIANT", &c.Document.Variant)
	str("ARCHIVE_ENDPOINT", &c.Archive.Endpoint)
	str("ARCHIVE_ACCESS_KEY", &c.Archive.AccessKey)
	str("ARCHIVE_SECRET_KEY", &c.Archive.SecretKey)
	str("ARCHIVE_BUCKET", &c.Archive.Bucket)
	if err := boolean("ARCHIVE_ENABLED", &c.Archive.Enabled); err != nil {
		return err
	}
	if err := boolean("ARCHIVE_USE_SSL", &c.Archive.UseSSL); err != nil {
		return err
	}
	return boolean("WIZARD_STRICT_ORDER", &c.Wizard.StrictOrder)
}
