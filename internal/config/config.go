// Package config loads service configuration from an optional YAML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"activities/internal/logging"
	"activities/internal/repository"
	"activities/internal/storage"
	"activities/internal/util"
	"activities/internal/validation"
)

const (
	defaultAddr            = ":8080"
	defaultStaticDir       = "web/dist"
	defaultShutdownTimeout = 5 * time.Second
	defaultDriver          = storage.DriverSQLite
	defaultSQLitePath      = "data/activities.db"
	defaultRedisAddr       = "localhost:6379"
	defaultFileDir         = "data"
)

// Config represents the complete application configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Storage    StorageConfig    `yaml:"storage"`
	Validation ValidationConfig `yaml:"validation"`
	Logging    logging.Config   `yaml:"logging"`
}

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	StaticDir       string        `yaml:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	// Driver is one of sqlite, redis, file, memory.
	Driver string `yaml:"driver"`
	// Key names the entry holding the activity collection.
	Key string `yaml:"key"`

	SQLitePath    string `yaml:"sqlite_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	FileDir       string `yaml:"file_dir"`
}

// ValidationConfig holds form validation settings.
type ValidationConfig struct {
	// Timezone decides which calendar day counts as today.
	Timezone string `yaml:"timezone"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaultAddr
	}
	if c.HTTP.StaticDir == "" {
		c.HTTP.StaticDir = defaultStaticDir
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaultDriver
	}
	if c.Storage.Key == "" {
		c.Storage.Key = repository.DefaultKey
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = defaultSQLitePath
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = defaultRedisAddr
	}
	if c.Storage.FileDir == "" {
		c.Storage.FileDir = defaultFileDir
	}
	if c.Validation.Timezone == "" {
		c.Validation.Timezone = validation.DefaultTimezone
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http address is required")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if !slices.Contains(storage.Drivers, c.Storage.Driver) {
		return fmt.Errorf("storage driver must be one of: %s", strings.Join(storage.Drivers, ", "))
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key is required")
	}
	if c.Storage.RedisDB < 0 {
		return fmt.Errorf("redis db must not be negative")
	}
	if _, err := validation.LoadLocation(c.Validation.Timezone); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Load reads the YAML file at path (skipped when path is empty), applies environment
// overrides and defaults, and validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Addr = util.EnvOrDefault("ACTIVITIES_ADDR", c.HTTP.Addr)
	c.HTTP.StaticDir = util.EnvOrDefault("ACTIVITIES_STATIC_DIR", c.HTTP.StaticDir)
	c.Storage.Driver = util.EnvOrDefault("ACTIVITIES_STORAGE", c.Storage.Driver)
	c.Storage.Key = util.EnvOrDefault("ACTIVITIES_STORAGE_KEY", c.Storage.Key)
	c.Storage.SQLitePath = util.EnvOrDefault("ACTIVITIES_DB_PATH", c.Storage.SQLitePath)
	c.Storage.RedisAddr = util.EnvOrDefault("ACTIVITIES_REDIS_ADDR", c.Storage.RedisAddr)
	c.Storage.RedisPassword = util.EnvOrDefault("ACTIVITIES_REDIS_PASSWORD", c.Storage.RedisPassword)
	c.Storage.FileDir = util.EnvOrDefault("ACTIVITIES_DATA_DIR", c.Storage.FileDir)
	c.Validation.Timezone = util.EnvOrDefault("ACTIVITIES_TIMEZONE", c.Validation.Timezone)
	c.Logging.Level = util.EnvOrDefault("ACTIVITIES_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = util.EnvOrDefault("ACTIVITIES_LOG_FORMAT", c.Logging.Format)

	db, err := util.EnvIntOrDefault("ACTIVITIES_REDIS_DB", c.Storage.RedisDB)
	if err != nil {
		return err
	}
	c.Storage.RedisDB = db
	return nil
}
