package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cexll/fileheader/internal/header"
)

// DefaultFile is read when FILEHEADER_CONFIG is unset and the file exists.
const DefaultFile = ".fileheader.yaml"

// Config holds all configuration for the file header tools
type Config struct {
	// Identity
	Author string `yaml:"author"`
	Email  string `yaml:"email"`

	// Rendering
	DateFormat       string `yaml:"dateFormat"`
	AlignFields      bool   `yaml:"alignFields"`
	UseColonInFields bool   `yaml:"useColonInFields"`

	// Field switches
	LastEditors  bool `yaml:"lastEditors"`
	LastEditTime bool `yaml:"lastEditTime"`
	Copyright    bool `yaml:"copyright"`

	// Save behaviour
	AutoInsertOnSave      bool `yaml:"autoInsertOnSave"`
	UpdateIntervalSeconds int  `yaml:"updateIntervalSeconds"`

	// Daemon settings
	Port       int    `yaml:"port"`
	AuthSecret string `yaml:"authSecret"`

	// GitHub identity fallback
	GitHubToken string `yaml:"githubToken"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DateFormat:            header.DefaultDateFormat,
		AlignFields:           true,
		UseColonInFields:      true,
		LastEditors:           true,
		LastEditTime:          true,
		Copyright:             true,
		AutoInsertOnSave:      false,
		UpdateIntervalSeconds: 120,
		Port:                  8000,
	}
}

// Load loads configuration from an optional YAML file and environment variables.
// Environment variables override values from the file.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := os.LookupEnv("FILEHEADER_CONFIG")
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Author = getEnv("FILEHEADER_AUTHOR", c.Author)
	c.Email = getEnv("FILEHEADER_EMAIL", c.Email)
	c.DateFormat = getEnv("FILEHEADER_DATE_FORMAT", c.DateFormat)
	c.AlignFields = getEnvBool("FILEHEADER_ALIGN_FIELDS", c.AlignFields)
	c.UseColonInFields = getEnvBool("FILEHEADER_USE_COLON", c.UseColonInFields)
	c.LastEditors = getEnvBool("FILEHEADER_LAST_EDITORS", c.LastEditors)
	c.LastEditTime = getEnvBool("FILEHEADER_LAST_EDIT_TIME", c.LastEditTime)
	c.Copyright = getEnvBool("FILEHEADER_COPYRIGHT", c.Copyright)
	c.AutoInsertOnSave = getEnvBool("FILEHEADER_AUTO_INSERT", c.AutoInsertOnSave)
	c.UpdateIntervalSeconds = getEnvInt("FILEHEADER_UPDATE_INTERVAL_SECONDS", c.UpdateIntervalSeconds)
	c.Port = getEnvInt("PORT", c.Port)
	c.AuthSecret = getEnv("FILEHEADER_AUTH_SECRET", c.AuthSecret)
	c.GitHubToken = getEnv("GITHUB_TOKEN", c.GitHubToken)
}

// validate checks that all configuration values are usable
func (c *Config) validate() error {
	if strings.TrimSpace(c.DateFormat) == "" {
		c.DateFormat = header.DefaultDateFormat
	}
	if c.UpdateIntervalSeconds < 0 {
		return fmt.Errorf("FILEHEADER_UPDATE_INTERVAL_SECONDS must be >= 0")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}

// HeaderOptions returns the render/update switches.
func (c *Config) HeaderOptions() header.Options {
	return header.Options{
		Align:        c.AlignFields,
		UseColon:     c.UseColonInFields,
		LastEditors:  c.LastEditors,
		LastEditTime: c.LastEditTime,
		Copyright:    c.Copyright,
	}
}

// UpdateInterval is the minimum gap between two LastEditTime rewrites of a document.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateIntervalSeconds) * time.Second
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
