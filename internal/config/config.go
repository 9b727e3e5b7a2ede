// Package config manages persisted user settings in ~/.hrctl/config.yaml and
// resolves the backend base URL with the precedence: in-memory override,
// persisted setting, built-in default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hrctl-labs/hrctl/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	// KeyAPIBaseURL is the persisted setting holding the backend base URL.
	KeyAPIBaseURL = "api_base_url"
)

// Dir returns the path to the hrctl config directory (~/.hrctl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.hrctl/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// SetAPIBaseURL installs an in-memory override for the backend base URL.
// It is not persisted; use Set(KeyAPIBaseURL, url) for that.
func SetAPIBaseURL(url string) {
	viper.Set(KeyAPIBaseURL, url)
}

// APIBaseURL resolves the backend base URL. An in-memory override wins over
// the persisted setting, which wins over the built-in default. A trailing
// slash is stripped so endpoint paths concatenate cleanly.
func APIBaseURL() string {
	url := viper.GetString(KeyAPIBaseURL)
	if url == "" {
		url = branding.DefaultAPIBaseURL()
	}
	return strings.TrimRight(url, "/")
}

// APIURL joins the resolved base URL with an endpoint path.
func APIURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return APIBaseURL() + endpoint
}
