package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName  = "settings"
	configType  = "toml"
	configDir   = ".aminoacids"
	envPrefix   = "AA"
	deviceFile  = "device.toml"
	sessionFile = "config.json"

	apiBaseURLKey  = "api.base_url"
	httpTimeoutKey = "http.timeout"
	configPathKey  = "config.path"
	devicePathKey  = "device.path"
	emailKey       = "account.email"
)

// Settings are the resolved runtime settings of the CLI.
type Settings struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	ConfigPath  string
	DevicePath  string
	// Email is the default account for commands that need a login.
	Email string
}

// LoadSettings reads ~/.aminoacids/settings.toml when present. Environment
// variables prefixed with AA_ override it, e.g. AA_API_BASE_URL for
// api.base_url.
func LoadSettings(cfg *viper.Viper) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(baseDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(apiBaseURLKey, domain.DefaultAPIBaseURL)
	cfg.SetDefault(httpTimeoutKey, 30*time.Second)
	cfg.SetDefault(configPathKey, filepath.Join(baseDir, sessionFile))
	cfg.SetDefault(devicePathKey, filepath.Join(baseDir, deviceFile))

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Settings{}, fmt.Errorf("read settings file: %w", err)
		}
	}

	settings := Settings{
		APIBaseURL:  strings.TrimSpace(cfg.GetString(apiBaseURLKey)),
		HTTPTimeout: cfg.GetDuration(httpTimeoutKey),
		ConfigPath:  cfg.GetString(configPathKey),
		DevicePath:  cfg.GetString(devicePathKey),
		Email:       strings.TrimSpace(cfg.GetString(emailKey)),
	}

	if settings.APIBaseURL == "" {
		return Settings{}, errors.New("api base url is empty")
	}
	if settings.HTTPTimeout <= 0 {
		return Settings{}, fmt.Errorf("http timeout must be positive, got %s", settings.HTTPTimeout)
	}

	if settings.ConfigPath, err = normalizePath(settings.ConfigPath, "config"); err != nil {
		return Settings{}, err
	}
	if settings.DevicePath, err = normalizePath(settings.DevicePath, "device"); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

func normalizePath(path, name string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%s path is empty", name)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s path: %w", name, err)
	}

	return filepath.Clean(absPath), nil
}
