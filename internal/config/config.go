package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
	Chart    ChartConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings. Multi-word keys need explicit tags:
// mapstructure's case-insensitive field match does not cross the underscore.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	Path  string
	Level string
}

// ChartConfig holds chart export settings.
type ChartConfig struct {
	Dir string
}

// Load reads configuration from file and env. Env var overrides use prefix KOPILKA_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "kopilka", "kopilka.db"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "kopilka", "kopilka.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("chart.dir", filepath.Join(home, ".local", "share", "kopilka", "charts"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("KOPILKA_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "kopilka"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KOPILKA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
