// Package config loads the backend configuration from defaults, an optional
// YAML file, and XRCV_* environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RegistryConfig points the resolver at a profile repository.
type RegistryConfig struct {
	BaseURL        string        `mapstructure:"baseUrl"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
}

// EngineConfig holds the mapping engine's tunables. The touch thresholds are
// deliberate defaults, not values observed from any particular device; deployments
// with unusually noisy analog buttons should raise them.
type EngineConfig struct {
	ButtonTouchThreshold float64       `mapstructure:"buttonTouchThreshold"`
	AxisTouchThreshold   float64       `mapstructure:"axisTouchThreshold"`
	TickInterval         time.Duration `mapstructure:"tickInterval"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Config is the full backend configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Registry RegistryConfig `mapstructure:"registry"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads configuration from the given file path (optional, "" skips the
// file) layered over built-in defaults and XRCV_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("registry.baseUrl", "http://localhost:8080/profiles")
	v.SetDefault("registry.requestTimeout", 10*time.Second)
	v.SetDefault("engine.buttonTouchThreshold", 0.05)
	v.SetDefault("engine.axisTouchThreshold", 0.10)
	v.SetDefault("engine.tickInterval", 16*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix("XRCV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Engine.ButtonTouchThreshold < 0 || c.Engine.ButtonTouchThreshold >= 1 {
		return fmt.Errorf("engine.buttonTouchThreshold must be in [0,1), got %v", c.Engine.ButtonTouchThreshold)
	}
	if c.Engine.AxisTouchThreshold < 0 || c.Engine.AxisTouchThreshold >= 1 {
		return fmt.Errorf("engine.axisTouchThreshold must be in [0,1), got %v", c.Engine.AxisTouchThreshold)
	}
	if c.Engine.TickInterval <= 0 {
		return fmt.Errorf("engine.tickInterval must be positive, got %v", c.Engine.TickInterval)
	}
	if c.Registry.BaseURL == "" {
		return fmt.Errorf("registry.baseUrl is required")
	}
	return nil
}
