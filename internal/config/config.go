// Package config loads the engine tunables from a config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	panel "github.com/grindlemire/go-panel"
)

// EnvPrefix prefixes environment overrides, e.g. PANEL_MOMENTUM_PROJECTION_RATE.
const EnvPrefix = "PANEL"

// Config holds the engine tunables.
type Config struct {
	Momentum MomentumConfig `mapstructure:"momentum"`
	Spring   SpringConfig   `mapstructure:"spring"`
	Display  DisplayConfig  `mapstructure:"display"`
	Removal  RemovalConfig  `mapstructure:"removal"`
	Debug    DebugConfig    `mapstructure:"debug"`
}

// MomentumConfig tunes how releases are resolved.
type MomentumConfig struct {
	ProjectionRate        float64 `mapstructure:"projection_rate"`
	RedirectionalProgress float64 `mapstructure:"redirectional_progress"`
	Projectable           bool    `mapstructure:"projectable"`
	RubberBand            bool    `mapstructure:"rubber_band"`
}

// SpringConfig tunes settle playback.
type SpringConfig struct {
	DecelerationRate float64 `mapstructure:"deceleration_rate"`
	ResponseTime     float64 `mapstructure:"response_time"`
}

// DisplayConfig describes the host display.
type DisplayConfig struct {
	FrameRate int     `mapstructure:"frame_rate"`
	Scale     float64 `mapstructure:"scale"`
}

// RemovalConfig tunes the removal interaction.
type RemovalConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	Threshold float64 `mapstructure:"threshold"`
}

// DebugConfig points debug logging at a file. Empty leaves it to PANEL_DEBUG.
type DebugConfig struct {
	LogPath string `mapstructure:"log_path"`
}

// Default returns the built-in tunables.
func Default() Config {
	return Config{
		Momentum: MomentumConfig{
			ProjectionRate:        panel.DecelerationRateNormal,
			RedirectionalProgress: 0.5,
			RubberBand:            true,
		},
		Spring: SpringConfig{
			DecelerationRate: panel.DecelerationRateFast + 0.001,
			ResponseTime:     0.4,
		},
		Display: DisplayConfig{
			FrameRate: 60,
			Scale:     2,
		},
		Removal: RemovalConfig{
			Threshold: 5.5,
		},
	}
}

// Load reads the configuration from the file named by PANEL_CONFIG, or
// config.yaml in ~/.config/go-panel, and applies PANEL_ environment
// overrides. A missing file is not an error.
func Load() (Config, error) {
	path := os.Getenv(EnvPrefix + "_CONFIG")
	return load(path)
}

// LoadFile is Load with an explicit config file.
func LoadFile(path string) (Config, error) {
	return load(path)
}

func load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "go-panel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("momentum.projection_rate", d.Momentum.ProjectionRate)
	v.SetDefault("momentum.redirectional_progress", d.Momentum.RedirectionalProgress)
	v.SetDefault("momentum.projectable", d.Momentum.Projectable)
	v.SetDefault("momentum.rubber_band", d.Momentum.RubberBand)
	v.SetDefault("spring.deceleration_rate", d.Spring.DecelerationRate)
	v.SetDefault("spring.response_time", d.Spring.ResponseTime)
	v.SetDefault("display.frame_rate", d.Display.FrameRate)
	v.SetDefault("display.scale", d.Display.Scale)
	v.SetDefault("removal.enabled", d.Removal.Enabled)
	v.SetDefault("removal.threshold", d.Removal.Threshold)
	v.SetDefault("debug.log_path", d.Debug.LogPath)
}

// Validate reports the first out-of-range tunable.
func (c Config) Validate() error {
	switch {
	case c.Momentum.ProjectionRate <= 0 || c.Momentum.ProjectionRate >= 1:
		return fmt.Errorf("momentum.projection_rate must be in (0, 1), got %v", c.Momentum.ProjectionRate)
	case c.Momentum.RedirectionalProgress < 0 || c.Momentum.RedirectionalProgress > 1:
		return fmt.Errorf("momentum.redirectional_progress must be in [0, 1], got %v", c.Momentum.RedirectionalProgress)
	case c.Spring.DecelerationRate <= 0 || c.Spring.DecelerationRate >= 1:
		return fmt.Errorf("spring.deceleration_rate must be in (0, 1), got %v", c.Spring.DecelerationRate)
	case c.Spring.ResponseTime <= 0:
		return fmt.Errorf("spring.response_time must be positive, got %v", c.Spring.ResponseTime)
	case c.Display.FrameRate <= 0:
		return fmt.Errorf("display.frame_rate must be positive, got %v", c.Display.FrameRate)
	case c.Display.Scale <= 0:
		return fmt.Errorf("display.scale must be positive, got %v", c.Display.Scale)
	case c.Removal.Threshold <= 0:
		return fmt.Errorf("removal.threshold must be positive, got %v", c.Removal.Threshold)
	}
	return nil
}

// Behavior converts the momentum, spring and removal tunables.
func (c Config) Behavior() panel.TunableBehavior {
	return panel.TunableBehavior{
		ProjectionRate:     c.Momentum.ProjectionRate,
		Redirection:        c.Momentum.RedirectionalProgress,
		Projectable:        c.Momentum.Projectable,
		NoRubberBand:       !c.Momentum.RubberBand,
		SpringDeceleration: c.Spring.DecelerationRate,
		SpringResponse:     c.Spring.ResponseTime,
		RemovalThreshold:   c.Removal.Threshold,
	}
}

// FrameInterval is the playback tick interval.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Display.FrameRate)
}

// Options returns the panel options the configuration implies.
func (c Config) Options() []panel.Option {
	return []panel.Option{
		panel.WithBehavior(c.Behavior()),
		panel.WithDisplayScale(c.Display.Scale),
		panel.WithRemovalInteraction(c.Removal.Enabled),
	}
}
