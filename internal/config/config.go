package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/Rshores91/TicTacToe/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	UI          UIConfig          `mapstructure:"ui"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game and player settings
type GameConfig struct {
	// Seed for the player policies. 0 picks a time based seed.
	Seed               int64       `mapstructure:"seed"`
	Policy             string      `mapstructure:"policy"`
	MaxAttemptsPerTurn int         `mapstructure:"max_attempts_per_turn"`
	Games              int         `mapstructure:"games"`
	Marks              MarksConfig `mapstructure:"marks"`
}

// MarksConfig assigns a mark to each player
type MarksConfig struct {
	Player0 string `mapstructure:"player_0"`
	Player1 string `mapstructure:"player_1"`
}

// MarkAssignment parses the configured marks
func (g GameConfig) MarkAssignment() (core.MarkAssignment, error) {
	p0, err := core.ParseMark(g.Marks.Player0)
	if err != nil {
		return core.MarkAssignment{}, fmt.Errorf("game.marks.player_0: %w", err)
	}
	p1, err := core.ParseMark(g.Marks.Player1)
	if err != nil {
		return core.MarkAssignment{}, fmt.Errorf("game.marks.player_1: %w", err)
	}
	return core.NewMarkAssignment(p0, p1)
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds terminal output settings
type UIConfig struct {
	Color     bool `mapstructure:"color"`
	ShowMoves bool `mapstructure:"show_moves"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	MonitorGoroutines bool `mapstructure:"monitor_goroutines"`
	LogEvents         bool `mapstructure:"log_events"`
}

var (
	// Global config instance
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

var validPolicies = map[string]bool{"random": true, "blind": true}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.policy", "random")
	v.SetDefault("game.max_attempts_per_turn", 256)
	v.SetDefault("game.games", 1)
	v.SetDefault("game.marks.player_0", "O")
	v.SetDefault("game.marks.player_1", "X")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// UI defaults
	v.SetDefault("ui.color", true)
	v.SetDefault("ui.show_moves", false)

	// Development defaults
	v.SetDefault("development.monitor_goroutines", false)
	v.SetDefault("development.log_events", false)
}

// Init initializes the configuration. A missing file at configPath is not an
// error; defaults and environment variables still apply.
func Init(configPath string) error {
	nv := viper.New()

	// Set defaults before loading any config
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		// Default config locations
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/tictactoe")
	}

	// TTT_GAME_SEED overrides game.seed
	nv.SetEnvPrefix("TTT")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	cfg, v = c, nv
	mu.Unlock()
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()

	if c == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return c
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates. Invalid values are refused and the
// previous config is kept.
func Set(key string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()

	old := v.Get(key)
	v.Set(key, value)
	if err := reloadLocked(); err != nil {
		v.Set(key, old)
		return err
	}
	return nil
}

// LoadEnvironmentConfig merges config.<env>.yaml, looked up next to the
// loaded config file (or in the working directory when there is none), over
// the current configuration. A missing overlay is not an error. The overlay
// is read on its own viper instance, so ConfigFilePath and WatchConfig keep
// pointing at the base file.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if base := v.ConfigFileUsed(); base != "" {
		envFile = filepath.Join(filepath.Dir(base), envFile)
	}

	ov := viper.New()
	ov.SetConfigFile(envFile)
	if err := ov.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading environment config %s: %w", envFile, err)
	}

	if err := v.MergeConfigMap(ov.AllSettings()); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}
	return reloadLocked()
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the new config, or the error that kept the old one in place.
func WatchConfig(onChange func(*Config, error)) {
	wv := GetViper()
	wv.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		err := reloadLocked()
		c := cfg
		mu.Unlock()

		if onChange != nil {
			onChange(c, err)
		}
	})
	wv.WatchConfig()
}

func reloadLocked() error {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if !validPolicies[strings.ToLower(c.Game.Policy)] {
		return fmt.Errorf("game.policy must be one of random, blind (got %q)", c.Game.Policy)
	}
	if c.Game.MaxAttemptsPerTurn <= 0 {
		return fmt.Errorf("game.max_attempts_per_turn must be positive")
	}
	if c.Game.Games <= 0 {
		return fmt.Errorf("game.games must be positive")
	}

	if _, err := c.Game.MarkAssignment(); err != nil {
		return err
	}

	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	if f := strings.ToLower(c.Logging.Format); f != "console" && f != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
