package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	Data   string       `mapstructure:"data" yaml:"data"`
	Theme  string       `mapstructure:"theme" yaml:"theme"`
	Header HeaderConfig `mapstructure:"header" yaml:"header"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	RPC    RPCConfig    `mapstructure:"rpc" yaml:"rpc"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
}

// HeaderConfig configures the header behaviour
type HeaderConfig struct {
	SeparatorMargin int   `mapstructure:"separator_margin" yaml:"separator_margin"`
	AllowReorder    bool  `mapstructure:"allow_reorder" yaml:"allow_reorder"`
	Pinned          []int `mapstructure:"pinned" yaml:"pinned"`
	MinWidth        int   `mapstructure:"min_width" yaml:"min_width"`
	MaxWidth        int   `mapstructure:"max_width" yaml:"max_width"`
}

// LayoutConfig configures layout persistence
type LayoutConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	Name    string `mapstructure:"name" yaml:"name"`
}

// RPCConfig configures the remote control server
type RPCConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen"`
	// EventRate caps the resize notifications pushed per second
	EventRate int `mapstructure:"event_rate" yaml:"event_rate"`
}

// LogConfig configures the log file
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// UIConfig configures the terminal user interface
type UIConfig struct {
	DoubleClickMs int `mapstructure:"double_click_ms" yaml:"double_click_ms"`
}

// DoubleClick returns the double click interval
func (c UIConfig) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMs) * time.Millisecond
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data", "")
	v.SetDefault("theme", "dark")
	v.SetDefault("header.separator_margin", 2)
	v.SetDefault("header.allow_reorder", true)
	v.SetDefault("header.pinned", []int{})
	v.SetDefault("header.min_width", 4)
	v.SetDefault("header.max_width", 0)
	v.SetDefault("layout.backend", "yaml")
	v.SetDefault("layout.path", defaultLayoutPath())
	v.SetDefault("layout.name", "default")
	v.SetDefault("rpc.listen", "")
	v.SetDefault("rpc.event_rate", 30)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.double_click_ms", 400)
}

func defaultLayoutPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hdrbar-layouts.yaml"
	}
	return dir + string(os.PathSeparator) + "hdrbar" + string(os.PathSeparator) + "layouts.yaml"
}

// Init prepares v: defaults, environment variables prefixed HDRBAR_ and
// the config file. An explicit cfgFile must exist; otherwise .hdrbar.yaml
// is looked up in the home and current directories and may be absent.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix("hdrbar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".hdrbar")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations
func (c Config) Validate() error {
	switch strings.ToLower(c.Layout.Backend) {
	case "yaml", "sqlite":
	default:
		return fmt.Errorf("layout.backend must be yaml or sqlite, got %q", c.Layout.Backend)
	}

	if c.Header.SeparatorMargin <= 0 {
		return fmt.Errorf("header.separator_margin must be positive, got %d", c.Header.SeparatorMargin)
	}
	if c.Header.MinWidth < 0 {
		return fmt.Errorf("header.min_width must not be negative, got %d", c.Header.MinWidth)
	}
	if c.Header.MaxWidth != 0 && c.Header.MaxWidth < c.Header.MinWidth {
		return fmt.Errorf("header.max_width %d is below header.min_width %d", c.Header.MaxWidth, c.Header.MinWidth)
	}
	for _, idx := range c.Header.Pinned {
		if idx < 0 {
			return fmt.Errorf("header.pinned contains negative column %d", idx)
		}
	}
	if c.RPC.EventRate <= 0 {
		return fmt.Errorf("rpc.event_rate must be positive, got %d", c.RPC.EventRate)
	}
	if c.UI.DoubleClickMs <= 0 {
		return fmt.Errorf("ui.double_click_ms must be positive, got %d", c.UI.DoubleClickMs)
	}
	if c.Layout.Name == "" {
		return fmt.Errorf("layout.name must not be empty")
	}
	return nil
}
