package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName = "cardview"

	defaultScale = 2
	maxScale     = 8
)

// Image protocol names accepted by image_protocol.
const (
	ProtocolAuto  = "auto"
	ProtocolKitty = "kitty"
	ProtocolSixel = "sixel"
	ProtocolNone  = "none"
)

// protocolEnv overrides image_protocol when set.
const protocolEnv = "CARDVIEW_IMAGE_PROTOCOL"

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // stack opened when none is given
	Scale         int    `koanf:"scale"`          // render upscale factor (1-8, default: 2)
	RenderWorkers int    `koanf:"render_workers"` // goroutines per render (0 = GOMAXPROCS)
	ImageProtocol string `koanf:"image_protocol"` // "auto", "kitty", "sixel", or "none"

	Log   LogConfig   `koanf:"log"`
	Cache CacheConfig `koanf:"cache"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	File  string `koanf:"file"`  // log file path (default: $XDG_STATE_HOME/cardview/cardview.log)
	Level string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
}

// CacheConfig holds the encoded frame cache configuration.
type CacheConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Dir     string `koanf:"dir"`     // default: $XDG_CACHE_HOME
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths())
}

// LoadFrom loads the given config files in order (last wins). Missing files are skipped.
func LoadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultFolder: "", // empty means use the last opened stack
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	if cfg.Cache.Dir != "" {
		cfg.Cache.Dir = expandPath(cfg.Cache.Dir)
	}
	cfg.ImageProtocol = strings.ToLower(strings.TrimSpace(cfg.ImageProtocol))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/cardview/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ~/.config/cardview/config.toml, when it differs from the XDG path
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", appName, "config.toml")
		if p != paths[0] {
			paths = append(paths, p)
		}
	}

	// 3. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetScale returns the render scale with defaults applied.
func (c *Config) GetScale() int {
	if c.Scale <= 0 || c.Scale > maxScale {
		return defaultScale
	}
	return c.Scale
}

// GetRenderWorkers returns the render worker count; zero means GOMAXPROCS.
func (c *Config) GetRenderWorkers() int {
	return max(c.RenderWorkers, 0)
}

// GetImageProtocol returns the image protocol to use. The environment
// variable CARDVIEW_IMAGE_PROTOCOL takes precedence over the config file.
func (c *Config) GetImageProtocol() string {
	p := c.ImageProtocol
	if env := strings.ToLower(strings.TrimSpace(os.Getenv(protocolEnv))); env != "" {
		p = env
	}
	switch p {
	case ProtocolKitty, ProtocolSixel, ProtocolNone:
		return p
	default:
		return ProtocolAuto
	}
}

// GetLogFile returns the log file path with defaults applied.
func (c *Config) GetLogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// GetLogLevel returns the configured log level name, "info" by default.
func (c *Config) GetLogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return strings.ToLower(c.Log.Level)
}

// CacheEnabled reports whether rendered frames are cached on disk.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}
