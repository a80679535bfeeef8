package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/ritzau/network-navigator/pkg/camera"
	"github.com/spf13/pflag"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "navigator.toml"

// EnvPrefix prefixes every environment variable (e.g. NAVIGATOR_PORT=9090).
const EnvPrefix = "NAVIGATOR_"

// Config holds all configuration for the application
type Config struct {
	Document    string            `koanf:"document"`
	Port        int               `koanf:"port"`
	Theme       string            `koanf:"theme"`
	ThemeFile   string            `koanf:"theme_file"`
	Zoom        float64           `koanf:"zoom"`
	ZoomMin     float64           `koanf:"zoom_min"`
	ZoomMax     float64           `koanf:"zoom_max"`
	ZoomStep    float64           `koanf:"zoom_step"`
	Watch       bool              `koanf:"watch"`
	OpenBrowser bool              `koanf:"open"`
	Format      string            `koanf:"format"`
	Output      string            `koanf:"output"`
	Verbosity   string            `koanf:"verbosity"`
	VerboseCnt  int               `koanf:"verbose"`
	LogFormat   string            `koanf:"log_format"`
	Labels      map[string]string `koanf:"labels"`
}

// ZoomRange returns the configured slider bounds.
func (c *Config) ZoomRange() camera.Range {
	return camera.Range{Min: c.ZoomMin, Max: c.ZoomMax, Default: c.Zoom, Step: c.ZoomStep}
}

// Validate checks values that koanf cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	// The slider range is checked by the server; render accepts any valid zoom.
	if err := camera.Validate(c.Zoom); err != nil {
		errs = append(errs, fmt.Errorf("zoom: %w", err))
	}
	if err := camera.Validate(c.ZoomMin); err != nil {
		errs = append(errs, fmt.Errorf("zoom_min: %w", err))
	}
	if err := camera.Validate(c.ZoomMax); err != nil {
		errs = append(errs, fmt.Errorf("zoom_max: %w", err))
	}
	if c.ZoomMin > c.ZoomMax {
		errs = append(errs, fmt.Errorf("zoom_min %v is greater than zoom_max %v", c.ZoomMin, c.ZoomMax))
	}
	if c.ZoomStep <= 0 {
		errs = append(errs, fmt.Errorf("zoom_step must be positive, got %v", c.ZoomStep))
	}
	switch c.Format {
	case "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("format must be json or yaml, got %q", c.Format))
	}
	switch c.LogFormat {
	case "compact", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be compact or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env (.env included) > Config File > Defaults
//
// The config file is the --config flag when set, otherwise navigator.toml
// in the working directory if it exists.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"document":   "neurocovid_svnet.json",
		"port":       8080,
		"theme":      "light",
		"theme_file": "",
		"zoom":       camera.DefaultRange.Default,
		"zoom_min":   camera.DefaultRange.Min,
		"zoom_max":   camera.DefaultRange.Max,
		"zoom_step":  camera.DefaultRange.Step,
		"watch":      false,
		"open":       false,
		"format":     "json",
		"output":     "",
		"verbosity":  "",
		"verbose":    0,
		"log_format": "compact",
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path, explicit := configPath(f)
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// 3. Environment variables, after pulling in a .env file if present.
	// NAVIGATOR_THEME_FILE -> theme_file, NAVIGATOR_LABELS__code -> labels.code
	_ = godotenv.Load()
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.ProviderWithFlag(f, ".", k, flagKey(f)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func configPath(f *pflag.FlagSet) (string, bool) {
	if f != nil {
		if fl := f.Lookup("config"); fl != nil && fl.Changed {
			return fl.Value.String(), true
		}
	}
	return DefaultFile, false
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// flagKey maps --theme-file to theme_file so flags line up with file keys.
// The config flag itself is not a setting.
func flagKey(fs *pflag.FlagSet) func(*pflag.Flag) (string, interface{}) {
	return func(fl *pflag.Flag) (string, interface{}) {
		if fl.Name == "config" {
			return "", nil
		}
		return strings.ReplaceAll(fl.Name, "-", "_"), posflag.FlagVal(fs, fl)
	}
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
