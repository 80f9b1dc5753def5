// Package config loads iwbind settings. Sources are applied in order:
// built-in defaults, the TOML file, IWBIND_* environment variables and
// finally command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of every environment variable.
const EnvPrefix = "IWBIND"

// Config holds all application configuration.
type Config struct {
	// Indicators enables the indicator feed.
	Indicators bool `toml:"indicators" envconfig:"INDICATORS"`
	// OpenWindow opens a window as soon as the loop starts.
	OpenWindow bool `toml:"window" envconfig:"WINDOW"`
	// Addr is the status server address. Empty disables the server.
	Addr string `toml:"addr" envconfig:"ADDR"`
	// BusAddress overrides the system bus.
	BusAddress string `toml:"bus_address" envconfig:"BUS_ADDRESS"`

	Mock          bool     `toml:"mock" envconfig:"MOCK"`
	MockScenario  string   `toml:"mock_scenario" envconfig:"MOCK_SCENARIO"`
	ChurnInterval Duration `toml:"churn_interval" envconfig:"CHURN_INTERVAL"`

	Trace bool `toml:"trace" envconfig:"TRACE"`
	Debug bool `toml:"debug" envconfig:"DEBUG"`

	// Path is the config file that was read, if any.
	Path string `toml:"-" ignored:"true"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Indicators:    true,
		Addr:          "127.0.0.1:8765",
		MockScenario:  "station",
		ChurnInterval: Duration{2 * time.Second},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/iwbind/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "iwbind", "config.toml")
}

// Load builds the configuration from args, usually os.Args[1:].
func Load(args []string) (*Config, error) {
	return load(args, os.Stderr)
}

func load(args []string, usage io.Writer) (*Config, error) {
	cfg := Default()

	fset := flag.NewFlagSet("iwbind", flag.ContinueOnError)
	fset.SetOutput(usage)
	path := fset.String("config", DefaultPath(), "Path to the TOML config file")
	fset.BoolVar(&cfg.Indicators, "indicators", cfg.Indicators, "Maintain the indicator feed")
	fset.BoolVar(&cfg.OpenWindow, "window", cfg.OpenWindow, "Open a window on start")
	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "Status server address (empty to disable)")
	fset.StringVar(&cfg.BusAddress, "bus", cfg.BusAddress, "D-Bus address (default system bus)")
	fset.BoolVar(&cfg.Mock, "mock", cfg.Mock, "Run against a simulated iwd")
	fset.StringVar(&cfg.MockScenario, "scenario", cfg.MockScenario, "Mock scenario: station, ap or empty")
	fset.DurationVar(&cfg.ChurnInterval.Duration, "churn", cfg.ChurnInterval.Duration, "Mock churn interval (0 disables)")
	fset.BoolVar(&cfg.Trace, "trace", cfg.Trace, "Export traces to stderr")
	fset.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	// Flags win, so remember them and apply them again after file and env.
	set := make(map[string]string)
	explicitPath := false
	fset.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitPath = true
			return
		}
		set[f.Name] = f.Value.String()
	})

	if err := readFile(cfg, *path, explicitPath); err != nil {
		return nil, err
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for name, value := range set {
		if err := fset.Set(name, value); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile merges the TOML file at path into cfg. A missing file is only an
// error when the path was given explicitly.
func readFile(cfg *Config, path string, required bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path
	return nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	if c.ChurnInterval.Duration < 0 {
		return fmt.Errorf("churn interval must not be negative")
	}
	switch c.MockScenario {
	case "station", "ap", "empty":
	default:
		return fmt.Errorf("unknown mock scenario %q", c.MockScenario)
	}
	return nil
}
