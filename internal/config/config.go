// Package config loads board and counter-service settings from defaults, an
// optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in [counter].backend.
const (
	BackendCountAPI = "countapi"
	BackendJSONBin  = "jsonbin"
	BackendMDNS     = "mdns"
)

// MasterKeyEnv overrides [counter].master_key so the key stays out of config files.
const MasterKeyEnv = "OVERTOURISSIMUS_MASTER_KEY"

// Duration decodes TOML strings such as "150ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Counter struct {
	Backend         string   `toml:"backend"`
	BaseURL         string   `toml:"base_url"`
	Namespace       string   `toml:"namespace"`
	Key             string   `toml:"key"`
	BinURL          string   `toml:"bin_url"`
	MasterKey       string   `toml:"master_key"`
	Timeout         Duration `toml:"timeout"`
	TeardownTimeout Duration `toml:"teardown_timeout"`
	DiscoverTimeout Duration `toml:"discover_timeout"`
	// Optimistic shows the predicted total while a flush is in flight instead of
	// the loading placeholder.
	Optimistic bool `toml:"optimistic"`
}

type Drawing struct {
	HoldDelay      Duration `toml:"hold_delay"`
	RepeatInterval Duration `toml:"repeat_interval"`
	// Generated is "view" (reset on resize) or "lifetime".
	Generated string `toml:"generated"`
}

type Server struct {
	Addr      string `toml:"addr"`
	Bin       string `toml:"bin"`
	StateFile string `toml:"state_file"`
	Advertise bool   `toml:"advertise"`
}

type Window struct {
	Title  string  `toml:"title"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Config struct {
	Counter Counter `toml:"counter"`
	Drawing Drawing `toml:"drawing"`
	Server  Server  `toml:"server"`
	Window  Window  `toml:"window"`
}

// Default returns the settings the board ships with.
func Default() *Config {
	return &Config{
		Counter: Counter{
			Backend:         BackendCountAPI,
			BaseURL:         "https://api.countapi.xyz",
			Namespace:       "overtourissimus.com",
			Key:             "touris",
			Timeout:         Duration{10 * time.Second},
			TeardownTimeout: Duration{2 * time.Second},
			DiscoverTimeout: Duration{3 * time.Second},
		},
		Drawing: Drawing{
			HoldDelay:      Duration{150 * time.Millisecond},
			RepeatInterval: Duration{18 * time.Millisecond},
			Generated:      "view",
		},
		Server: Server{
			Addr:      ":8787",
			Bin:       "touris",
			Advertise: true,
		},
		Window: Window{
			Title:  "Overtourissimus",
			Width:  1024,
			Height: 768,
		},
	}
}

// Load overlays the file at path (if any) and the environment onto Default.
// An empty path or a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if key := os.Getenv(MasterKeyEnv); key != "" {
		cfg.Counter.MasterKey = key
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Counter.Backend {
	case BackendCountAPI:
		if c.Counter.BaseURL == "" || c.Counter.Namespace == "" || c.Counter.Key == "" {
			return errors.New("config: countapi backend needs base_url, namespace and key")
		}
	case BackendJSONBin:
		if c.Counter.BinURL == "" {
			return errors.New("config: jsonbin backend needs bin_url")
		}
	case BackendMDNS:
		if c.Counter.Namespace == "" || c.Counter.Key == "" {
			return errors.New("config: mdns backend needs namespace and key")
		}
	default:
		return fmt.Errorf("config: unknown counter backend %q", c.Counter.Backend)
	}
	if c.Drawing.HoldDelay.Duration <= 0 || c.Drawing.RepeatInterval.Duration <= 0 {
		return errors.New("config: hold_delay and repeat_interval must be positive")
	}
	if c.Drawing.Generated != "view" && c.Drawing.Generated != "lifetime" {
		return fmt.Errorf("config: generated must be \"view\" or \"lifetime\", got %q", c.Drawing.Generated)
	}
	return nil
}
