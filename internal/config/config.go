// Package config loads the small YAML configuration consumed by the CLI
// tools. The library itself (client.NewHandle) is never configured from
// this file; it takes options and environment variables directly, per
// spec.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/akaash-nigam/ccnx/types/optional"
	"github.com/goccy/go-yaml"
)

// ClientConfig is the CLI-facing configuration document.
type ClientConfig struct {
	// TransportURI selects the Face to dial: "unix:///path/to/sock",
	// "tcp://host:port", or "ws://host:port/path". Empty means fall
	// back to CCN_LOCAL_PORT resolution, same as the library default.
	TransportURI string `yaml:"transport_uri"`
	// TapPrefix is a tap capture file prefix read from the document.
	// Neither ccnpeek nor ccnpoke applies it; tap capture follows
	// CCN_TAP alone.
	TapPrefix string `yaml:"tap_prefix"`
	// Debug enables verbose diagnostic logging, overriding CCN_DEBUG.
	Debug bool `yaml:"debug"`
	// DefaultLifetimeMs overrides the Interest lifetime CLI tools put
	// in the template they build, in milliseconds. Left nil (absent
	// from the YAML document, as opposed to an explicit 0) means "use
	// whatever default the tool already falls back to" — a pointer
	// tells the difference at parse time, Lifetime below carries it
	// the rest of the way as an Optional so callers never juggle nil.
	DefaultLifetimeMs *int `yaml:"default_lifetime_ms"`
}

// Lifetime returns the configured Interest lifetime override, or an
// empty Optional if the document didn't set one.
func (c *ClientConfig) Lifetime() optional.Optional[time.Duration] {
	if c.DefaultLifetimeMs == nil {
		return optional.None[time.Duration]()
	}
	return optional.Some(time.Duration(*c.DefaultLifetimeMs) * time.Millisecond)
}

// Load reads and parses a ClientConfig from path.
func Load(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load, but returns an empty ClientConfig
// instead of an error when path does not exist, so CLI tools can treat
// "no config file" as "use library defaults".
func LoadOrDefault(path string) (*ClientConfig, error) {
	if path == "" {
		return &ClientConfig{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &ClientConfig{}, nil
	}
	return Load(path)
}
