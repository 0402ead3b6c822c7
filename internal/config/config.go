// Package config loads the calc command's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "CALC_CONFIG"

// Config holds the complete command configuration.
type Config struct {
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Format is the fmt verb used for results, e.g. "%g" or "%.2f".
	Format string `toml:"format"`
	// Echo prints the postfix form of each expression before its result.
	Echo bool `toml:"echo"`
	// Color styles errors for terminals.
	Color *bool `toml:"color"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load loads configuration from a TOML file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the file named by CALC_CONFIG, or
// else from the first default location that exists. If there is no config
// file at all, the result is Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched for a config file, in order.
func DefaultPaths() []string {
	paths := []string{"./calc.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "calc", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration.
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "%g"
	}
	if c.Output.Color == nil {
		t := true
		c.Output.Color = &t
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := ValidateFormat(c.Output.Format); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// ValidateFormat checks that s holds exactly one floating-point fmt verb.
// Literal text around the verb and %% escapes are allowed.
func ValidateFormat(s string) error {
	verbs := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		i++
		// Skip flags, width, and precision.
		for i < len(s) && strings.IndexByte("+-# 0123456789.", s[i]) >= 0 {
			i++
		}
		if i >= len(s) {
			return fmt.Errorf("output format %q ends in an incomplete verb", s)
		}
		switch s[i] {
		case '%':
			continue
		case 'b', 'e', 'E', 'f', 'F', 'g', 'G', 'x', 'X', 'v':
			verbs++
		default:
			return fmt.Errorf("output format %q uses %%%c, which is not a float verb", s, s[i])
		}
	}
	if verbs != 1 {
		return fmt.Errorf("output format %q must have exactly one verb, has %d", s, verbs)
	}
	return nil
}

// ColorEnabled reports whether errors should be styled.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}
