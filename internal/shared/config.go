package shared

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Timing TimingConfig `toml:"timing"`
	Log    LogConfig    `toml:"log"`
	UI     UIConfig     `toml:"ui"`
}

// TimingConfig contains the simulated latencies and the notification lifetime.
type TimingConfig struct {
	SubmitDelay     Duration `toml:"submit_delay"`
	DeleteDelay     Duration `toml:"delete_delay"`
	NotificationTTL Duration `toml:"notification_ttl"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UIConfig contains presentation settings for the TUI.
type UIConfig struct {
	Title  string       `toml:"title"`
	Colors ColorsConfig `toml:"colors"`
}

// ColorsConfig contains hex colors for the TUI palette.
type ColorsConfig struct {
	Title   string `toml:"title"`
	Success string `toml:"success"`
	Error   string `toml:"error"`
	Info    string `toml:"info"`
	Muted   string `toml:"muted"`
}

// Duration is a [time.Duration] that decodes from strings like "500ms" or "3s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks that durations are non-negative and the log level is known.
func (c *Config) Validate() error {
	timings := []struct {
		key string
		d   Duration
	}{
		{"timing.submit_delay", c.Timing.SubmitDelay},
		{"timing.delete_delay", c.Timing.DeleteDelay},
		{"timing.notification_ttl", c.Timing.NotificationTTL},
	}
	for _, t := range timings {
		if t.d.Duration < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, t.key)
		}
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured [log.Level], defaulting to info when unset.
func (c *Config) LogLevel() (log.Level, error) {
	if strings.TrimSpace(c.Log.Level) == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.TrimSpace(c.Log.Level))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// EncodeConfig writes c as TOML.
func EncodeConfig(w io.Writer, c *Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
