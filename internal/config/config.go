// Package config loads gantt settings from defaults, a YAML file, GANTT_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/gantt/internal/hierarchy"
	"github.com/alexanderramin/gantt/internal/interaction"
	"github.com/alexanderramin/gantt/internal/position"
	"github.com/alexanderramin/gantt/internal/timeline"
	"github.com/alexanderramin/gantt/internal/window"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	FileName    = "gantt.yaml"
	FileNameAlt = "gantt.yml"
	EnvPrefix   = "GANTT_"
)

type Config struct {
	DB          string            `koanf:"db"`
	Scale       ScaleConfig       `koanf:"scale"`
	Layout      LayoutConfig      `koanf:"layout"`
	Interaction InteractionConfig `koanf:"interaction"`
	Log         LogConfig         `koanf:"log"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

type ScaleConfig struct {
	Mode  string `koanf:"mode"`
	Weeks int    `koanf:"weeks"`
}

type LayoutConfig struct {
	PixelWidth      float64    `koanf:"pixel_width"`
	MinVisibleWidth float64    `koanf:"min_visible_width"`
	HandleWidth     float64    `koanf:"handle_width"`
	Rows            RowsConfig `koanf:"rows"`
}

type RowsConfig struct {
	Header    float64 `koanf:"header"`
	Stage     float64 `koanf:"stage"`
	Task      float64 `koanf:"task"`
	Milestone float64 `koanf:"milestone"`
}

type InteractionConfig struct {
	ClickThreshold float64 `koanf:"click_threshold"`
	AllowCompleted bool    `koanf:"allow_completed"`
}

type LogConfig struct {
	Enabled bool `koanf:"enabled"`
}

// envKeys maps GANTT_-stripped environment names to config keys.
var envKeys = map[string]string{
	"DB":                "db",
	"SCALE":             "scale.mode",
	"SCALE_WEEKS":       "scale.weeks",
	"PIXEL_WIDTH":       "layout.pixel_width",
	"MIN_VISIBLE_WIDTH": "layout.min_visible_width",
	"HANDLE_WIDTH":      "layout.handle_width",
	"ROW_HEADER":        "layout.rows.header",
	"ROW_STAGE":         "layout.rows.stage",
	"ROW_TASK":          "layout.rows.task",
	"ROW_MILESTONE":     "layout.rows.milestone",
	"CLICK_THRESHOLD":   "interaction.click_threshold",
	"ALLOW_COMPLETED":   "interaction.allow_completed",
	"LOG":               "log.enabled",
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":              "db",
	"scale":           "scale.mode",
	"weeks":           "scale.weeks",
	"width":           "layout.pixel_width",
	"allow-completed": "interaction.allow_completed",
	"verbose":         "log.enabled",
}

// DefaultDBPath is ~/.gantt/gantt.db, or a relative path when the home
// directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gantt", "gantt.db")
	}
	return filepath.Join(home, ".gantt", "gantt.db")
}

func defaults() map[string]any {
	heights := hierarchy.DefaultRowHeights()
	return map[string]any{
		"db":                          DefaultDBPath(),
		"scale.mode":                  "fit_all",
		"scale.weeks":                 0,
		"layout.pixel_width":          1000.0,
		"layout.min_visible_width":    position.DefaultMinVisibleWidth,
		"layout.handle_width":         timeline.DefaultHandleWidth,
		"layout.rows.header":          heights.Header,
		"layout.rows.stage":           heights.Stage,
		"layout.rows.task":            heights.Task,
		"layout.rows.milestone":       heights.Milestone,
		"interaction.click_threshold": interaction.DefaultClickThreshold,
		"interaction.allow_completed": false,
		"log.enabled":                 false,
	}
}

// Load reads the layered configuration. cfgFile may be empty, in which case
// gantt.yaml or gantt.yml in the working directory is used when present.
// Only flags that were explicitly set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[strings.TrimPrefix(s, EnvPrefix)]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.FileUsed = used
	cfg.DB = expandHome(cfg.DB)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{FileName, FileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.DB == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if _, err := c.ScaleMode(); err != nil {
		errs = append(errs, err)
	}
	if c.Layout.PixelWidth <= 0 {
		errs = append(errs, fmt.Errorf("layout.pixel_width must be positive, got %v", c.Layout.PixelWidth))
	}
	if c.Layout.MinVisibleWidth < 0 || c.Layout.HandleWidth < 0 || c.Interaction.ClickThreshold < 0 {
		errs = append(errs, errors.New("widths and thresholds cannot be negative"))
	}
	r := c.Layout.Rows
	if r.Header <= 0 || r.Stage <= 0 || r.Task <= 0 || r.Milestone <= 0 {
		errs = append(errs, errors.New("layout.rows heights must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ScaleMode resolves scale.mode, using scale.weeks when it is set and the
// mode names no preset of its own.
func (c *Config) ScaleMode() (window.ScaleMode, error) {
	mode := strings.ToLower(strings.TrimSpace(c.Scale.Mode))
	if c.Scale.Weeks > 0 && (mode == "" || mode == "weeks" || mode == string(window.ScaleFixedWeeks)) {
		return window.FixedWeeks(c.Scale.Weeks), nil
	}
	m, err := window.ParseScale(mode)
	if err != nil {
		return window.ScaleMode{}, fmt.Errorf("scale.mode: %w", err)
	}
	return m, nil
}

// RowHeights converts layout.rows.
func (c *Config) RowHeights() hierarchy.RowHeights {
	r := c.Layout.Rows
	return hierarchy.RowHeights{Header: r.Header, Stage: r.Stage, Task: r.Task, Milestone: r.Milestone}
}

// TimelineOptions builds orchestrator options from the configuration.
func (c *Config) TimelineOptions() timeline.Options {
	opts := timeline.DefaultOptions()
	if m, err := c.ScaleMode(); err == nil {
		opts.Scale = m
	}
	opts.PixelWidth = c.Layout.PixelWidth
	opts.Heights = c.RowHeights()
	opts.Position = position.Options{MinVisibleWidth: c.Layout.MinVisibleWidth}
	opts.HandleWidth = c.Layout.HandleWidth
	opts.Interaction = interaction.Config{
		ClickThreshold: c.Interaction.ClickThreshold,
		AllowCompleted: c.Interaction.AllowCompleted,
	}
	return opts
}
