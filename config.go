package craft

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CRAFT_ROUTER=path or
// CRAFT_TRANSITION_DURATION_MS=200.
const EnvPrefix = "CRAFT"

// Log levels accepted by Defaults.LogLevel.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Defaults holds the toolkit-wide settings.
type Defaults struct {
	// RootElementID is the anchor the root view controller is mounted
	// into when no root element was set.
	RootElementID string `mapstructure:"root_element_id" yaml:"root_element_id"`
	// Router is "hash" or "path". An application implementing
	// RouterProvider overrides it.
	Router string `mapstructure:"router" yaml:"router"`
	// LogLevel is DEBUG, INFO, WARN or ERROR.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// StateKey signs and seals history states. Empty generates a key per
	// context.
	StateKey string `mapstructure:"state_key" yaml:"state_key"`

	Transition TransitionDefaults `mapstructure:"transition" yaml:"transition"`
	Gesture    GestureDefaults    `mapstructure:"gesture" yaml:"gesture"`
	Modal      ModalDefaults      `mapstructure:"modal" yaml:"modal"`
}

// TransitionDefaults configure the animator.
type TransitionDefaults struct {
	DurationMs       int    `mapstructure:"duration_ms" yaml:"duration_ms"`
	Ease             string `mapstructure:"ease" yaml:"ease"`
	FallbackMarginMs int    `mapstructure:"fallback_margin_ms" yaml:"fallback_margin_ms"`
}

// Duration returns the default transition duration.
func (t TransitionDefaults) Duration() time.Duration {
	return time.Duration(t.DurationMs) * time.Millisecond
}

// FallbackMargin returns the extra wait before the fallback timer fires.
func (t TransitionDefaults) FallbackMargin() time.Duration {
	return time.Duration(t.FallbackMarginMs) * time.Millisecond
}

// GestureDefaults configure swipe recognition.
type GestureDefaults struct {
	DiffThreshold    float64 `mapstructure:"diff_threshold" yaml:"diff_threshold"`
	TimeThresholdMs  int     `mapstructure:"time_threshold_ms" yaml:"time_threshold_ms"`
	MultiThresholdMs int     `mapstructure:"multi_threshold_ms" yaml:"multi_threshold_ms"`
}

// ModalDefaults configure ModalViewController.
type ModalDefaults struct {
	MaskColor   string  `mapstructure:"mask_color" yaml:"mask_color"`
	MaskOpacity float64 `mapstructure:"mask_opacity" yaml:"mask_opacity"`
	DurationMs  int     `mapstructure:"duration_ms" yaml:"duration_ms"`
	DelayShowMs int     `mapstructure:"delay_show_ms" yaml:"delay_show_ms"`
	DelayHideMs int     `mapstructure:"delay_hide_ms" yaml:"delay_hide_ms"`
}

// NewDefaults returns the stock settings.
func NewDefaults() Defaults {
	return Defaults{
		RootElementID: "CraftRoot",
		Router:        RouterHash,
		LogLevel:      LevelInfo,
		Transition: TransitionDefaults{
			DurationMs:       150,
			Ease:             "ease-in",
			FallbackMarginMs: 50,
		},
		Gesture: GestureDefaults{
			DiffThreshold:    50,
			TimeThresholdMs:  40,
			MultiThresholdMs: 60,
		},
		Modal: ModalDefaults{
			MaskColor:   "#000",
			MaskOpacity: 0.5,
			DurationMs:  150,
			DelayShowMs: 0,
			DelayHideMs: 150,
		},
	}
}

// SetViperDefaults registers the stock settings with v.
func SetViperDefaults(v *viper.Viper) {
	d := NewDefaults()

	v.SetDefault("root_element_id", d.RootElementID)
	v.SetDefault("router", d.Router)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("state_key", d.StateKey)

	v.SetDefault("transition.duration_ms", d.Transition.DurationMs)
	v.SetDefault("transition.ease", d.Transition.Ease)
	v.SetDefault("transition.fallback_margin_ms", d.Transition.FallbackMarginMs)

	v.SetDefault("gesture.diff_threshold", d.Gesture.DiffThreshold)
	v.SetDefault("gesture.time_threshold_ms", d.Gesture.TimeThresholdMs)
	v.SetDefault("gesture.multi_threshold_ms", d.Gesture.MultiThresholdMs)

	v.SetDefault("modal.mask_color", d.Modal.MaskColor)
	v.SetDefault("modal.mask_opacity", d.Modal.MaskOpacity)
	v.SetDefault("modal.duration_ms", d.Modal.DurationMs)
	v.SetDefault("modal.delay_show_ms", d.Modal.DelayShowMs)
	v.SetDefault("modal.delay_hide_ms", d.Modal.DelayHideMs)
}

// LoadDefaults reads settings from the stock values, then the YAML file at
// path (if path is not empty), then CRAFT_* environment variables.
func LoadDefaults(path string) (Defaults, error) {
	v := viper.New()
	SetViperDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Defaults{}, fmt.Errorf("craft: read config %s: %w", path, err)
		}
	}

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return Defaults{}, fmt.Errorf("craft: decode config: %w", err)
	}
	return d, nil
}

// ParseLevel converts a LogLevel string to a slog level. Unknown values
// map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
