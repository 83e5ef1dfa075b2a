// Package config loads the settings of the dragsort command from defaults, a
// YAML file, DRAGSORT_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xqrs/dragsort"
)

type Config struct {
	Drag    Drag    `mapstructure:"drag" yaml:"drag"`
	Gesture Gesture `mapstructure:"gesture" yaml:"gesture"`
	List    List    `mapstructure:"list" yaml:"list"`
	Log     Log     `mapstructure:"log" yaml:"log"`
}

type Drag struct {
	PickupScaleX    float64       `mapstructure:"pickup_scale_x" yaml:"pickup_scale_x"`
	PickupScaleY    float64       `mapstructure:"pickup_scale_y" yaml:"pickup_scale_y"`
	DepositScaleX   float64       `mapstructure:"deposit_scale_x" yaml:"deposit_scale_x"`
	DepositScaleY   float64       `mapstructure:"deposit_scale_y" yaml:"deposit_scale_y"`
	PickupDuration  time.Duration `mapstructure:"pickup_duration" yaml:"pickup_duration"`
	DepositDuration time.Duration `mapstructure:"deposit_duration" yaml:"deposit_duration"`
	Alpha           float64       `mapstructure:"alpha" yaml:"alpha"`
}

type Gesture struct {
	PressDuration time.Duration `mapstructure:"press_duration" yaml:"press_duration"`
}

type List struct {
	RowHeight int  `mapstructure:"row_height" yaml:"row_height"`
	Border    bool `mapstructure:"border" yaml:"border"`
}

type Log struct {
	// File is where the log goes. The terminal belongs to the list, so an
	// empty file discards the log.
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"alpha":          "drag.alpha",
	"press-duration": "gesture.press_duration",
	"row-height":     "list.row_height",
	"border":         "list.border",
	"log-file":       "log.file",
	"log-level":      "log.level",
}

// Defaults returns the default value of every configuration key.
func Defaults() map[string]any {
	drag := dragsort.DefaultConfig()
	return map[string]any{
		"drag.pickup_scale_x":    drag.PickUpTransform.ScaleX,
		"drag.pickup_scale_y":    drag.PickUpTransform.ScaleY,
		"drag.deposit_scale_x":   drag.DepositTransform.ScaleX,
		"drag.deposit_scale_y":   drag.DepositTransform.ScaleY,
		"drag.pickup_duration":   drag.PickUpDuration,
		"drag.deposit_duration":  drag.DepositDuration,
		"drag.alpha":             drag.DraggingAlpha,
		"gesture.press_duration": dragsort.DefaultPressDuration,
		"list.row_height":        1,
		"list.border":            true,
		"log.file":               "",
		"log.level":              "info",
	}
}

// GetConfigPath returns the path of the user's configuration file.
func GetConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "dragsort", "dragsort.yaml"), nil
}

// LoadConfig builds a T from defaults, the configuration file, the
// environment and the flags of cmd. A missing configuration file is fine
// unless path names it explicitly.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, path *string) (T, error) {
	var c T
	v, err := newViper(cmd, defaults, path)
	if err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WatchConfig calls onChange with a freshly built T each time the
// configuration file is written. It returns the watched file, or an empty
// string when there is no file to watch. onChange runs on the watcher's
// goroutine.
func WatchConfig[T any](cmd *cobra.Command, defaults map[string]any, path *string, onChange func(T, error)) (string, error) {
	v, err := newViper(cmd, defaults, path)
	if err != nil {
		return "", err
	}
	file := v.ConfigFileUsed()
	if file == "" {
		return "", nil
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		var c T
		err := v.Unmarshal(&c)
		onChange(c, err)
	})
	v.WatchConfig()
	return file, nil
}

func newViper(cmd *cobra.Command, defaults map[string]any, path *string) (*viper.Viper, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("dragsort")
	v.SetConfigType("yaml")
	if path != nil && *path != "" {
		v.SetConfigFile(*path)
	}
	if userConfigPath, err := GetConfigPath(); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix("dragsort")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range FlagKeys {
			if flag := cmd.Flags().Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}
	return v, nil
}

// WriteConfigFile writes c as YAML to path, creating its directory.
func WriteConfigFile[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DragConfig returns the validated drag configuration.
func (c Config) DragConfig() (dragsort.Config, error) {
	config := dragsort.Config{
		PickUpTransform:  dragsort.Scale(c.Drag.PickupScaleX, c.Drag.PickupScaleY),
		DepositTransform: dragsort.Scale(c.Drag.DepositScaleX, c.Drag.DepositScaleY),
		PickUpDuration:   c.Drag.PickupDuration,
		DepositDuration:  c.Drag.DepositDuration,
		DraggingAlpha:    c.Drag.Alpha,
	}
	if err := config.Validate(); err != nil {
		return dragsort.Config{}, err
	}
	return config, nil
}

// Default returns the configuration that LoadConfig produces without any
// file, environment or flags.
func Default() Config {
	drag := dragsort.DefaultConfig()
	return Config{
		Drag: Drag{
			PickupScaleX:    drag.PickUpTransform.ScaleX,
			PickupScaleY:    drag.PickUpTransform.ScaleY,
			DepositScaleX:   drag.DepositTransform.ScaleX,
			DepositScaleY:   drag.DepositTransform.ScaleY,
			PickupDuration:  drag.PickUpDuration,
			DepositDuration: drag.DepositDuration,
			Alpha:           drag.DraggingAlpha,
		},
		Gesture: Gesture{PressDuration: dragsort.DefaultPressDuration},
		List:    List{RowHeight: 1, Border: true},
		Log:     Log{Level: "info"},
	}
}
