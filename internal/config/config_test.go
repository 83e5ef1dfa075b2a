package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xqrs/dragsort"
	cfg "github.com/xqrs/dragsort/internal/config"
)

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	return tmp
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().Float64("alpha", 0, "")
	cmd.Flags().Duration("press-duration", 0, "")
	cmd.Flags().Int("row-height", 0, "")
	cmd.Flags().String("log-file", "", "")
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	c, err := cfg.LoadConfig[cfg.Config](newCommand(), cfg.Defaults(), nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Default(), c)

	drag, err := c.DragConfig()
	require.NoError(t, err)
	assert.Equal(t, dragsort.DefaultConfig(), drag)
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "custom.yaml")
	yaml := "drag:\n  alpha: 0.5\n  pickup_duration: 100ms\n  deposit_scale_x: 0.9\ngesture:\n  press_duration: 1s\nlist:\n  row_height: 2\n"
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o600))

	c, err := cfg.LoadConfig[cfg.Config](newCommand(), cfg.Defaults(), &file)
	require.NoError(t, err)

	assert.Equal(t, 0.5, c.Drag.Alpha)
	assert.Equal(t, 100*time.Millisecond, c.Drag.PickupDuration)
	assert.Equal(t, 0.9, c.Drag.DepositScaleX)
	assert.Equal(t, 1.0, c.Drag.DepositScaleY)
	assert.Equal(t, time.Second, c.Gesture.PressDuration)
	assert.Equal(t, 2, c.List.RowHeight)
	assert.True(t, c.List.Border)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := cfg.LoadConfig[cfg.Config](newCommand(), cfg.Defaults(), &file)
	assert.Error(t, err)
}

func TestLoadConfig_UserConfigDir(t *testing.T) {
	tmp := isolate(t)
	path, err := cfg.GetConfigPath()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(path))
	if filepath.Dir(filepath.Dir(path)) != tmp {
		t.Skip("user config dir does not follow XDG_CONFIG_HOME on this platform")
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	c, err := cfg.LoadConfig[cfg.Config](newCommand(), cfg.Defaults(), nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadConfig_EnvAndFlags(t *testing.T) {
	isolate(t)
	t.Setenv("DRAGSORT_DRAG_ALPHA", "0.7")
	t.Setenv("DRAGSORT_LIST_ROW_HEIGHT", "3")

	cmd := newCommand()
	require.NoError(t, cmd.Flags().Set("row-height", "4"))
	require.NoError(t, cmd.Flags().Set("log-file", "drag.log"))

	c, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0.7, c.Drag.Alpha)
	assert.Equal(t, 4, c.List.RowHeight)
	assert.Equal(t, "drag.log", c.Log.File)
}

func TestDragConfig_Invalid(t *testing.T) {
	c := cfg.Default()
	c.Drag.Alpha = 3

	_, err := c.DragConfig()
	assert.ErrorIs(t, err, dragsort.ErrInvalidConfig)
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "dragsort.yaml")

	want := cfg.Default()
	want.Drag.PickupDuration = 400 * time.Millisecond
	want.Log.File = "/tmp/dragsort.log"
	require.NoError(t, cfg.WriteConfigFile(&want, path))

	got, err := cfg.LoadConfig[cfg.Config](nil, cfg.Defaults(), &path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWatchConfig_NoFile(t *testing.T) {
	isolate(t)

	file, err := cfg.WatchConfig[cfg.Config](nil, cfg.Defaults(), nil, func(cfg.Config, error) {
		t.Error("unexpected change")
	})
	require.NoError(t, err)
	assert.Empty(t, file)
}

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "dragsort.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drag:\n  alpha: 0.5\n"), 0o600))

	changes := make(chan cfg.Config, 8)
	file, err := cfg.WatchConfig(nil, cfg.Defaults(), &path, func(c cfg.Config, err error) {
		if err == nil {
			changes <- c
		}
	})
	require.NoError(t, err)
	assert.Equal(t, path, file)

	require.NoError(t, os.WriteFile(path, []byte("drag:\n  alpha: 0.25\n"), 0o600))

	var got cfg.Config
	require.Eventually(t, func() bool {
		select {
		case got = <-changes:
			return got.Drag.Alpha == 0.25
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, got.List.RowHeight)
}
