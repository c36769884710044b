package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so no user config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.IntervalSeconds)
	assert.Equal(t, ModeOnce, cfg.Mode)
	assert.Equal(t, 0, cfg.Count)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Interval())
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SYSMON_INTERVAL_SECONDS", "5")
	t.Setenv("SYSMON_MODE", " LOG ")
	t.Setenv("SYSMON_COUNT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.IntervalSeconds)
	assert.Equal(t, ModeLog, cfg.Mode)
	assert.Equal(t, 3, cfg.Count)
}

func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".sysmon")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	body := "interval_seconds: 2\nmode: live\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sysmon.yaml"), []byte(body), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.IntervalSeconds)
	assert.Equal(t, ModeLive, cfg.Mode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".sysmon")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sysmon.yaml"), []byte("interval_seconds: [\n"), 0o644))

	_, err := Load()
	assert.ErrorContains(t, err, "reading config file")
}

func TestApplyModeFlags(t *testing.T) {
	tests := []struct {
		name      string
		live, log bool
		want      Mode
		wantErr   error
	}{
		{name: "neither keeps configured mode", want: ModeOnce},
		{name: "live", live: true, want: ModeLive},
		{name: "log", log: true, want: ModeLog},
		{name: "both rejected", live: true, log: true, want: ModeOnce, wantErr: ErrConflictingModes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{IntervalSeconds: 1, Mode: ModeOnce}
			err := cfg.ApplyModeFlags(tt.live, tt.log)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, cfg.Mode)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "valid once", cfg: Config{IntervalSeconds: 1, Mode: ModeOnce}},
		{name: "valid log with count", cfg: Config{IntervalSeconds: 10, Mode: ModeLog, Count: 4}},
		{name: "zero interval", cfg: Config{IntervalSeconds: 0, Mode: ModeOnce}, wantErr: ErrInvalidInterval},
		{name: "negative interval", cfg: Config{IntervalSeconds: -3, Mode: ModeLive}, wantErr: ErrInvalidInterval},
		{name: "one day", cfg: Config{IntervalSeconds: MaxIntervalSeconds, Mode: ModeLive}},
		{name: "interval above one day", cfg: Config{IntervalSeconds: MaxIntervalSeconds + 1, Mode: ModeLog}, wantErr: ErrInvalidInterval},
		{name: "interval overflowing duration", cfg: Config{IntervalSeconds: 9_223_372_037, Mode: ModeLog}, wantErr: ErrInvalidInterval},
		{name: "negative count", cfg: Config{IntervalSeconds: 1, Mode: ModeLog, Count: -1}, wantErr: ErrInvalidCount},
		{name: "unknown mode", cfg: Config{IntervalSeconds: 1, Mode: "tail"}, wantErr: ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
