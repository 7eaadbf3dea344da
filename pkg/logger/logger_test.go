package logger

import (
	"os"
	"path/filepath"
	"testing"

	"brainforge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		level string
		want  zap.AtomicLevel
	}{
		{"release defaults to info", "release", "", zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"debug mode", "debug", "", zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"explicit level wins", "debug", "warn", zap.NewAtomicLevelAt(zap.WarnLevel)},
		{"unknown level falls back", "release", "loud", zap.NewAtomicLevelAt(zap.InfoLevel)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Server: config.ServerConfig{Mode: tc.mode}, Log: config.LogConfig{Level: tc.level}}
			assert.Equal(t, tc.want.Level(), Level(cfg))
		})
	}
}

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.log")
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Log:    config.LogConfig{Path: path, MaxSizeMB: 1},
	}

	log := New(cfg)
	log.Info("course loaded", zap.String("course_id", "c1"))
	log.Debug("dropped")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := gjson.ParseBytes(data)
	assert.Equal(t, "course loaded", lines.Get("msg").String())
	assert.Equal(t, "c1", lines.Get("course_id").String())
	assert.Equal(t, "brainforge", lines.Get("logger").String())
	assert.NotContains(t, string(data), "dropped")
}
