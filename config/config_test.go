package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ByLCY/mathbox/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mathbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "svg", cfg.Render.Format)
	assert.Equal(t, layout.DefaultFontSize, cfg.Layout.FontSize)
	assert.Equal(t, layout.DefaultDelimiterShortfall, cfg.Layout.DelimiterShortfall)
	assert.Equal(t, 2, cfg.Layout.MaxScriptLevel)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  format: json
layout:
  display: true
  container_width: 20
  delimiter_growth: 2
render:
  format: html
`)
	t.Setenv("MATHBOX_LAYOUT_FONT_SIZE", "12")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "html", cfg.Render.Format)
	assert.True(t, cfg.Layout.Display)
	assert.Equal(t, 12.0, cfg.Layout.FontSize, "环境变量覆盖默认值")

	opts := cfg.LayoutOptions(nil)
	assert.True(t, opts.Display)
	assert.Equal(t, 20.0, opts.ContainerWidth)
	assert.Equal(t, 2.0, opts.DelimiterGrowth)
	assert.Equal(t, layout.DefaultErrorText, opts.ErrorText)

	logger, err := NewLogger(cfg.Logger)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: loud
render:
  format: png
layout:
  delimiter_shortfall: 1.5
`)
	_, err := Load(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.format")
	assert.Contains(t, err.Error(), "logger.level")
	assert.Contains(t, err.Error(), "delimiter_shortfall")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoggerWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathbox.log")
	var console bytes.Buffer
	logger, err := newLogger(LoggerConfig{Level: "warn", Format: "console", File: path, MaxSize: 1}, zapcore.AddSync(&console))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("missing glyph metrics", zap.String("text", "水"))
	require.NoError(t, logger.Sync())

	assert.Contains(t, console.String(), "missing glyph metrics")
	assert.NotContains(t, console.String(), "hidden")
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"msg":"missing glyph metrics"`)

	_, err = newLogger(LoggerConfig{Level: "loud"}, zapcore.AddSync(&console))
	assert.Error(t, err)
}
