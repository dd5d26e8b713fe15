package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ByLCY/mathbox/config"
	htmlrenderer "github.com/ByLCY/mathbox/renderer/html"
)

const sample = `math { mfrac { mi "${top}" mn "2" } }
math { mi "y" }`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommandWritesEachFormat(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	in := filepath.Join(dir, "in.mathbox")
	require.NoError(t, os.WriteFile(in, []byte(sample), 0o644))

	for _, format := range []string{"svg", "pdf", "html"} {
		out := filepath.Join(dir, "out", "demo."+format)
		stdout, err := runCLI(t, "render", "--in", in, "--out", out, "--format", format,
			"--data", `{"top":"a"}`, "--log-level", "error")
		require.NoError(t, err, format)
		assert.Contains(t, stdout, out)

		body, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.NotEmpty(t, body, format)
	}
}

func TestRenderCommandWritesDebugPerExpression(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	in := filepath.Join(dir, "in.mathbox")
	require.NoError(t, os.WriteFile(in, []byte(sample), 0o644))

	_, err := runCLI(t, "render", "--in", in, "--out", filepath.Join(dir, "o.svg"),
		"--debug", filepath.Join(dir, "dbg", "layout.json"), "--log-level", "error")
	require.NoError(t, err)
	for _, name := range []string{"layout.0.json", "layout.1.json"} {
		_, err := os.Stat(filepath.Join(dir, "dbg", name))
		assert.NoError(t, err, name)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := runCLI(t, "render", "--in", filepath.Join(dir, "missing.mathbox"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.mathbox")
	require.NoError(t, os.WriteFile(bad, []byte(`math { mi { } `), 0o644))
	_, err = runCLI(t, "render", "--in", bad, "--out", filepath.Join(dir, "x.svg"))
	assert.Error(t, err)

	_, err = runCLI(t, "render", "--in", bad, "--format", "gif")
	assert.Error(t, err)
}

func TestLoadData(t *testing.T) {
	data, err := loadData(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, data)

	path := filepath.Join(t.TempDir(), "d.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2]`), 0o644))
	data, err = loadData("@" + path)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, data)

	_, err = loadData("{")
	assert.Error(t, err)
	data, err = loadData("")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestHTMLFormatMeasuresWithLatinModern(t *testing.T) {
	cfg := &config.Config{Render: config.RenderConfig{Format: "html"}}
	r, m := newRenderer(cfg, zap.NewNop())
	assert.IsType(t, &htmlrenderer.Renderer{}, r)
	require.NotNil(t, m)

	h, d, w, ok := m.MeasureText("x", "italic")
	require.True(t, ok)
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h+d, 0.0)
}
