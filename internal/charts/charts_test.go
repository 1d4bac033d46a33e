package charts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mgnrega/server/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript drops a shell script that stands in for the chart generator.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart_generator.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func newTestRenderer(scriptPath string, timeout int) *Renderer {
	cfg := &config.Config{}
	cfg.Charts.PythonPath = "/bin/sh"
	cfg.Charts.ScriptPath = scriptPath
	cfg.Charts.Timeout = timeout

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewRenderer(cfg, logger)
}

func TestGenerate(t *testing.T) {
	script := writeScript(t, `echo '{"success": true, "image": "aW1hZ2U="}'`)
	r := newTestRenderer(script, 5)

	image, err := r.Generate(context.Background(), "employment", map[string]any{"personsDemanded": 100})
	assert.NoError(t, err)
	assert.Equal(t, "aW1hZ2U=", image)
}

func TestGenerateReportedError(t *testing.T) {
	script := writeScript(t, `echo '{"success": false, "error": "matplotlib missing"}'`)
	r := newTestRenderer(script, 5)

	_, err := r.Generate(context.Background(), "works", nil)
	assert.ErrorContains(t, err, "matplotlib missing")
}

func TestGenerateInvalidOutput(t *testing.T) {
	script := writeScript(t, `echo 'Traceback (most recent call last)'`)
	r := newTestRenderer(script, 5)

	_, err := r.Generate(context.Background(), "works", nil)
	assert.ErrorContains(t, err, "invalid chart renderer output")
}

func TestGenerateNoOutput(t *testing.T) {
	script := writeScript(t, `true`)
	r := newTestRenderer(script, 5)

	_, err := r.Generate(context.Background(), "works", nil)
	assert.ErrorContains(t, err, "produced no output")
}

func TestGenerateTimeout(t *testing.T) {
	script := writeScript(t, `sleep 10`)
	r := newTestRenderer(script, 1)

	_, err := r.Generate(context.Background(), "works", nil)
	assert.ErrorContains(t, err, "timed out")
}

func TestGenerateNonZeroExit(t *testing.T) {
	script := writeScript(t, `echo 'boom' >&2; exit 3`)
	r := newTestRenderer(script, 5)

	_, err := r.Generate(context.Background(), "works", nil)
	assert.ErrorContains(t, err, "chart renderer failed")
}
