package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerVerboseGate(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})

	t.Run("silent by default", func(t *testing.T) {
		SetVerbose(false)
		Debug("hidden %d", 1)
		Info("hidden")
		Warn("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("prints when verbose", func(t *testing.T) {
		SetVerbose(true)
		Debug("open %s", "sesame")
		Info("note saved")
		Warn("watch failed")

		out := buf.String()
		assert.Contains(t, out, "[DEBUG] open sesame")
		assert.Contains(t, out, "[INFO] note saved")
		assert.Contains(t, out, "[WARN] watch failed")
	})
}
