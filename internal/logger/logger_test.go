package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_SilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)
	t.Cleanup(func() { SetVerbose(false) })

	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())
}

func TestLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() { SetVerbose(false) })

	Section("Search")
	Debug("loaded %d entries", 3)
	Warn("skipping %s", "page")

	out := buf.String()
	assert.Contains(t, out, "=== Search ===")
	assert.Contains(t, out, "[DEBUG] loaded 3 entries")
	assert.Contains(t, out, "[WARN] skipping page")
	assert.True(t, IsVerbose())
}
