package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugSuppressedWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())
}

func TestDebugPrintedWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(true)
	Debug("checking %s", "abc")
	assert.Contains(t, buf.String(), "[DEBUG] checking abc")

	Info("started")
	assert.Contains(t, buf.String(), "[INFO] started")

	Warn("slow")
	assert.Contains(t, buf.String(), "[WARN] slow")
}

func TestErrorAlwaysPrinted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Error("boom: %v", "x")
	assert.Contains(t, buf.String(), "[ERROR] boom: x")
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
