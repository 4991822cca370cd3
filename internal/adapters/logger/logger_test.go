package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/adapters/logger"
)

func TestLogger_DebugSuppressedByDefault(t *testing.T) {
	t.Parallel()

	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Debug("hashing data.json")
	assert.Empty(t, buf.String())

	l.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogger_VerboseEnablesDebug(t *testing.T) {
	t.Parallel()

	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetVerbose(true)

	l.Debug("hashing data.json")
	assert.Contains(t, buf.String(), "hashing data.json")

	buf.Reset()
	l.SetVerbose(false)
	l.Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestLogger_Error(t *testing.T) {
	t.Parallel()

	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Error(errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	l.Error(nil)
	assert.Empty(t, buf.String())
}
