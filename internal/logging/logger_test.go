package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "file", "menu.xaml")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "menu.xaml")
	assert.Contains(t, buf.String(), prefix)
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "json")
	require.NoError(t, err)

	logger.Debug("read", "size", 3)
	assert.Contains(t, buf.String(), `"msg":"read"`)
	assert.Contains(t, buf.String(), `"size":3`)
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	_, err := New(nil, "loud", "text")
	assert.Error(t, err)

	_, err = New(nil, "info", "xml")
	assert.Error(t, err)
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))

	logger, err := New(&bytes.Buffer{}, "info", "")
	require.NoError(t, err)
	assert.Same(t, logger, OrDiscard(logger))
}
