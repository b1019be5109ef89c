package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(&buf, "debug", "json")

	l.WithField("component", "test").Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	l := newWithOutput(&bytes.Buffer{}, "chatty", "text")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, ok := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 8))
	assert.Equal(t, "abcdefgh...", Truncate("abcdefghij", 8))
	assert.Equal(t, "héll...", Truncate("héllo wörld", 4))
}
