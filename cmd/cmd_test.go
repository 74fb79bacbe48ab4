package cmd

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPasswordLine(t *testing.T) {
	pw, err := readPasswordLine(strings.NewReader("s3cret\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	pw, err = readPasswordLine(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	pw, err = readPasswordLine(strings.NewReader("windows\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "windows", pw)

	_, err = readPasswordLine(strings.NewReader("\n"))
	assert.Error(t, err)
}

func TestGenerateSessionKey(t *testing.T) {
	a, err := generateSessionKey()
	require.NoError(t, err)
	b, err := generateSessionKey()
	require.NoError(t, err)

	raw, err := hex.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, sessionKeyBytes)
	assert.NotEqual(t, a, b)
}

func TestSetLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "", "bogus"} {
		assert.NotPanics(t, func() { setLogLevel(level) })
	}
	setLogLevel("info")
}
