package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "squawkbox.conf")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.ListenHost)
	assert.Equal(t, "6667", cfg.ListenPort)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfigFile(t, `
# Test config.
listen-host = 0.0.0.0
listen-port = 6697
server-name = irc.example.org
log-level = warn
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ListenHost)
	assert.Equal(t, "6697", cfg.ListenPort)
	assert.Equal(t, "irc.example.org", cfg.ServerName)
	assert.Equal(t, logrus.WarnLevel, cfg.LogLevel)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"bad port", "listen-port = not-a-port\n"},
		{"bad level", "log-level = shouting\n"},
		{"unknown key", "listen-prot = 6667\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfigFile(t, test.contents)
			_, err := loadConfig(path)
			assert.Error(t, err)
		})
	}
}
