package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/zevina/internal/db"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, db.DefaultURL, c.DatabaseURL)
	assert.Equal(t, "*", c.CORSOrigin)
	assert.Equal(t, 600*time.Millisecond, c.ChatReplyDelay)
	assert.Equal(t, 3*time.Second, c.PostRateInterval)
	assert.NoError(t, c.Validate())
}

func TestLoadEnv_Overrides(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := c.loadEnv(envMap(map[string]string{
		"PORT":             "9090",
		"DATABASE_URL":     "postgres://u:p@db/zevina",
		"CORS_ORIGIN":      "",
		"CHAT_REPLY_DELAY": "1s",
		"LOG_LEVEL":        "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "postgres://u:p@db/zevina", c.DatabaseURL)
	assert.Equal(t, "*", c.CORSOrigin, "empty values keep the default")
	assert.Equal(t, time.Second, c.ChatReplyDelay)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadEnv_BadDuration(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := c.loadEnv(envMap(map[string]string{"POST_RATE_INTERVAL": "soon"}))
	assert.ErrorContains(t, err, "POST_RATE_INTERVAL")
}

func TestBindFlags_OverrideEnv(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.NoError(t, c.loadEnv(envMap(map[string]string{"PORT": "9090"})))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--chat-delay", "50ms"}))

	assert.Equal(t, "9090", c.Port, "unset flag keeps env value")
	assert.Equal(t, 50*time.Millisecond, c.ChatReplyDelay)

	require.NoError(t, fs.Parse([]string{"-p", "7000"}))
	assert.Equal(t, "7000", c.Port)
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.PostRateInterval = 0
	assert.Error(t, c.Validate())

	c.LoadDefaults()
	c.Port = ""
	assert.Error(t, c.Validate())
}
