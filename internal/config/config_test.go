// AngelaMos | 2026
// config_test.go

package config

import (
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()

	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))

	c := &Config{}
	require.NoError(t, k.Unmarshal("", c))

	c.Database.URL = "postgres://localhost/agritrace"
	c.Redis.URL = "redis://localhost:6379/0"
	return c
}

func TestDefaults(t *testing.T) {
	c := validConfig(t)

	assert.Equal(t, 5000, c.Server.Port)
	assert.Equal(t, 720*time.Hour, c.JWT.AccessTokenExpire)
	assert.Equal(t, "agritrace:events", c.Realtime.Channel)
	assert.Equal(t, []string{"http://localhost:5173"}, c.CORS.AllowedOrigins)
	assert.NoError(t, validate(c))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing database", func(c *Config) { c.Database.URL = "" }, "DATABASE_URL"},
		{"missing redis", func(c *Config) { c.Redis.URL = "" }, "REDIS_URL"},
		{"wildcard with credentials", func(c *Config) {
			c.CORS.AllowedOrigins = []string{"*"}
		}, "wildcard"},
		{"insecure otel in production", func(c *Config) {
			c.App.Environment = "production"
			c.Otel.Enabled = true
			c.Otel.Insecure = true
		}, "OTEL_INSECURE"},
		{"zero send buffer", func(c *Config) { c.Realtime.SendBuffer = 0 }, "send_buffer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig(t)
			tt.mutate(c)
			err := validate(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "ai.api_key", envKeyReplacer("GEMINI_API_KEY"))
	assert.Equal(t, "cors.allowed_origins", envKeyReplacer("CLIENT_URL"))
	assert.Equal(t, "", envKeyReplacer("HOME"))
}

func TestEnvironmentHelpers(t *testing.T) {
	c := &Config{App: AppConfig{Environment: "test"}}
	assert.True(t, c.IsTest())
	assert.False(t, c.IsProduction())

	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	assert.Equal(t, "127.0.0.1:5000", s.Address())
}
