package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:          "8080",
			Env:           "development",
			DBDriver:      "sqlite",
			DBPath:        "test.db",
			SessionSecret: "a-session-secret-at-least-32-chars-long",
			AdminEmail:    "admin@example.com",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing session secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"Missing admin email", func(c *Config) { c.AdminEmail = "" }, true},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"Sqlite without path", func(c *Config) { c.DBPath = "" }, true},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = defaultSessionSecret
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = "short"
		}, true},
		{"Production postgres with default password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBPassword = "password"
		}, true},
		{"Production with strong secret", func(c *Config) {
			c.Env = "production"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "linguaspace.db", c.DBPath)
	assert.Equal(t, "admin@linguaspace.local", c.AdminEmail)
}

func TestLoadConfig_AdminEmailNormalization(t *testing.T) {
	defer os.Unsetenv("ADMIN_EMAIL")
	defer viper.Reset()

	os.Setenv("ADMIN_EMAIL", "  Admin@Example.COM  ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", c.AdminEmail)
}
