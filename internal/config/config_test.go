package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("HANA_TEST_STR", "value")
	t.Setenv("HANA_TEST_INT", "42")
	t.Setenv("HANA_TEST_FLOAT", "1.5")
	t.Setenv("HANA_TEST_BAD_INT", "nope")

	assert.Equal(t, "value", envOr("HANA_TEST_STR", "def"))
	assert.Equal(t, "def", envOr("HANA_TEST_UNSET", "def"))
	assert.Equal(t, 42, mustInt("HANA_TEST_INT", 7))
	assert.Equal(t, 7, mustInt("HANA_TEST_UNSET", 7))
	assert.Equal(t, 7, mustInt("HANA_TEST_BAD_INT", 7))
	assert.Equal(t, 1.5, mustFloat("HANA_TEST_FLOAT", 2.0))
	assert.Equal(t, 2.0, mustFloat("HANA_TEST_UNSET", 2.0))
}

func TestValidate(t *testing.T) {
	good := Config{
		AgentURL:        "https://agent.example.com",
		MaxAttempts:     4,
		RetryBaseMillis: 250,
		RetryMaxMillis:  5000,
		PurgePerSecond:  2,
		PurgePageSize:   100,
	}
	require.NoError(t, validate(good))

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.AgentURL = "" }},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"inverted retry window", func(c *Config) { c.RetryMaxMillis = 100 }},
		{"zero purge rate", func(c *Config) { c.PurgePerSecond = 0 }},
		{"page size too large", func(c *Config) { c.PurgePageSize = 101 }},
		{"page size too small", func(c *Config) { c.PurgePageSize = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := good
			tc.mutate(&c)
			assert.Error(t, validate(c))
		})
	}
}

func TestStringOmitsSecrets(t *testing.T) {
	c := Config{AgentURL: "https://agent.example.com", APIToken: "super-secret-token", MaxAttempts: 4}
	s := c.String()
	assert.Contains(t, s, "agent.example.com")
	assert.False(t, strings.Contains(s, "super-secret-token"))
}
