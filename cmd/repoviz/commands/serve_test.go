package commands

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repoviz/repoviz/internal/config"
)

func TestObservabilityConfigMapping(t *testing.T) {
	cfg := &config.Config{
		Log: config.LogConfig{Level: "debug", JSON: true},
		OTLP: config.OTLPConfig{
			Endpoint: "localhost:4317",
			Insecure: true,
			Headers:  "authorization=Bearer tok, x-tenant=acme",
		},
	}

	obsCfg := observabilityConfig(cfg)

	assert.Equal(t, "localhost:4317", obsCfg.OTLPEndpoint)
	assert.True(t, obsCfg.OTLPInsecure)
	assert.Equal(t, map[string]string{
		"authorization": "Bearer tok",
		"x-tenant":      "acme",
	}, obsCfg.OTLPHeaders)
	assert.Equal(t, slog.LevelDebug, obsCfg.LogLevel)
	assert.True(t, obsCfg.LogJSON)
}

func TestObservabilityConfigDefaults(t *testing.T) {
	obsCfg := observabilityConfig(&config.Config{})

	assert.Empty(t, obsCfg.OTLPEndpoint)
	assert.Nil(t, obsCfg.OTLPHeaders)
	assert.Equal(t, slog.LevelInfo, obsCfg.LogLevel)
}
