package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `http:
  address: ":9090"
  token: "tok"
logging:
  level: "debug"
dispatch:
  publish_events: true
  event_buffer: 16
metrics:
  sinks:
    - type: "nop"
    - type: "influx"
      conf:
        url: "http://localhost:8086"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  topic_prefix: "police/dispatch"
  qos: 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"http.address", cfg.HTTP.Address, ":9090"},
		{"http.token", cfg.HTTP.Token, "tok"},
		{"http.shutdown default", cfg.HTTP.ShutdownTimeoutSeconds, 5},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"dispatch.publish_events", cfg.Dispatch.PublishEvents, true},
		{"dispatch.event_buffer", cfg.Dispatch.EventBuffer, 16},
		{"metrics.sinks", len(cfg.Metrics.Sinks), 2},
		{"metrics.sinks[1].type", cfg.Metrics.Sinks[1].Type, "influx"},
		{"metrics.sinks[1].url", cfg.Metrics.Sinks[1].Conf["url"], "http://localhost:8086"},
		{"mqtt.enabled", cfg.MQTT.Enabled, true},
		{"mqtt.topic_prefix", cfg.MQTT.TopicPrefix, "police/dispatch"},
		{"mqtt.qos", cfg.MQTT.QoS, byte(1)},
		{"mqtt.client_id default", cfg.MQTT.ClientID, "dispatchrec"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{"http":{"address":":7070"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 64, cfg.Dispatch.EventBuffer)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "http:\n  address: \":9090\"\n")
	t.Setenv("K_HTTP__ADDRESS", ":6060")
	t.Setenv("K_DISPATCH__EVENT_BUFFER", "32")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.HTTP.Address)
	assert.Equal(t, 32, cfg.Dispatch.EventBuffer)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "logging:\n  level: info\n")
	writeFile(t, dir, ".env", "K_HTTP__TOKEN=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("K_HTTP__TOKEN") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.HTTP.Token)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.False(t, cfg.MQTT.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "config.toml", ""))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "level.yaml", "logging:\n  level: loud\n"))
	assert.ErrorContains(t, err, "logging")

	_, err = Load(writeFile(t, dir, "mqtt.yaml", "mqtt:\n  enabled: true\n"))
	assert.ErrorContains(t, err, "broker is required")

	_, err = Load(writeFile(t, dir, "sinks.yaml", "metrics:\n  sinks:\n    - conf: {}\n"))
	assert.ErrorContains(t, err, "has no type")
}
