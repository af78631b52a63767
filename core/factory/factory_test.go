package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct {
	URL     string
	Timeout int
}

type sinkConf struct {
	URL     string `json:"url"`
	Timeout int    `json:"timeout_seconds"`
}

func newSinkRegistry(t *testing.T) *Registry[*sink] {
	t.Helper()
	reg := NewRegistry[*sink]()
	require.NoError(t, reg.Register("influx", func(conf map[string]any) (*sink, error) {
		var c sinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sink{URL: c.URL, Timeout: c.Timeout}, nil
	}))
	return reg
}

func TestRegistry_Create(t *testing.T) {
	reg := newSinkRegistry(t)
	inst, err := reg.Create(ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://db", "timeout_seconds": 3}})
	require.NoError(t, err)
	assert.Equal(t, "http://db", inst.URL)
	assert.Equal(t, 3, inst.Timeout)
}

// Environment overrides arrive as strings.
func TestRegistry_CreateWeaklyTyped(t *testing.T) {
	reg := newSinkRegistry(t)
	inst, err := reg.Create(ModuleConfig{Type: "influx", Conf: map[string]any{"timeout_seconds": "7"}})
	require.NoError(t, err)
	assert.Equal(t, 7, inst.Timeout)
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, reg.Register("x", func(map[string]any) (int, error) { return 2, nil }), "duplicate")
	assert.Error(t, reg.Register("y", nil), "nil factory")
	_, err := reg.Create(ModuleConfig{Type: "y"})
	assert.Error(t, err)
	assert.Equal(t, []string{"x"}, reg.Names())
}
