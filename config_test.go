package apigw

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chenwei67/apigw/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_HostFallback(t *testing.T) {
	tests := []struct {
		name     string
		config   spec.Document
		input    spec.Document
		expected any
		found    bool
	}{
		{
			name:     "config only",
			config:   spec.Document{"host": "config.example.com"},
			input:    spec.Document{},
			expected: "config.example.com",
			found:    true,
		},
		{
			name:     "input only",
			config:   spec.Document{},
			input:    spec.Document{"host": "input.example.com"},
			expected: "input.example.com",
			found:    true,
		},
		{
			name:     "both prefers config",
			config:   spec.Document{"host": "config.example.com"},
			input:    spec.Document{"host": "input.example.com"},
			expected: "config.example.com",
			found:    true,
		},
		{
			name:   "neither",
			config: spec.Document{},
			input:  spec.Document{},
			found:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.config, tc.input)
			require.NoError(t, err)

			v, ok := cfg.Get("host")
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestConfig_NestedLookup(t *testing.T) {
	cfg, err := NewConfig(
		spec.Document{
			"info": map[string]any{"title": "From config", "description": nil},
			"path-overrides": map[string]any{
				"/users/{id}": map[string]any{
					"get": map[string]any{"summary": "X"},
				},
			},
		},
		spec.Document{
			"info": map[string]any{"title": "From input", "version": "1.2.3", "description": "input description"},
		},
	)
	require.NoError(t, err)

	title, _ := cfg.Get("info.title")
	assert.Equal(t, "From config", title)

	version, ok := cfg.Get("info.version")
	assert.True(t, ok, "a miss in the config falls through to the input spec")
	assert.Equal(t, "1.2.3", version)

	description, _ := cfg.Get("info.description")
	assert.Equal(t, "input description", description, "null counts as absent")

	summary, ok := cfg.Get("path-overrides./users/{id}.get.summary")
	assert.True(t, ok)
	assert.Equal(t, "X", summary)

	assert.Equal(t, spec.Document{"summary": "X"}, cfg.GetMap("path-overrides./users/{id}.get"))

	_, ok = cfg.Get("info.title.deeper")
	assert.False(t, ok, "no partial matches")
	_, ok = cfg.Get("missing.key")
	assert.False(t, ok)
}

func TestConfig_GetMap(t *testing.T) {
	cfg, err := NewConfig(spec.Document{"basePath": "/v1"}, nil)
	require.NoError(t, err)

	assert.Equal(t, spec.Document{}, cfg.GetMap("path-defaults"))
	assert.Equal(t, spec.Document{}, cfg.GetMap("basePath"))
}

func TestConfig_ReturnsCopies(t *testing.T) {
	config := spec.Document{"path-defaults": map[string]any{"tags": []any{"a"}}}
	cfg, err := NewConfig(config, nil)
	require.NoError(t, err)

	m := cfg.GetMap("path-defaults")
	m["tags"] = []any{"changed"}

	assert.Equal(t, spec.Document{"tags": []any{"a"}}, cfg.GetMap("path-defaults"))
	assert.Equal(t, []any{"a"}, config["path-defaults"].(map[string]any)["tags"])
}

func TestConfig_SourceOrder(t *testing.T) {
	first, err := DocumentSource(spec.Document{"a": 1})
	require.NoError(t, err)
	second, err := DocumentSource(spec.Document{"a": 2, "b": 3})
	require.NoError(t, err)

	cfg := NewConfigFromSources(first, second)
	a, _ := cfg.Get("a")
	b, _ := cfg.Get("b")
	assert.Equal(t, 1, a)
	assert.Equal(t, 3, b)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("info:\n  title: Gateway\npath-defaults:\n  responses:\n    200:\n      description: ok\n"), 0o644))

		cfg, err := LoadConfig(path, spec.Document{"info": map[string]any{"version": "9"}})
		require.NoError(t, err)

		title, _ := cfg.Get("info.title")
		version, _ := cfg.Get("info.version")
		assert.Equal(t, "Gateway", title)
		assert.Equal(t, "9", version)
		assert.Equal(t, map[string]any{"description": "ok"}, cfg.GetMap("path-defaults.responses")["200"])
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"), nil)
		assert.True(t, errors.Is(err, ErrConfigNotFound))
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("info: [unclosed\n"), 0o644))

		_, err := LoadConfig(path, nil)
		assert.True(t, errors.Is(err, ErrParse))
	})
}
