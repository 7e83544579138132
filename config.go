package apigw

import (
	"os"

	"github.com/chenwei67/apigw/internal/docvalue"
	"github.com/chenwei67/apigw/spec"
	"github.com/knadh/koanf"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
)

// keyDelim separates the segments of a config key. Document keys that
// contain a dot cannot be addressed.
const keyDelim = "."

// Source is a single layer of configuration.
type Source interface {
	// Lookup resolves a dotted key. ok is false when any segment is missing
	// or the value is null.
	Lookup(key string) (value any, ok bool)
}

type koanfSource struct {
	k *koanf.Koanf
}

func (s *koanfSource) Lookup(key string) (any, bool) {
	v := s.k.Get(key)
	if v == nil {
		return nil, false
	}
	return docvalue.Canonical(v), true
}

// DocumentSource returns a Source reading from an in-memory document.
func DocumentSource(doc spec.Document) (Source, error) {
	if doc == nil {
		doc = spec.Document{}
	}
	k := koanf.New(keyDelim)
	if err := k.Load(confmap.Provider(doc, ""), nil); err != nil {
		return nil, err
	}
	return &koanfSource{k: k}, nil
}

// FileSource returns a Source reading from a YAML file.
func FileSource(path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, newError(KindConfigNotFound, path, "", err)
	}
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, newError(KindParse, path, "", err)
	}
	return &koanfSource{k: k}, nil
}

// Config resolves keys against an ordered list of sources; the first source
// holding a value wins.
type Config struct {
	sources []Source
}

// NewConfig layers the explicit config document over the input spec.
func NewConfig(config, inputSpec spec.Document) (*Config, error) {
	explicit, err := DocumentSource(config)
	if err != nil {
		return nil, err
	}
	input, err := DocumentSource(inputSpec)
	if err != nil {
		return nil, err
	}
	return NewConfigFromSources(explicit, input), nil
}

// LoadConfig reads the config file at path and layers it over the input spec.
func LoadConfig(path string, inputSpec spec.Document) (*Config, error) {
	explicit, err := FileSource(path)
	if err != nil {
		return nil, err
	}
	input, err := DocumentSource(inputSpec)
	if err != nil {
		return nil, err
	}
	return NewConfigFromSources(explicit, input), nil
}

// NewConfigFromSources returns a Config querying sources in order.
func NewConfigFromSources(sources ...Source) *Config {
	return &Config{sources: sources}
}

// Get returns the value stored under the dotted key in the first source that
// has one.
func (c *Config) Get(key string) (any, bool) {
	for _, source := range c.sources {
		if v, ok := source.Lookup(key); ok {
			return v, true
		}
	}
	return nil, false
}

// GetMap returns the mapping stored under key, or an empty mapping when the
// key is absent or holds something else.
func (c *Config) GetMap(key string) spec.Document {
	v, _ := c.Get(key)
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return spec.Document{}
}
