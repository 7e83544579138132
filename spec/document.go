// Package spec holds the document model of a Swagger 2.0 description and the
// structural passes that turn it into an API Gateway compatible document.
package spec

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/chenwei67/apigw/internal/docvalue"
	"github.com/mohae/deepcopy"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Document is a decoded YAML/JSON mapping. Nested mappings are
// map[string]any and sequences are []any.
type Document = map[string]any

// keyOrder is the order used when emitting mappings. Keys not listed follow
// in lexical order.
var keyOrder = []string{
	"swagger", "info", "title", "name", "in", "summary", "description", "operationId", "version",
	"host", "basePath", "schemes", "consumes", "produces", "tags", "required", "type", "format",
	"x-nullable", "items", "properties", "parameters", "schema", "responses", "security",
	"securityDefinitions", "x-google-backend", "paths", "definitions",
}

var keyRank = func() map[string]int {
	rank := make(map[string]int, len(keyOrder))
	for i, key := range keyOrder {
		rank[key] = i
	}
	return rank
}()

// Parse decodes a YAML (or JSON) document. An empty input yields an empty
// document.
func Parse(data []byte) (Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return Document{}, nil
	}
	doc, ok := docvalue.Canonical(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root must be a mapping, got %T", raw)
	}
	return doc, nil
}

// Marshal encodes doc as YAML with a stable key order and a two space indent.
func Marshal(doc Document) ([]byte, error) {
	node, err := toNode(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of doc.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	return deepcopy.Copy(doc).(Document)
}

// CloneValue returns a deep copy of an arbitrary document value.
func CloneValue(v any) any {
	return deepcopy.Copy(v)
}

// AsMap reports whether v is a document mapping.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

func orderedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := keyRank[keys[i]]
		rj, jok := keyRank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

func toNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range orderedKeys(t) {
			keyNode, err := scalarNode(key)
			if err != nil {
				return nil, err
			}
			valueNode, err := toNode(t[key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			node.Content = append(node.Content, keyNode, valueNode)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(t) == 0 {
			node.Style = yaml.FlowStyle
		}
		for i, item := range t {
			itemNode, err := toNode(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return scalarNode(docvalue.Canonical(v))
}

func scalarNode(v any) (*yaml.Node, error) {
	if m, ok := v.(map[string]any); ok {
		return toNode(m)
	}
	if s, ok := v.([]any); ok {
		return toNode(s)
	}
	if f, ok := v.(float64); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return floatNode(f), nil
	}
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}

// floatNode keeps whole floats such as 1.0 distinguishable from integers.
func floatNode(f float64) *yaml.Node {
	value := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(value, ".eE") {
		value += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value}
}
