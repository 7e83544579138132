package spec

import (
	"regexp"
	"strings"

	"github.com/chenwei67/apigw/internal/docvalue"
	"github.com/go-openapi/jsonpointer"
	"github.com/samber/lo"
)

// pathParamRegex matches path template placeholders like {petId}.
var pathParamRegex = regexp.MustCompile(`\{(\w+)\}`)

// ExtractPathParams returns the placeholder names of a path template in
// order of appearance, duplicates included.
// e.g. "/pets/{petId}/owners/{ownerId}" -> ["petId", "ownerId"]
func ExtractPathParams(path string) []string {
	matches := pathParamRegex.FindAllStringSubmatch(path, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1])
	}
	return names
}

// Parameter is a non-body Swagger 2.0 parameter.
type Parameter struct {
	Name     string `yaml:"name"`
	In       string `yaml:"in"`
	Required bool   `yaml:"required"`
	Type     string `yaml:"type,omitempty"`
}

// PathParam returns the parameter synthesized for an undeclared placeholder.
func PathParam(name string) Document {
	param := Parameter{Name: name, In: "path", Required: true, Type: "string"}
	return docvalue.Canonical(param).(map[string]any)
}

// MissingPathParams returns a parameter for every distinct placeholder of
// path that has no `in: path` entry with the same name in any of the
// declared parameter lists.
func MissingPathParams(path string, declared ...[]any) []any {
	var missing []any
	for _, name := range lo.Uniq(ExtractPathParams(path)) {
		if hasPathParam(name, declared...) {
			continue
		}
		missing = append(missing, PathParam(name))
	}
	return missing
}

func hasPathParam(name string, lists ...[]any) bool {
	for _, params := range lists {
		for _, item := range params {
			param, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if param["in"] == "path" && param["name"] == name {
				return true
			}
		}
	}
	return false
}

// ResolveParameterRefs returns params with every local `$ref` entry replaced
// by the parameter it points to in root. Entries that cannot be resolved are
// returned unchanged.
func ResolveParameterRefs(root Document, params []any) []any {
	resolved := make([]any, 0, len(params))
	for _, item := range params {
		resolved = append(resolved, resolveRef(root, item))
	}
	return resolved
}

func resolveRef(root Document, item any) any {
	param, ok := item.(map[string]any)
	if !ok {
		return item
	}
	ref, ok := param["$ref"].(string)
	if !ok || !strings.HasPrefix(ref, "#/") {
		return item
	}
	ptr, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return item
	}
	var target any = root
	for _, token := range ptr.DecodedTokens() {
		m, ok := target.(map[string]any)
		if !ok {
			return item
		}
		if target, ok = m[token]; !ok || target == nil {
			return item
		}
	}
	return target
}
