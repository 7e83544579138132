package apigw

import (
	"fmt"
	"strings"

	"github.com/chenwei67/apigw/internal/docvalue"
	"github.com/chenwei67/apigw/spec"
)

// SwaggerVersion is the only input version accepted.
const SwaggerVersion = "2.0"

// State is the stage a Generator has reached.
type State int

const (
	StateCreated State = iota
	StateValidated
	StateGenerated
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateValidated:
		return "validated"
	case StateGenerated:
		return "generated"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}

type response struct {
	Description string  `yaml:"description"`
	Schema      *schema `yaml:"schema,omitempty"`
}

type schema struct {
	Type string `yaml:"type"`
}

// DefaultResponses returns the response block used when the input responses
// are not preserved.
func DefaultResponses() spec.Document {
	responses := map[string]response{
		"200": {Description: "Successful response", Schema: &schema{Type: "object"}},
	}
	return docvalue.Canonical(responses).(map[string]any)
}

var defaultMediaTypes = []any{"application/json"}

// Generator turns one Swagger 2.0 document into an API Gateway spec. A
// Generator is single use and must not be shared between goroutines.
type Generator struct {
	input  spec.Document
	config *Config

	host              string
	backendHost       string
	preserveResponses bool

	defaultResponses spec.Document
	unsupported      []string

	state   State
	output  spec.Document
	changes []spec.Change
}

// NewGenerator returns a Generator for input, resolving settings through
// config.
func NewGenerator(input spec.Document, config *Config) *Generator {
	return &Generator{
		input:            input,
		config:           config,
		defaultResponses: DefaultResponses(),
		unsupported:      append([]string(nil), spec.UnsupportedKeywords...),
	}
}

// WithHost sets the `host` written to the output.
func (g *Generator) WithHost(host string) *Generator {
	g.host = host
	return g
}

// WithBackendHost forces `x-google-backend.address` on the document and on
// every operation.
func (g *Generator) WithBackendHost(host string) *Generator {
	g.backendHost = host
	return g
}

// WithPreserveResponses keeps the input responses instead of replacing them
// with the default block.
func (g *Generator) WithPreserveResponses(preserve bool) *Generator {
	g.preserveResponses = preserve
	return g
}

// WithDefaultResponses replaces the response block used when responses are
// not preserved.
func (g *Generator) WithDefaultResponses(responses spec.Document) *Generator {
	g.defaultResponses = spec.Clone(responses)
	return g
}

// WithUnsupportedKeywords replaces the keywords removed from schemas.
func (g *Generator) WithUnsupportedKeywords(keywords ...string) *Generator {
	g.unsupported = append([]string(nil), keywords...)
	return g
}

// State returns the stage the generator has reached.
func (g *Generator) State() State {
	return g.state
}

// Changes returns the rewrites made by the normalization passes.
func (g *Generator) Changes() []spec.Change {
	return g.changes
}

// Output returns the generated document, nil before Generate succeeds.
func (g *Generator) Output() spec.Document {
	return g.output
}

// Validate checks that the input declares `swagger: "2.0"`.
func (g *Generator) Validate() error {
	version, ok := g.input["swagger"].(string)
	if !ok || version != SwaggerVersion {
		return newError(KindInvalidInput, "",
			`the input spec file is not a valid Swagger 2.0 spec file. Missing or invalid "swagger" key`, nil)
	}
	if g.state < StateValidated {
		g.state = StateValidated
	}
	return nil
}

// Generate builds the output document.
func (g *Generator) Generate() (spec.Document, error) {
	if g.state == StateCreated {
		if err := g.Validate(); err != nil {
			return nil, err
		}
	}

	out := g.baseSpec()
	out["definitions"] = g.definitions()
	out["paths"] = g.paths()

	changes := spec.NormalizeTypes(out)
	changes = append(changes, spec.StripUnsupported(out, g.unsupported)...)

	g.output = out
	g.changes = changes
	g.state = StateGenerated
	return out, nil
}

// Save writes the generated document through out and returns the path it
// was written to.
func (g *Generator) Save(out *Output) (string, error) {
	if g.state < StateGenerated {
		return "", fmt.Errorf("cannot save a generator in state %s", g.state)
	}
	path, err := out.Save(g.output)
	if err != nil {
		return "", err
	}
	g.state = StateSaved
	return path, nil
}

func (g *Generator) baseSpec() spec.Document {
	out := spec.Document{
		"swagger": SwaggerVersion,
		"info": map[string]any{
			"title":       g.get("info.title", nil),
			"description": g.get("info.description", ""),
			"version":     g.get("info.version", nil),
		},
		"basePath": g.get("basePath", "/"),
		"schemes":  []any{"https"},
		"produces": g.get("produces", defaultMediaTypes),
		"consumes": g.get("consumes", defaultMediaTypes),
	}
	if g.host != "" {
		out["host"] = g.host
	}
	for _, key := range []string{"x-google-backend", "securityDefinitions"} {
		if v, ok := g.config.Get(key); ok {
			out[key] = v
		}
	}
	g.forceBackendAddress(out)
	return out
}

func (g *Generator) get(key string, def any) any {
	if v, ok := g.config.Get(key); ok {
		return v
	}
	return spec.CloneValue(def)
}

func (g *Generator) forceBackendAddress(m map[string]any) {
	if g.backendHost == "" {
		return
	}
	backend, ok := m["x-google-backend"].(map[string]any)
	if !ok {
		backend = map[string]any{}
	}
	backend["address"] = g.backendHost
	m["x-google-backend"] = backend
}

func (g *Generator) definitions() spec.Document {
	defs, _ := spec.AsMap(g.input["definitions"])
	out := make(spec.Document, len(defs))
	for name, def := range defs {
		out[name] = spec.CloneValue(def)
	}
	return out
}

func (g *Generator) paths() spec.Document {
	paths, _ := spec.AsMap(g.input["paths"])
	out := make(spec.Document, len(paths))
	for path, item := range paths {
		methods, ok := spec.AsMap(item)
		if !ok {
			out[path] = spec.CloneValue(item)
			continue
		}
		pathParams, _ := methods["parameters"].([]any)
		outItem := make(spec.Document, len(methods))
		for method, value := range methods {
			methodSpec, ok := spec.AsMap(value)
			if !ok || !isOperation(method) {
				outItem[method] = spec.CloneValue(value)
				continue
			}
			outItem[method] = g.operation(path, method, methodSpec, pathParams)
		}
		out[path] = outItem
	}
	return out
}

func isOperation(key string) bool {
	return key != "parameters" && key != "$ref" && !strings.HasPrefix(key, "x-")
}

func (g *Generator) operation(path, method string, in spec.Document, pathParams []any) spec.Document {
	defaults := g.config.GetMap("path-defaults")
	override := g.config.GetMap("path-overrides." + path + "." + method)
	op := spec.Merge(spec.Overlay(defaults, override), in)

	g.forceBackendAddress(op)

	params, _ := op["parameters"].([]any)
	declared := spec.ResolveParameterRefs(g.input, params)
	pathLevel := spec.ResolveParameterRefs(g.input, pathParams)
	if missing := spec.MissingPathParams(path, declared, pathLevel); len(missing) > 0 {
		op["parameters"] = append(params, missing...)
	}

	if _, ok := op["responses"]; !ok || !g.preserveResponses {
		op["responses"] = spec.Clone(g.defaultResponses)
	}
	return op
}
