package apigw

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chenwei67/apigw/spec"
	"github.com/invopop/yaml"
)

// DefaultFilename is used when no output path is given or the output path
// is a directory.
const DefaultFilename = "generator-output.yaml"

// Output writes a generated document to a file.
type Output struct {
	path string
	// workDir resolves relative paths; empty means the process working directory.
	workDir string
}

// NewOutput returns an Output targeting path. An empty path targets
// DefaultFilename in the working directory.
func NewOutput(path string) *Output {
	if path == "" {
		path = DefaultFilename
	}
	return &Output{path: path}
}

// WithWorkDir resolves relative output paths against dir.
func (o *Output) WithWorkDir(dir string) *Output {
	o.workDir = dir
	return o
}

// Resolve returns the absolute file path the document will be written to.
func (o *Output) Resolve() (string, error) {
	path := o.path
	if !filepath.IsAbs(path) {
		base := o.workDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", newError(KindWrite, o.path, "resolve working directory", err)
			}
			base = wd
		}
		path = filepath.Join(base, path)
	}

	if strings.HasSuffix(o.path, "/") || strings.HasSuffix(o.path, string(filepath.Separator)) {
		return filepath.Join(path, DefaultFilename), nil
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DefaultFilename), nil
	}
	return filepath.Clean(path), nil
}

// Save serializes doc and writes it, creating missing parent directories.
// Files ending in .json are written as JSON, anything else as YAML.
func (o *Output) Save(doc spec.Document) (string, error) {
	path, err := o.Resolve()
	if err != nil {
		return "", err
	}

	data, err := spec.Marshal(doc)
	if err != nil {
		return "", newError(KindWrite, path, "serialize document", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return "", newError(KindWrite, path, "convert document to JSON", err)
		}
		data = append(data, '\n')
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", newError(KindWrite, dir, "create directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", newError(KindWrite, path, "write file", err)
	}
	return path, nil
}
