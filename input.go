package apigw

import (
	"errors"
	"io/fs"
	"os"

	"github.com/chenwei67/apigw/spec"
)

// LoadInput reads and parses the input spec file at path.
func LoadInput(path string) (spec.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindInputNotFound, path, "", err)
		}
		return nil, newError(KindParse, path, "read file", err)
	}
	doc, err := spec.Parse(data)
	if err != nil {
		return nil, newError(KindParse, path, "", err)
	}
	return doc, nil
}

// requireFile fails with kind when path is empty or names no existing file.
func requireFile(kind Kind, path, missing string) error {
	if path == "" {
		return newError(kind, "", missing, nil)
	}
	if _, err := os.Stat(path); err != nil {
		return newError(kind, path, "", err)
	}
	return nil
}
