package spec

import (
	"strconv"

	"github.com/go-openapi/jsonpointer"
)

// Visitor is called for every mapping in a document tree. ptr is the JSON
// pointer of m relative to the walk root. Changes made to m before the
// visitor returns are seen by the walk: deleted keys are not descended into.
type Visitor func(ptr string, m map[string]any)

// Walk visits every mapping reachable from root in pre-order, descending into
// nested mappings and sequences. Keys are visited in lexical order.
func Walk(root any, visit Visitor) {
	walk("", root, visit)
}

func walk(ptr string, node any, visit Visitor) {
	switch t := node.(type) {
	case map[string]any:
		visit(ptr, t)
		for _, key := range SortedKeys(t) {
			walk(ptr+"/"+jsonpointer.Escape(key), t[key], visit)
		}
	case []any:
		for i, item := range t {
			walk(ptr+"/"+strconv.Itoa(i), item, visit)
		}
	}
}

// Change records a single rewrite made by a normalization pass.
type Change struct {
	// Pointer is the JSON pointer of the rewritten mapping.
	Pointer string
	// Rule names the pass that made the change.
	Rule string
	// Detail describes the change.
	Detail string
}

const (
	RuleNullableType = "nullable-type"
	RuleMultiType    = "multi-type"
	RuleUnsupported  = "unsupported-keyword"
)

func (c Change) String() string {
	ptr := c.Pointer
	if ptr == "" {
		ptr = "/"
	}
	return c.Rule + " at " + ptr + ": " + c.Detail
}
