package spec

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	// NullType is the JSON Schema type name API Gateway does not accept.
	NullType = "null"
	// DefaultType replaces a bare null type.
	DefaultType = "string"
	// NullableKey flags a schema as nullable.
	NullableKey = "x-nullable"
)

type typeNormalizer struct {
	changes []Change
}

// NormalizeTypes rewrites, in place, every `type` field of doc that holds a
// list of types or the literal "null". A list keeps its first non-null entry
// and a bare "null" becomes "string"; when null was present the enclosing
// mapping gets `x-nullable: true`. The returned changes list every rewrite.
func NormalizeTypes(doc Document) []Change {
	n := &typeNormalizer{}
	Walk(doc, n.visit)
	return n.changes
}

func (n *typeNormalizer) visit(ptr string, m map[string]any) {
	value, ok := m["type"]
	if !ok {
		return
	}

	var nullable bool
	switch t := value.(type) {
	case []any:
		remaining := lo.Filter(t, func(item any, _ int) bool {
			return item != NullType
		})
		nullable = len(remaining) != len(t)
		resolved := any(DefaultType)
		if len(remaining) > 0 {
			resolved = remaining[0]
		}
		m["type"] = resolved
		n.changes = append(n.changes, Change{
			Pointer: ptr,
			Rule:    RuleMultiType,
			Detail:  fmt.Sprintf("%v resolved to %v", t, resolved),
		})
	case string:
		if t != NullType {
			return
		}
		nullable = true
		m["type"] = DefaultType
		n.changes = append(n.changes, Change{
			Pointer: ptr,
			Rule:    RuleNullableType,
			Detail:  "null resolved to " + DefaultType,
		})
	}

	if nullable {
		m[NullableKey] = true
	}
}
