package spec

import (
	"github.com/samber/lo"
)

// UnsupportedKeywords are the JSON Schema keywords API Gateway rejects.
var UnsupportedKeywords = []string{
	"additionalItems",
	"patternProperties",
	"dependencies",
	"propertyNames",
	"contains",
	"const",
	"if",
	"then",
	"else",
}

// StripUnsupported deletes, in place, every key of doc named in keywords at
// any depth and returns the removals.
func StripUnsupported(doc Document, keywords []string) []Change {
	var changes []Change
	Walk(doc, func(ptr string, m map[string]any) {
		for _, key := range SortedKeys(m) {
			if !lo.Contains(keywords, key) {
				continue
			}
			delete(m, key)
			changes = append(changes, Change{
				Pointer: ptr,
				Rule:    RuleUnsupported,
				Detail:  "removed " + key,
			})
		}
	})
	return changes
}
