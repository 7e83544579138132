package spec

// Merge merges overlay onto base and returns the result. Values from overlay
// win: when both sides hold a mapping for the same key the two are merged
// recursively, anything else (sequences included) replaces the base value
// wholesale. Neither argument is modified.
func Merge(base, overlay Document) Document {
	merged := make(Document, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = CloneValue(value)
	}

	for key, value := range overlay {
		overlayMap, overlayIsMap := value.(map[string]any)
		baseMap, baseIsMap := merged[key].(map[string]any)
		if overlayIsMap && baseIsMap {
			merged[key] = Merge(baseMap, overlayMap)
			continue
		}
		merged[key] = CloneValue(value)
	}

	return merged
}

// Overlay replaces the top level keys of base with those of overlay without
// descending into nested mappings. Neither argument is modified.
func Overlay(base, overlay Document) Document {
	res := make(Document, len(base)+len(overlay))
	for key, value := range base {
		res[key] = CloneValue(value)
	}
	for key, value := range overlay {
		res[key] = CloneValue(value)
	}
	return res
}
