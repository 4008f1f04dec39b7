package comparison

// BuildUnion returns the distinct keys of all line items, ordered by first
// occurrence (quotes in the given order, items in submitted order).
// Malformed items are skipped. The result is not sorted; see SortRows.
func BuildUnion(quotes []Quote) []UnionItemKey {
	seen := make(map[UnionItemKey]struct{})
	keys := make([]UnionItemKey, 0)
	for _, q := range quotes {
		for _, item := range q.LineItems {
			if IsMalformed(item) {
				continue
			}
			key := ResolveKey(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}
