package comparison

// Partition returns the quotes whose effective category equals category.
// An empty category selects every quote. Input order is preserved.
func Partition(quotes []Quote, category string) []Quote {
	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if category == "" || q.Category.Effective() == category {
			out = append(out, q)
		}
	}
	return out
}

// Categories lists the distinct effective categories in first-seen order.
func Categories(quotes []Quote) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, q := range quotes {
		name := q.Category.Effective()
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
