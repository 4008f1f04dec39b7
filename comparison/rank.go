package comparison

import "sort"

// Rank returns the quotes ordered by declared total, cheapest first. Ties keep
// their input order. Non-numeric totals rank as zero.
func Rank(quotes []Quote) []Quote {
	ranked := make([]Quote, len(quotes))
	copy(ranked, quotes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalAmount.SortValue().LessThan(ranked[j].TotalAmount.SortValue())
	})
	return ranked
}

// Totals maps each quote id to its vendor-declared total, unmodified.
func Totals(quotes []Quote) map[int]Amount {
	totals := make(map[int]Amount, len(quotes))
	for _, q := range quotes {
		totals[q.ID] = q.TotalAmount
	}
	return totals
}

// SortRows orders rows by sequence number. Rows without one go last and keep
// their relative order.
func SortRows(rows []ComparisonRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Key, rows[j].Key
		if a.HasSeq != b.HasSeq {
			return a.HasSeq
		}
		if !a.HasSeq {
			return false
		}
		return a.Seq < b.Seq
	})
}
