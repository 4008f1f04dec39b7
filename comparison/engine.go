package comparison

import "github.com/shopspring/decimal"

// Compare runs the full pipeline for one category selection: partition, union,
// alignment, ranking and totals. A nil quotes slice is an empty set.
func Compare(quotes []Quote, category string) ComparisonTable {
	selected := Partition(quotes, category)
	ranked := Rank(selected)

	rows := Align(BuildUnion(selected), ranked)
	SortRows(rows)

	table := ComparisonTable{
		Category: category,
		Rows:     rows,
		Columns:  make([]Column, 0, len(ranked)),
		Totals:   Totals(ranked),
		Anomalies: Anomalies{
			NonNumericTotals: make([]int, 0),
			MalformedItems:   make(map[int]int),
		},
	}

	for i, q := range ranked {
		col := Column{
			Rank:          i + 1,
			QuoteID:       q.ID,
			VendorID:      q.VendorID,
			VendorName:    q.VendorName,
			Category:      q.Category.Effective(),
			Status:        q.Status,
			TotalAmount:   q.TotalAmount,
			LineItemSum:   decimal.Zero,
			LineItemCount: len(q.LineItems),
		}
		for _, item := range q.LineItems {
			col.LineItemSum = col.LineItemSum.Add(item.Amount)
			if IsMalformed(item) {
				col.MalformedItems++
			}
		}
		if !q.TotalAmount.Valid() {
			table.Anomalies.NonNumericTotals = append(table.Anomalies.NonNumericTotals, q.ID)
		}
		if col.MalformedItems > 0 {
			table.Anomalies.MalformedItems[q.ID] = col.MalformedItems
		}
		table.Columns = append(table.Columns, col)
	}
	return table
}
