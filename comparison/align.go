package comparison

import "github.com/shopspring/decimal"

// Align builds one row per key holding every quote's price for that item.
// A quote that lists the same key twice contributes its first amount.
func Align(keys []UnionItemKey, quotes []Quote) []ComparisonRow {
	lookups := make([]map[UnionItemKey]decimal.Decimal, len(quotes))
	for i, q := range quotes {
		lookups[i] = priceIndex(q)
	}

	rows := make([]ComparisonRow, 0, len(keys))
	for _, key := range keys {
		row := ComparisonRow{Key: key, Amounts: make(map[int]Cell, len(quotes))}
		for i, q := range quotes {
			amount, ok := lookups[i][key]
			row.Amounts[q.ID] = Cell{Amount: amount, Present: ok}
		}
		rows = append(rows, row)
	}
	return rows
}

func priceIndex(q Quote) map[UnionItemKey]decimal.Decimal {
	index := make(map[UnionItemKey]decimal.Decimal, len(q.LineItems))
	for _, item := range q.LineItems {
		if IsMalformed(item) {
			continue
		}
		key := ResolveKey(item)
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = item.Amount
	}
	return index
}
