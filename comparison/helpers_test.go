package comparison

import "github.com/shopspring/decimal"

func seq(n int) *int {
	return &n
}

func item(n *int, desc string, amount string) LineItem {
	return LineItem{SequenceNumber: n, Description: desc, Amount: decimal.RequireFromString(amount)}
}

func quote(id int, vendor string, category string, total string, items ...LineItem) Quote {
	return Quote{
		ID:          id,
		VendorID:    id * 10,
		VendorName:  vendor,
		ProjectID:   1,
		Category:    NamedCategory(category),
		TotalAmount: ParseAmount(total),
		Status:      StatusPending,
		LineItems:   items,
	}
}
