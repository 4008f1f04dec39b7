package services

import (
	"boqportal/comparison"
	"boqportal/models"
)

// ToComparisonQuote converts a stored performa into the engine's input. The declared
// total is validated here, once; line items keep their stored order.
func ToComparisonQuote(p models.PerformaGorm) comparison.Quote {
	q := comparison.Quote{
		ID:          p.ID,
		VendorID:    p.VendorID,
		VendorName:  p.VendorName,
		ProjectID:   p.ProjectID,
		Category:    comparison.ParseCategory(p.Category),
		TotalAmount: comparison.ParseAmount(p.TotalAmount),
		Status:      p.Status,
		SubmittedAt: p.SubmittedAt,
		LineItems:   make([]comparison.LineItem, 0, len(p.LineItems)),
	}
	for _, li := range p.LineItems {
		var seq *int
		if li.SequenceNumber != nil {
			n := *li.SequenceNumber
			seq = &n
		}
		q.LineItems = append(q.LineItems, comparison.LineItem{
			SequenceNumber: seq,
			Description:    li.Description,
			Amount:         li.Amount,
		})
	}
	return q
}

// ToComparisonQuotes maps a slice, preserving order.
func ToComparisonQuotes(performas []models.PerformaGorm) []comparison.Quote {
	quotes := make([]comparison.Quote, 0, len(performas))
	for _, p := range performas {
		quotes = append(quotes, ToComparisonQuote(p))
	}
	return quotes
}
