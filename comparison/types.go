// Package comparison builds the vendor quote comparison matrix for a project.
//
// Every function here is pure: inputs are read-only snapshots, results are freshly
// allocated and nothing is cached between calls, so the package is safe to call
// concurrently from many requests.
package comparison

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is the effective category of a quote submitted without one.
const DefaultCategory = "General"

// Quote statuses
const (
	StatusPending     = "PENDING"
	StatusUnderReview = "UNDER_REVIEW"
	StatusApproved    = "APPROVED"
	StatusRejected    = "REJECTED"
	StatusExpired     = "EXPIRED"
)

// Category is either a named category or the default one.
type Category struct {
	name string
	set  bool
}

// NamedCategory returns a named category. An empty name yields the default category.
func NamedCategory(name string) Category {
	if name == "" {
		return Category{}
	}
	return Category{name: name, set: true}
}

// ParseCategory converts a nullable stored category.
func ParseCategory(raw *string) Category {
	if raw == nil {
		return Category{}
	}
	return NamedCategory(*raw)
}

// IsDefault reports whether no category was given.
func (c Category) IsDefault() bool {
	return !c.set
}

// Effective returns the category name used for partitioning.
func (c Category) Effective() string {
	if !c.set {
		return DefaultCategory
	}
	return c.name
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Effective())
}

// Amount is a vendor-declared money value. The raw text is kept verbatim for display;
// Valid is false when the text is missing or not a number.
type Amount struct {
	raw   string
	value decimal.Decimal
	valid bool
}

// ParseAmount validates raw once at the ingestion boundary.
func ParseAmount(raw string) Amount {
	a := Amount{raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return a
	}
	v, err := decimal.NewFromString(trimmed)
	if err != nil {
		return a
	}
	a.value = v
	a.valid = true
	return a
}

// AmountOf wraps an already validated decimal.
func AmountOf(v decimal.Decimal) Amount {
	return Amount{raw: v.String(), value: v, valid: true}
}

func (a Amount) Raw() string {
	return a.raw
}

func (a Amount) Valid() bool {
	return a.valid
}

// Decimal returns the parsed value, zero when invalid.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// SortValue is the value used for ranking. Invalid amounts rank as zero.
func (a Amount) SortValue() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

type amountJSON struct {
	Raw   string           `json:"raw"`
	Value *decimal.Decimal `json:"value"`
	Valid bool             `json:"valid"`
}

func (a Amount) MarshalJSON() ([]byte, error) {
	out := amountJSON{Raw: a.raw, Valid: a.valid}
	if a.valid {
		v := a.value
		out.Value = &v
	}
	return json.Marshal(out)
}

// LineItem is one priced row of a quote.
type LineItem struct {
	SequenceNumber *int
	Description    string
	Amount         decimal.Decimal
}

// Quote is a vendor's priced response to a BOQ.
type Quote struct {
	ID          int
	VendorID    int
	VendorName  string
	ProjectID   int
	Category    Category
	TotalAmount Amount
	Status      string
	LineItems   []LineItem
	SubmittedAt time.Time
}

// Cell is a vendor's price for one union item. Present is false when the vendor did
// not quote the item; a present zero is a real price.
type Cell struct {
	Amount  decimal.Decimal
	Present bool
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Present {
		return []byte("null"), nil
	}
	return json.Marshal(c.Amount)
}

// ComparisonRow holds the per-quote prices of one union item, keyed by quote id.
type ComparisonRow struct {
	Key     UnionItemKey `json:"key"`
	Amounts map[int]Cell `json:"amounts"`
}

// Amount returns the price quoted by quoteID, if any.
func (r ComparisonRow) Amount(quoteID int) (decimal.Decimal, bool) {
	cell, ok := r.Amounts[quoteID]
	if !ok || !cell.Present {
		return decimal.Zero, false
	}
	return cell.Amount, true
}

// Column describes one ranked quote in the table.
type Column struct {
	Rank           int             `json:"rank"`
	QuoteID        int             `json:"quote_id"`
	VendorID       int             `json:"vendor_id"`
	VendorName     string          `json:"vendor_name"`
	Category       string          `json:"category"`
	Status         string          `json:"status"`
	TotalAmount    Amount          `json:"total_amount"`
	LineItemSum    decimal.Decimal `json:"line_item_sum"`
	LineItemCount  int             `json:"line_item_count"`
	MalformedItems int             `json:"malformed_items"`
}

// Anomalies lists data-shape problems the rendering layer may want to flag.
type Anomalies struct {
	NonNumericTotals []int       `json:"non_numeric_totals"`
	MalformedItems   map[int]int `json:"malformed_items"`
}

// Empty reports whether nothing was flagged.
func (a Anomalies) Empty() bool {
	return len(a.NonNumericTotals) == 0 && len(a.MalformedItems) == 0
}

// ComparisonTable is the renderable comparison matrix.
type ComparisonTable struct {
	Category  string          `json:"category"`
	Rows      []ComparisonRow `json:"rows"`
	Columns   []Column        `json:"columns"`
	Totals    map[int]Amount  `json:"totals"`
	Anomalies Anomalies       `json:"anomalies"`
}

// IsEmpty reports whether no quote matched the selected category.
func (t ComparisonTable) IsEmpty() bool {
	return len(t.Columns) == 0
}

// Lowest returns the column with the lowest valid declared total.
func (t ComparisonTable) Lowest() (Column, bool) {
	for _, col := range t.Columns {
		if col.TotalAmount.Valid() {
			return col, true
		}
	}
	return Column{}, false
}
