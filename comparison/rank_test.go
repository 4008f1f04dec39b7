package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankAscendingStable(t *testing.T) {
	quotes := []Quote{
		quote(1, "A", "", "300"),
		quote(2, "B", "", "100"),
		quote(3, "C", "", "300"),
		quote(4, "D", "", "200.5"),
	}
	ranked := Rank(quotes)
	assert.Equal(t, []int{2, 4, 1, 3}, ids(ranked))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(quotes), "input untouched")

	for i := 1; i < len(ranked); i++ {
		assert.True(t, ranked[i-1].TotalAmount.SortValue().LessThanOrEqual(ranked[i].TotalAmount.SortValue()))
	}
}

func TestRankNonNumericTotalSortsAsZero(t *testing.T) {
	quotes := []Quote{
		quote(1, "A", "", "50"),
		quote(2, "B", "", "TBD"),
		quote(3, "C", "", "-10"),
	}
	assert.Equal(t, []int{3, 2, 1}, ids(Rank(quotes)))

	totals := Totals(quotes)
	assert.Equal(t, "TBD", totals[2].Raw())
	assert.False(t, totals[2].Valid())
}

func TestSortRows(t *testing.T) {
	rows := []ComparisonRow{
		{Key: UnionItemKey{Description: "Misc"}},
		{Key: UnionItemKey{Seq: 3, HasSeq: true, Description: "Panel"}},
		{Key: UnionItemKey{Description: "Extra"}},
		{Key: UnionItemKey{Seq: 1, HasSeq: true, Description: "Wiring"}},
		{Key: UnionItemKey{Seq: 1, HasSeq: true, Description: "Wiring B"}},
	}
	SortRows(rows)

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Key.Description)
	}
	assert.Equal(t, []string{"Wiring", "Wiring B", "Panel", "Misc", "Extra"}, got)
}
