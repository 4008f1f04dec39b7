package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUnionFirstOccurrenceOrder(t *testing.T) {
	quotes := []Quote{
		quote(1, "A", "", "0", item(seq(5), "Doors", "1"), item(seq(2), "Conduit", "1")),
		quote(2, "B", "", "0", item(seq(2), "Conduit", "1"), item(seq(1), "Wiring", "1"), item(nil, "Misc", "1")),
	}
	keys := BuildUnion(quotes)
	assert.Equal(t, []UnionItemKey{
		{Seq: 5, HasSeq: true, Description: "Doors"},
		{Seq: 2, HasSeq: true, Description: "Conduit"},
		{Seq: 1, HasSeq: true, Description: "Wiring"},
		{Description: "Misc"},
	}, keys)
}

func TestBuildUnionSkipsMalformedAndDuplicates(t *testing.T) {
	quotes := []Quote{
		quote(1, "A", "", "0", item(nil, "", "9"), item(seq(1), "Wiring", "1"), item(seq(1), "Wiring", "2")),
	}
	keys := BuildUnion(quotes)
	assert.Len(t, keys, 1)
}

func TestBuildUnionEmpty(t *testing.T) {
	keys := BuildUnion([]Quote{quote(1, "A", "", "3000")})
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
	assert.Empty(t, BuildUnion(nil))
}

func TestBuildUnionCompletenessAndNoDuplicates(t *testing.T) {
	quotes := sampleQuotes()
	keys := BuildUnion(quotes)

	seen := make(map[UnionItemKey]int)
	for _, k := range keys {
		seen[k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "duplicate key %+v", k)
	}
	for _, q := range quotes {
		for _, it := range q.LineItems {
			if IsMalformed(it) {
				continue
			}
			_, ok := seen[ResolveKey(it)]
			assert.True(t, ok, "missing key for %+v", it)
		}
	}
}
