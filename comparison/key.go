package comparison

import "encoding/json"

// UnionItemKey identifies the "same" line item across quotes. Two keys are equal only
// when both the sequence number (including its absence) and the description match
// exactly. The struct is comparable and used directly as a map key.
type UnionItemKey struct {
	Seq         int
	HasSeq      bool
	Description string
}

// SequenceNumber returns the sequence number, if the item had one.
func (k UnionItemKey) SequenceNumber() (int, bool) {
	return k.Seq, k.HasSeq
}

func (k UnionItemKey) MarshalJSON() ([]byte, error) {
	out := struct {
		SequenceNumber *int   `json:"sequence_number"`
		Description    string `json:"description"`
	}{Description: k.Description}
	if k.HasSeq {
		seq := k.Seq
		out.SequenceNumber = &seq
	}
	return json.Marshal(out)
}

// ResolveKey derives the identity of a line item. Values are taken verbatim.
func ResolveKey(item LineItem) UnionItemKey {
	if item.SequenceNumber == nil {
		return UnionItemKey{Description: item.Description}
	}
	return UnionItemKey{Seq: *item.SequenceNumber, HasSeq: true, Description: item.Description}
}

// IsMalformed reports whether the item has neither a sequence number nor a
// description. Such items cannot be matched and stay out of the union.
func IsMalformed(item LineItem) bool {
	return item.SequenceNumber == nil && item.Description == ""
}
