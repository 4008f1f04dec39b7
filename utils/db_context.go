package utils

import (
	"context"
	"time"
)

// QueryClass is the deadline budget of one repository call.
type QueryClass time.Duration

const (
	// FastQuery covers primary-key lookups and single-row writes.
	FastQuery = QueryClass(10 * time.Second)
	// DefaultQuery covers listings and locked status updates.
	DefaultQuery = QueryClass(30 * time.Second)
	// SlowQuery covers project-wide reads that preload every line item
	// (comparison input, quote-set version, expiry sweep).
	SlowQuery = QueryClass(60 * time.Second)
)

func (q QueryClass) Duration() time.Duration { return time.Duration(q) }

// QueryContext derives the context a repository call runs under.
// A nil parent is treated as context.Background(); callers must defer cancel.
func QueryContext(parent context.Context, class QueryClass) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, class.Duration())
}
