package history

import (
	"math"
	"time"
)

// Filter selects transactions. Nil fields match everything.
type Filter struct {
	Incoming  *bool
	Hash      *Hash
	From      *time.Time
	To        *time.Time
	MinAmount *int64 // compared against |TotalAmount|
	MaxAmount *int64
	State     *TransactionState
}

// Entry is a transaction together with its id and transfers
type Entry struct {
	ID          uint64
	Transaction Transaction
	Transfers   []Transfer
}

// Query returns the transactions matching f in id order.
func (c *Cache) Query(f Filter) []Entry {
	result := make([]Entry, 0, len(c.transactions))
	for id, tx := range c.transactions {
		if f.Incoming != nil && *f.Incoming != (tx.TotalAmount >= 0) {
			continue
		}
		if f.Hash != nil && *f.Hash != tx.Hash {
			continue
		}
		if f.State != nil && *f.State != tx.State {
			continue
		}

		ts := time.Unix(int64(tx.Timestamp), 0)
		if f.From != nil && ts.Before(*f.From) {
			continue
		}
		if f.To != nil && ts.After(*f.To) {
			continue
		}

		amount := abs(tx.TotalAmount)
		if f.MinAmount != nil && amount < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && amount > *f.MaxAmount {
			continue
		}

		result = append(result, Entry{
			ID:          uint64(id),
			Transaction: tx,
			Transfers:   c.Transfers(uint64(id)),
		})
	}
	return result
}

// abs saturates at math.MaxInt64 for math.MinInt64.
func abs(v int64) int64 {
	if v == math.MinInt64 {
		return math.MaxInt64
	}
	if v < 0 {
		return -v
	}
	return v
}
