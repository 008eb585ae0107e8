package ledger

import (
	"sync"

	"bankcore/internal/core"
)

// Ledger is the append-only history of committed transactions. The recent
// view is a newest-first projection over the tail of the same history, so
// the "last n" is always a suffix of the ledger in commit order.
type Ledger struct {
	mu      sync.RWMutex
	history []core.Transaction
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append records a committed transaction. Entries are never mutated or
// removed afterwards.
func (l *Ledger) Append(tx core.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = append(l.history, tx)
}

// Recent returns up to n of the most recently appended transactions, newest
// first. The ledger itself is not modified.
func (l *Ledger) Recent(n int) []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.history) {
		n = len(l.history)
	}
	if n <= 0 {
		return nil
	}
	out := make([]core.Transaction, n)
	for i := 0; i < n; i++ {
		out[i] = l.history[len(l.history)-1-i]
	}
	return out
}

// All returns a copy of the full history in commit order.
func (l *Ledger) All() []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Transaction, len(l.history))
	copy(out, l.history)
	return out
}

// Len reports the number of committed transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.history)
}
