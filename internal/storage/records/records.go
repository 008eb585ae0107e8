package records

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bankcore/internal/core"
)

// Store is the ordered index of account records, keyed by account number.
// Lookup is by exact key; traversal is in ascending key order. The store owns
// every record; callers borrow the returned pointer for the duration of a
// single operation.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*core.Account
	keys     []string // sorted ascending
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{accounts: make(map[string]*core.Account)}
}

// Insert adds a new account record. The account number must not already be
// present; on a duplicate the store is left unchanged.
func (s *Store) Insert(ctx context.Context, acc *core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[acc.AccountNumber]; ok {
		return core.ErrDuplicateAccount
	}

	i := sort.SearchStrings(s.keys, acc.AccountNumber)
	s.keys = append(s.keys, "")
	copy(s.keys[i+1:], s.keys[i:])
	s.keys[i] = acc.AccountNumber
	s.accounts[acc.AccountNumber] = acc
	return nil
}

// Find retrieves the live record for an account number.
func (s *Store) Find(ctx context.Context, accountNumber string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountNumber]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return acc, nil
}

// FindByName returns the accounts whose name contains text, compared
// case-insensitively, in ascending account-number order. An empty query
// matches every account.
func (s *Store) FindByName(ctx context.Context, text string) []*core.Account {
	needle := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*core.Account
	for _, k := range s.keys {
		acc := s.accounts[k]
		if strings.Contains(strings.ToLower(acc.Name), needle) {
			matches = append(matches, acc)
		}
	}
	return matches
}

// Ascend visits every record in ascending account-number order until the
// visitor returns false.
func (s *Store) Ascend(ctx context.Context, visit func(*core.Account) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, k := range s.keys {
		if !visit(s.accounts[k]) {
			return
		}
	}
}

// Len reports the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
