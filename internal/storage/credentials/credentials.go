package credentials

import "sync"

// Store maps login identifiers to secrets for one namespace. The customer
// and staff namespaces are separate Store instances; an identifier carries
// at most one secret.
type Store struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewStore creates an empty credential store.
func NewStore() *Store {
	return &Store{secrets: make(map[string]string)}
}

// FromMap creates a store seeded with the given entries.
func FromMap(entries map[string]string) *Store {
	s := NewStore()
	for id, secret := range entries {
		s.secrets[id] = secret
	}
	return s
}

// Set stores the secret for an identifier, replacing any existing one.
func (s *Store) Set(identifier, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[identifier] = secret
}

// Verify reports whether the identifier exists with exactly this secret.
// An absent identifier and a wrong secret are indistinguishable.
func (s *Store) Verify(identifier, secret string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.secrets[identifier]
	return ok && stored == secret
}

// Exists reports whether the identifier has a credential entry.
func (s *Store) Exists(identifier string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.secrets[identifier]
	return ok
}

// Snapshot returns a copy of all entries, for persistence.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.secrets))
	for id, secret := range s.secrets {
		out[id] = secret
	}
	return out
}

// Len reports the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.secrets)
}
