package document

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Document is a single seeded entry.
type Document struct {
	ID      string
	Content string
}

// Store is the in-memory document collection. The key set is fixed at
// construction; only content changes, and only through Replace.
type Store struct {
	id    string
	mu    sync.RWMutex
	order []string
	docs  map[string]string

	allowEmptySearch bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithEmptySearchAllowed makes Replace accept an empty search string and apply
// plain strings.ReplaceAll semantics to it, inserting the replacement around
// every character.
func WithEmptySearchAllowed() StoreOption {
	return func(s *Store) {
		s.allowEmptySearch = true
	}
}

// NewStore creates a store holding seed in order. A repeated ID keeps its first
// position and the content of its last occurrence.
func NewStore(seed []Document, opts ...StoreOption) *Store {
	s := &Store{
		id:    uuid.New().String(),
		order: make([]string, 0, len(seed)),
		docs:  make(map[string]string, len(seed)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, doc := range seed {
		if _, exists := s.docs[doc.ID]; !exists {
			s.order = append(s.order, doc.ID)
		}
		s.docs[doc.ID] = doc.Content
	}

	return s
}

// ID returns the unique identifier for this store instance (a UUID)
func (s *Store) ID() string {
	return s.id
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Get returns the current content of id.
func (s *Store) Get(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.docs[id]
	if !ok {
		return "", &Error{Op: "get", ID: id, Err: ErrNotFound}
	}
	return content, nil
}

// List returns all IDs in seed order. The slice is a copy.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Replace substitutes every occurrence of old with new in document id.
// The match is literal and whitespace-sensitive. On error the document is left
// untouched.
func (s *Store) Replace(id, old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.docs[id]
	if !ok {
		return &Error{Op: "replace", ID: id, Search: old, Err: ErrNotFound}
	}

	if old == "" && !s.allowEmptySearch {
		return &Error{Op: "replace", ID: id, Err: ErrEmptySearch}
	}

	if !strings.Contains(content, old) {
		return &Error{Op: "replace", ID: id, Search: old, Err: ErrSubstringNotFound}
	}

	s.docs[id] = strings.ReplaceAll(content, old, new)
	return nil
}

// Snapshot returns a copy of every document in seed order.
func (s *Store) Snapshot() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, Document{ID: id, Content: s.docs[id]})
	}
	return docs
}
