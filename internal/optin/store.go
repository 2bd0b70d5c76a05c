package optin

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// Store keeps one Form per visitor. The least recently used forms are
// evicted once capacity is reached, so abandoned pages do not accumulate.
type Store struct {
	forms    *lru.Cache
	settings Settings
}

// NewStore creates a store holding at most capacity forms.
func NewStore(capacity int, settings Settings) (*Store, error) {
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("create form store: %w", err)
	}
	return &Store{forms: cache, settings: settings}, nil
}

// Mount gives the visitor a fresh, empty form, as a page load does.
func (s *Store) Mount(visitorID string) *Form {
	f := NewForm(visitorID, s.settings)
	s.forms.Add(visitorID, f)
	return f
}

// Get returns the visitor's form, mounting one if none exists.
func (s *Store) Get(visitorID string) *Form {
	if v, ok := s.forms.Get(visitorID); ok {
		return v.(*Form)
	}
	// ContainsOrAdd keeps the form a concurrent request may have added.
	f := NewForm(visitorID, s.settings)
	if ok, _ := s.forms.ContainsOrAdd(visitorID, f); ok {
		if v, ok := s.forms.Get(visitorID); ok {
			return v.(*Form)
		}
	}
	return f
}

// Forget drops the visitor's form.
func (s *Store) Forget(visitorID string) {
	s.forms.Remove(visitorID)
}

// Len returns the number of live forms.
func (s *Store) Len() int {
	return s.forms.Len()
}
