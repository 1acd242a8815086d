package session

import (
	"time"

	"github.com/adrianliechti/narrator/pkg/wizard"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 1000
	DefaultTTL  = time.Hour
)

// Store keeps wizard sessions in memory. Least recently used sessions are
// evicted when the store is full, idle ones once their TTL passes.
type Store struct {
	wizard *wizard.Wizard
	cache  *expirable.LRU[string, *wizard.Session]
}

func New(w *wizard.Wizard, size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultSize
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		wizard: w,
		cache:  expirable.NewLRU[string, *wizard.Session](size, nil, ttl),
	}
}

func (s *Store) Create() *wizard.Session {
	session := s.wizard.NewSession()
	s.cache.Add(session.ID, session)

	return session
}

// Get returns a session and refreshes its expiry.
func (s *Store) Get(id string) (*wizard.Session, bool) {
	session, ok := s.cache.Get(id)

	if ok {
		s.cache.Add(id, session)
	}

	return session, ok
}

func (s *Store) Delete(id string) bool {
	return s.cache.Remove(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}
