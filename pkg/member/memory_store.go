package member

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// MemoryStore implements ConditionalStore in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	members map[string]*Member
}

// NewMemoryStore creates a store holding copies of the given members.
func NewMemoryStore(members ...*Member) *MemoryStore {
	s := &MemoryStore{members: make(map[string]*Member, len(members))}
	for _, m := range members {
		if m != nil && m.ID != "" {
			s.members[m.ID] = m.Clone()
		}
	}
	return s
}

type fixture struct {
	Members []*Member `yaml:"members"`
}

// LoadYAML adds members decoded from a YAML document of the form
//
//	members:
//	  - id: u1
//	    password_hash: 8bf8854bebe108183caeb845c7676ae4
//	    name: Jane
//	    is_admin: true
func (s *MemoryStore) LoadYAML(r io.Reader) error {
	var f fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return fmt.Errorf("decode member fixture: %w", err)
	}
	for i, m := range f.Members {
		if err := s.Put(m); err != nil {
			return fmt.Errorf("fixture member %d: %w", i, err)
		}
	}
	return nil
}

// Put inserts or replaces a member.
func (s *MemoryStore) Put(m *Member) error {
	if m == nil || m.ID == "" {
		return ErrInvalidMember
	}
	s.mu.Lock()
	s.members[m.ID] = m.Clone()
	s.mu.Unlock()
	return nil
}

// All returns copies of every member ordered by id.
func (s *MemoryStore) All() []*Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m.Clone())
	}
	slices.SortFunc(out, func(a, b *Member) int { return strings.Compare(a.ID, b.ID) })
	return out
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.Clone(), nil
}

func (s *MemoryStore) FindByIDAndSessionToken(_ context.Context, id, token string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok || !tokenMatches(m, token) {
		return nil, ErrNotFound
	}
	return m.Clone(), nil
}

func (s *MemoryStore) UpdateSession(_ context.Context, id string, token *string, expiry *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return ErrNotFound
	}
	s.members[id] = m.WithSession(token, expiry)
	return nil
}

func (s *MemoryStore) ClearSessionIfToken(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok || !tokenMatches(m, token) {
		return ErrNotFound
	}
	s.members[id] = m.WithSession(nil, nil)
	return nil
}

func tokenMatches(m *Member, token string) bool {
	if m.SessionToken == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*m.SessionToken), []byte(token)) == 1
}
