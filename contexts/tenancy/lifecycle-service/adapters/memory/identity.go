package memory

import (
	"context"
	"sort"
	"sync"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

// IdentityStore is an in-memory IdentityRoleService recording role names and
// assignments.
type IdentityStore struct {
	mu          sync.Mutex
	roles       map[string]struct{}
	assignments map[string]map[string]struct{} // subject -> role names
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		roles:       make(map[string]struct{}),
		assignments: make(map[string]map[string]struct{}),
	}
}

func (s *IdentityStore) EnsureRole(_ context.Context, _ entities.AuthenticationContext, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[roleName] = struct{}{}
	return nil
}

func (s *IdentityStore) DeleteRole(_ context.Context, _ entities.AuthenticationContext, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roles, roleName)
	for _, assigned := range s.assignments {
		delete(assigned, roleName)
	}
	return nil
}

func (s *IdentityStore) AssignRole(_ context.Context, _ entities.AuthenticationContext, subject string, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assignments[subject] == nil {
		s.assignments[subject] = make(map[string]struct{})
	}
	s.assignments[subject][roleName] = struct{}{}
	return nil
}

func (s *IdentityStore) WithdrawRole(_ context.Context, _ entities.AuthenticationContext, subject string, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments[subject], roleName)
	return nil
}

// HasRole reports whether the role name currently exists.
func (s *IdentityStore) HasRole(roleName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.roles[roleName]
	return ok
}

// AssignedRoles returns the sorted role names held by subject.
func (s *IdentityStore) AssignedRoles(subject string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for name := range s.assignments[subject] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
