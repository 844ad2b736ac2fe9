package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"orbit/contexts/identity-access/principal-service/domain/entities"
	domainerrors "orbit/contexts/identity-access/principal-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory request repository, role assigner, clock, and id
// generator for tests and local wiring.
type Store struct {
	mu          sync.Mutex
	requests    map[string]entities.MembershipRequest
	assignments map[string]map[string]struct{} // subject -> role names
}

func NewStore() *Store {
	return &Store{
		requests:    make(map[string]entities.MembershipRequest),
		assignments: make(map[string]map[string]struct{}),
	}
}

func (s *Store) CreateRequest(_ context.Context, request entities.MembershipRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

func (s *Store) GetRequest(_ context.Context, requestID string) (entities.MembershipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return entities.MembershipRequest{}, domainerrors.ErrRequestNotFound
	}
	return request, nil
}

func (s *Store) UpdateRequest(_ context.Context, request entities.MembershipRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[request.ID]; !ok {
		return domainerrors.ErrRequestNotFound
	}
	s.requests[request.ID] = request
	return nil
}

func (s *Store) ListPendingRequests(_ context.Context, orgName string) ([]entities.MembershipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []entities.MembershipRequest
	for _, request := range s.requests {
		if request.Organization == orgName && request.State == entities.RequestPending {
			items = append(items, request)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) AssignRole(_ context.Context, subject string, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assignments[subject] == nil {
		s.assignments[subject] = make(map[string]struct{})
	}
	s.assignments[subject][roleName] = struct{}{}
	return nil
}

// HasAssignment reports whether subject holds the role, for tests.
func (s *Store) HasAssignment(subject string, roleName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.assignments[subject][roleName]
	return ok
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
