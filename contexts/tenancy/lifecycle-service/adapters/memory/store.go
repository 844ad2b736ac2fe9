package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	domainerrors "orbit/contexts/tenancy/lifecycle-service/domain/errors"
	"orbit/contexts/tenancy/lifecycle-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository, outbox, clock,
// and id-generator ports. It is intended for tests and local development
// wiring.
type Store struct {
	mu sync.RWMutex

	organizations map[string]entities.Organization
	spaces        map[string]entities.Space

	outbox []outboxRow
}

type outboxRow struct {
	ports.OutboxMessage
	PublishedAt *time.Time
}

// NewStore builds an empty in-memory adapter.
func NewStore() *Store {
	return &Store{
		organizations: make(map[string]entities.Organization),
		spaces:        make(map[string]entities.Space),
	}
}

func (s *Store) CreateOrganization(_ context.Context, org entities.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.organizations {
		if existing.Name == org.Name {
			return domainerrors.ErrNameTaken
		}
	}
	s.organizations[org.ID] = cloneOrganization(org)
	return nil
}

func (s *Store) UpdateOrganization(_ context.Context, org entities.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.organizations[org.ID]; !ok {
		return domainerrors.ErrOrganizationNotFound
	}
	s.organizations[org.ID] = cloneOrganization(org)
	return nil
}

func (s *Store) DeleteOrganization(_ context.Context, orgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.organizations[orgID]; !ok {
		return domainerrors.ErrOrganizationNotFound
	}
	delete(s.organizations, orgID)
	return nil
}

func (s *Store) GetOrganization(_ context.Context, orgID string) (entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.organizations[orgID]
	if !ok {
		return entities.Organization{}, domainerrors.ErrOrganizationNotFound
	}
	return cloneOrganization(org), nil
}

func (s *Store) GetOrganizationByName(_ context.Context, name string) (entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, org := range s.organizations {
		if org.Name == name {
			return cloneOrganization(org), nil
		}
	}
	return entities.Organization{}, domainerrors.ErrOrganizationNotFound
}

func (s *Store) ListOrganizations(_ context.Context) ([]entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Organization, 0, len(s.organizations))
	for _, org := range s.organizations {
		items = append(items, cloneOrganization(org))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) CreateSpace(_ context.Context, space entities.Space) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.spaces {
		if existing.OrganizationID == space.OrganizationID && existing.Name == space.Name {
			return domainerrors.ErrNameTaken
		}
	}
	s.spaces[space.ID] = cloneSpace(space)
	return nil
}

func (s *Store) UpdateSpace(_ context.Context, space entities.Space) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.spaces[space.ID]
	if !ok || existing.OrganizationID != space.OrganizationID {
		return domainerrors.ErrSpaceNotFound
	}
	s.spaces[space.ID] = cloneSpace(space)
	return nil
}

func (s *Store) DeleteSpace(_ context.Context, orgID string, spaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.spaces[spaceID]
	if !ok || existing.OrganizationID != orgID {
		return domainerrors.ErrSpaceNotFound
	}
	delete(s.spaces, spaceID)
	return nil
}

func (s *Store) GetSpace(_ context.Context, orgID string, spaceID string) (entities.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	space, ok := s.spaces[spaceID]
	if !ok || space.OrganizationID != orgID {
		return entities.Space{}, domainerrors.ErrSpaceNotFound
	}
	return cloneSpace(space), nil
}

func (s *Store) GetSpaceByName(_ context.Context, orgID string, name string) (entities.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, space := range s.spaces {
		if space.OrganizationID == orgID && space.Name == name {
			return cloneSpace(space), nil
		}
	}
	return entities.Space{}, domainerrors.ErrSpaceNotFound
}

func (s *Store) ListSpaces(_ context.Context, orgID string) ([]entities.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Space, 0)
	for _, space := range s.spaces {
		if space.OrganizationID == orgID {
			items = append(items, cloneSpace(space))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox = append(s.outbox, outboxRow{OutboxMessage: message})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, row := range s.outbox {
		if row.PublishedAt != nil {
			continue
		}
		items = append(items, row.OutboxMessage)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			at := publishedAt
			s.outbox[i].PublishedAt = &at
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

// PendingOutboxEventTypes lists event types not yet relayed, for tests.
func (s *Store) PendingOutboxEventTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var types []string
	for _, row := range s.outbox {
		if row.PublishedAt == nil {
			types = append(types, row.EventType)
		}
	}
	return types
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneOrganization(org entities.Organization) entities.Organization {
	org.Owners = append([]string(nil), org.Owners...)
	return org
}

func cloneSpace(space entities.Space) entities.Space {
	space.Owners = append([]string(nil), space.Owners...)
	return space
}
