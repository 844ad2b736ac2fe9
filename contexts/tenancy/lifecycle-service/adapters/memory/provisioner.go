package memory

import (
	"context"
	"fmt"
	"sync"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

// Provisioner is an in-memory ContextProvisioner that records every call and
// can be told to fail specific operations. Used by tests and local wiring.
type Provisioner struct {
	name string

	mu    sync.Mutex
	fail  map[string]error
	calls []Call
}

// Call records one provisioner invocation.
type Call struct {
	Operation string
	OrgName   string
	SpaceName string
	Subject   string
}

const (
	OpCreateOrganization = "create_organization_context"
	OpUpdateOrganization = "update_organization_context"
	OpDeleteOrganization = "delete_organization_context"
	OpCreateSpace        = "create_space_context"
	OpUpdateSpace        = "update_space_context"
	OpDeleteSpace        = "delete_space_context"
)

func NewProvisioner(name string) *Provisioner {
	return &Provisioner{
		name: name,
		fail: make(map[string]error),
	}
}

func (p *Provisioner) Name() string { return p.name }

// FailOn makes the named operation return an error until cleared.
func (p *Provisioner) FailOn(operation string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail[operation] = fmt.Errorf("%s: %s unavailable", p.name, operation)
}

// ClearFailures restores normal behavior.
func (p *Provisioner) ClearFailures() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = make(map[string]error)
}

// Calls returns a copy of all recorded invocations.
func (p *Provisioner) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallCount returns how often the named operation was invoked.
func (p *Provisioner) CallCount(operation string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, call := range p.calls {
		if call.Operation == operation {
			count++
		}
	}
	return count
}

func (p *Provisioner) record(operation string, auth entities.AuthenticationContext, orgName, spaceName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{
		Operation: operation,
		OrgName:   orgName,
		SpaceName: spaceName,
		Subject:   auth.Subject,
	})
	return p.fail[operation]
}

func (p *Provisioner) CreateOrganizationContext(_ context.Context, auth entities.AuthenticationContext, org entities.Organization) error {
	return p.record(OpCreateOrganization, auth, org.Name, "")
}

func (p *Provisioner) UpdateOrganizationContext(_ context.Context, auth entities.AuthenticationContext, org entities.Organization) error {
	return p.record(OpUpdateOrganization, auth, org.Name, "")
}

func (p *Provisioner) DeleteOrganizationContext(_ context.Context, auth entities.AuthenticationContext, org entities.Organization) error {
	return p.record(OpDeleteOrganization, auth, org.Name, "")
}

func (p *Provisioner) CreateSpaceContext(_ context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error {
	return p.record(OpCreateSpace, auth, org.Name, space.Name)
}

func (p *Provisioner) UpdateSpaceContext(_ context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error {
	return p.record(OpUpdateSpace, auth, org.Name, space.Name)
}

func (p *Provisioner) DeleteSpaceContext(_ context.Context, auth entities.AuthenticationContext, org entities.Organization, space entities.Space) error {
	return p.record(OpDeleteSpace, auth, org.Name, space.Name)
}
