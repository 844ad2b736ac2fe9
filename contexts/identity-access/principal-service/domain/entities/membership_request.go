package entities

import "time"

// RequestScope identifies whether a membership request targets an
// organization or a single space.
type RequestScope string

const (
	ScopeOrganization RequestScope = "ORGANIZATION"
	ScopeSpace        RequestScope = "SPACE"
)

// RequestState is the lifecycle of a membership request. Requests are decided
// exactly once.
type RequestState string

const (
	RequestPending  RequestState = "PENDING"
	RequestAccepted RequestState = "ACCEPTED"
	RequestRejected RequestState = "REJECTED"
)

// MembershipRequest is a user's request to join an organization or space with
// a specific role. Acceptance assigns the canonical role through the identity
// provider.
type MembershipRequest struct {
	ID           string
	Subject      string
	Scope        RequestScope
	Organization string
	Space        string
	Role         string
	State        RequestState
	CreatedAt    time.Time
	DecidedAt    time.Time
	DecidedBy    string
}

// RoleName returns the canonical identity-provider role name the request
// resolves to.
func (r MembershipRequest) RoleName() string {
	if r.Scope == ScopeSpace {
		return SpaceRoleName(r.Organization, r.Space, r.Role)
	}
	return OrganizationRoleName(r.Organization, r.Role)
}

// IsDecided reports whether the request has already been accepted or
// rejected.
func (r MembershipRequest) IsDecided() bool {
	return r.State != RequestPending
}
