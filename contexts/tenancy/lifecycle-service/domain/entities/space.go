package entities

import "time"

// SpaceState is a lifecycle flag on a space, not a full state machine.
// The zero value means the space is open.
type SpaceState string

const (
	SpaceStateOpen     SpaceState = ""
	SpaceStateClosed   SpaceState = "CLOSED"
	SpaceStateDeletion SpaceState = "DELETION"
)

// IsValid reports whether the value is one of the closed set.
func (s SpaceState) IsValid() bool {
	switch s {
	case SpaceStateOpen, SpaceStateClosed, SpaceStateDeletion:
		return true
	default:
		return false
	}
}

// Space always belongs to exactly one organization. Name is unique within
// its organization and immutable after creation.
type Space struct {
	ID              string
	OrganizationID  string
	Name            string
	Confidentiality Confidentiality
	State           SpaceState
	Owners          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasOwner reports whether subject is recorded as an owner.
func (s Space) HasOwner(subject string) bool {
	for _, owner := range s.Owners {
		if owner == subject {
			return true
		}
	}
	return false
}
