package entities

import "time"

// Confidentiality controls default read visibility of an entity.
type Confidentiality string

const (
	ConfidentialityPublic   Confidentiality = "PUBLIC"
	ConfidentialityInternal Confidentiality = "INTERNAL"
)

// IsValid reports whether the value is one of the closed set.
func (c Confidentiality) IsValid() bool {
	switch c {
	case ConfidentialityPublic, ConfidentialityInternal:
		return true
	default:
		return false
	}
}

// Organization is the top level of the tenancy hierarchy.
// Name is unique across the system and immutable after creation.
type Organization struct {
	ID              string
	Name            string
	Confidentiality Confidentiality
	Owners          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasOwner reports whether subject is recorded as an owner.
func (o Organization) HasOwner(subject string) bool {
	for _, owner := range o.Owners {
		if owner == subject {
			return true
		}
	}
	return false
}
