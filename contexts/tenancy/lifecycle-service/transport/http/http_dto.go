package httptransport

import "time"

// CreateOrganizationRequest is the request body for organization creation.
type CreateOrganizationRequest struct {
	Name            string `json:"name"`
	Confidentiality string `json:"confidentiality"`
}

// UpdateOrganizationRequest is the request body for organization update.
// Owners are intentionally absent; the generic update path never changes them.
type UpdateOrganizationRequest struct {
	Name            string `json:"name,omitempty"`
	Confidentiality string `json:"confidentiality"`
}

// OrganizationResponse is the wire shape of an organization.
type OrganizationResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Confidentiality string    `json:"confidentiality"`
	Owners          []string  `json:"owners"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// CreateSpaceRequest is the request body for space creation.
type CreateSpaceRequest struct {
	Name            string `json:"name"`
	Confidentiality string `json:"confidentiality"`
}

// UpdateSpaceRequest is the request body for space update.
type UpdateSpaceRequest struct {
	Name            string `json:"name,omitempty"`
	Confidentiality string `json:"confidentiality"`
	State           string `json:"state"`
}

// SpaceResponse is the wire shape of a space.
type SpaceResponse struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organization_id"`
	Name            string    `json:"name"`
	Confidentiality string    `json:"confidentiality"`
	State           string    `json:"state"`
	Owners          []string  `json:"owners"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ListSpacesResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
}

// OwnerRequest adds or removes one owner subject.
type OwnerRequest struct {
	Subject string `json:"subject"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
