package httptransport

import "time"

// SubmitRequestRequest is the membership request submission payload. Space is
// omitted for organization-scoped requests.
type SubmitRequestRequest struct {
	Scope        string `json:"scope"`
	Organization string `json:"organization"`
	Space        string `json:"space,omitempty"`
	Role         string `json:"role"`
}

// MembershipRequestResponse is the wire form of a membership request.
type MembershipRequestResponse struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	Scope        string    `json:"scope"`
	Organization string    `json:"organization"`
	Space        string    `json:"space,omitempty"`
	Role         string    `json:"role"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"created_at"`
	DecidedAt    time.Time `json:"decided_at,omitempty"`
	DecidedBy    string    `json:"decided_by,omitempty"`
}

// ListRequestsResponse wraps the pending requests of an organization.
type ListRequestsResponse struct {
	Requests []MembershipRequestResponse `json:"requests"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
