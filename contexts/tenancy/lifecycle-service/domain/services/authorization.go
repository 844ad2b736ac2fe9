package services

import (
	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
)

// PermissionLevel is the granularity of a requested access check. GET is the
// coarse listing level; READ/WRITE/DELETE are fine-grained levels that always
// run full per-space filtering.
type PermissionLevel string

const (
	PermissionGet    PermissionLevel = "GET"
	PermissionRead   PermissionLevel = "READ"
	PermissionWrite  PermissionLevel = "WRITE"
	PermissionDelete PermissionLevel = "DELETE"
)

// The functions in this file are the authorization decision engine: pure
// functions over an AuthenticationContext and entity state, no I/O.

// IsSuperuser reports whether the caller is a superuser.
func IsSuperuser(auth entities.AuthenticationContext) bool {
	return auth.Superuser
}

// IsOrgAdmin reports whether the caller holds the ADMIN role on org.
func IsOrgAdmin(auth entities.AuthenticationContext, org entities.Organization) bool {
	return auth.HasOrganizationRole(org.Name, entities.OrganizationRoleAdmin)
}

// IsOrgAdminOrOwner reports whether the caller is superuser, org admin, or a
// recorded owner of org.
func IsOrgAdminOrOwner(auth entities.AuthenticationContext, org entities.Organization) bool {
	return IsSuperuser(auth) || IsOrgAdmin(auth, org) || org.HasOwner(auth.Subject)
}

// IsSpaceAdminOrOwner extends the organization form with space ownership.
func IsSpaceAdminOrOwner(auth entities.AuthenticationContext, org entities.Organization, space entities.Space) bool {
	return IsOrgAdminOrOwner(auth, org) || space.HasOwner(auth.Subject)
}

// CanReadOrganization reports whether the caller may see org at all. PUBLIC
// organizations are visible to callers with the public-access flag; INTERNAL
// ones require membership, ownership, or elevated rights.
func CanReadOrganization(auth entities.AuthenticationContext, org entities.Organization) bool {
	if IsOrgAdminOrOwner(auth, org) {
		return true
	}
	if org.Confidentiality == entities.ConfidentialityPublic && auth.OrgPublicAccess {
		return true
	}
	return auth.HasAnyOrganizationRole(org.Name)
}

// CanAccessSpace reports whether the caller may read space. A space flagged
// for deletion is invisible to non-privileged access regardless of any other
// grant; callers needing to see it must come through IsSpaceAdminOrOwner.
func CanAccessSpace(auth entities.AuthenticationContext, orgName string, space entities.Space) bool {
	if space.State == entities.SpaceStateDeletion {
		return false
	}
	if space.Confidentiality == entities.ConfidentialityPublic && auth.SpacePublicAccess {
		return true
	}
	return auth.HasAnySpaceRole(orgName, space.Name)
}

// FilterVisibleSpaces returns the subset of spaces the caller may list.
// Spaces in DELETION state are hidden unless the caller owns the space, is
// an org admin, or a superuser, so an owner can still see and revert a
// pending deletion.
func FilterVisibleSpaces(auth entities.AuthenticationContext, org entities.Organization, spaces []entities.Space) []entities.Space {
	visible := make([]entities.Space, 0, len(spaces))
	for _, space := range spaces {
		if space.State == entities.SpaceStateDeletion {
			if IsSpaceAdminOrOwner(auth, org, space) {
				visible = append(visible, space)
			}
			continue
		}
		if IsSpaceAdminOrOwner(auth, org, space) || CanAccessSpace(auth, org.Name, space) {
			visible = append(visible, space)
		}
	}
	return visible
}

// ListVisibleSpaces applies the listing fast lanes before falling back to
// full filtering: at the coarse GET level a superuser or org admin sees all
// spaces of the organization unfiltered. Fine-grained levels always filter.
func ListVisibleSpaces(auth entities.AuthenticationContext, org entities.Organization, spaces []entities.Space, level PermissionLevel) []entities.Space {
	if level == PermissionGet && (IsSuperuser(auth) || IsOrgAdmin(auth, org)) {
		return spaces
	}
	return FilterVisibleSpaces(auth, org, spaces)
}

// CanSetSpaceState reports whether the caller may change the lifecycle flag
// of space: org admin, space owner, or superuser only.
func CanSetSpaceState(auth entities.AuthenticationContext, org entities.Organization, space entities.Space) bool {
	return IsSuperuser(auth) || IsOrgAdmin(auth, org) || space.HasOwner(auth.Subject)
}
