package services

import "turbo/contexts/identity-access/request-gate/domain/entities"

// HasRole reports whether the principal's role set contains requiredRole.
// Exact membership only.
func HasRole(principal entities.Principal, requiredRole string) bool {
	for _, role := range principal.Roles {
		if role == requiredRole {
			return true
		}
	}
	return false
}

// IsOwner reports whether the principal is the owner of a resource.
// Owner-only operations combine this with an AUTHENTICATED outcome.
func IsOwner(principal entities.Principal, owner string) bool {
	return principal.Identity != "" && principal.Identity == owner
}
