package entities

import "regexp"

// namePattern constrains organization and space names to DNS-label style
// identifiers so they can double as downstream resource names.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,61}[a-z0-9]$`)

// IsValidName reports whether name satisfies the shared naming constraint.
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}
