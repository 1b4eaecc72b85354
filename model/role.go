package model

import "strings"

// Role is the closed set of user roles. Values are stored lower-case and
// compared case-insensitively everywhere.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole normalizes a free-form role string into a known Role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleStudent), "":
		return RoleStudent, true
	}
	return "", false
}

// Is reports whether r matches other, ignoring case.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// Display returns the role in the upper-case form used in API responses.
func (r Role) Display() string {
	return strings.ToUpper(string(r))
}

func (r Role) String() string {
	return string(r)
}
