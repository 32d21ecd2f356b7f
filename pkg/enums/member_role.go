package enums

import "fmt"

// MemberRole controls which API surfaces a user may reach.
type MemberRole string

const (
	MemberRoleSales   MemberRole = "sales"
	MemberRoleManager MemberRole = "manager"
	MemberRoleAdmin   MemberRole = "admin"
)

var validMemberRoles = []MemberRole{
	MemberRoleSales,
	MemberRoleManager,
	MemberRoleAdmin,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// CanViewAggregates reports whether the role may read cross-user stats.
func (m MemberRole) CanViewAggregates() bool {
	return m == MemberRoleManager || m == MemberRoleAdmin
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
