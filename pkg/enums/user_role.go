package enums

import "fmt"

// UserRole tags an account with a marketplace capability. An account may
// carry several roles; role-specific data lives on its profile rows.
type UserRole string

const (
	UserRoleBuyer            UserRole = "buyer"
	UserRoleSeller           UserRole = "seller"
	UserRoleLabourPartner    UserRole = "labour_partner"
	UserRoleTransportPartner UserRole = "transport_partner"
	UserRoleDeliveryPartner  UserRole = "delivery_partner"
	UserRoleAdmin            UserRole = "admin"
)

var validUserRoles = []UserRole{
	UserRoleBuyer,
	UserRoleSeller,
	UserRoleLabourPartner,
	UserRoleTransportPartner,
	UserRoleDeliveryPartner,
	UserRoleAdmin,
}

// IsValid reports whether the value matches a known role.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
