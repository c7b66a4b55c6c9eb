package models

// RoleAdmin is the default role that grants edit/delete rights on every post.
const RoleAdmin = "ROLE_ADMIN"

// UserDetails is the identity resolved by the external auth service.
type UserDetails struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether role is among the user's roles.
func (u UserDetails) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
