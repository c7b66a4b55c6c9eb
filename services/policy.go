package services

import "blog-service/models"

// IsOwnerOrAdmin is the edit/delete rule for posts: the author of the post or
// any user holding adminRole may change it.
func IsOwnerOrAdmin(user models.UserDetails, owner, adminRole string) bool {
	return user.Username == owner || user.HasRole(adminRole)
}
