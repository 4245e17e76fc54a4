package auth

import "linguaspace/internal/models"

// The authorization policy is a pure function of the resolved session user
// and static configuration. There are no per-resource ownership checks: any
// authenticated user may post, and nobody may edit or delete.

// CanCreatePost reports whether the current user may create a post.
func CanCreatePost(user *models.User) bool {
	return user != nil
}

// CanViewAdmin reports whether the current user may view the admin
// dashboard. adminEmail is the deployment-time constant, already
// lowercased by config to match stored emails.
func CanViewAdmin(user *models.User, adminEmail string) bool {
	return user != nil && user.Email == adminEmail
}
