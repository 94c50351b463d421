package service

import "github.com/studifund/studifund-api/internal/models"

// Actor identifies the caller of a service operation, resolved from the
// session by the HTTP layer and passed explicitly.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
